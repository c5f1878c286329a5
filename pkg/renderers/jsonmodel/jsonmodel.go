// Package jsonmodel renders the form model as a JSON document for clients
// that build their own markup. Render options are merged into the fields
// before encoding, the same way the HTML renderer applies them.
package jsonmodel

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-curatorform/pkg/formstate"
	"github.com/goliatone/go-curatorform/pkg/model"
	"github.com/goliatone/go-curatorform/pkg/render"
)

// Option customises the renderer configuration.
type Option func(*Renderer)

// WithIndent pretty-prints the document using indent per level.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer encodes a FormModel plus request options as JSON.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a JSON renderer applying any provided options.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Document is the encoded payload.
type Document struct {
	Form       model.FormModel      `json:"form"`
	Method     string               `json:"method"`
	FormErrors []string             `json:"formErrors,omitempty"`
	Hidden     []render.HiddenField `json:"hidden,omitempty"`
}

// Render encodes form with option values and errors applied.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := model.Validate(form); err != nil {
		return nil, fmt.Errorf("json renderer: %w", err)
	}

	doc := Document{
		Form:       apply(form, options),
		Method:     method(form.Method, options.Method),
		FormErrors: render.MergeFormErrors(nil, options.FormErrors...),
		Hidden:     render.SortedHiddenFields(options.Hidden),
	}

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: marshal form model: %w", err)
	}
	return out, nil
}

func method(declared, override string) string {
	if m := strings.ToUpper(strings.TrimSpace(override)); m != "" {
		return m
	}
	if m := strings.ToUpper(strings.TrimSpace(declared)); m != "" {
		return m
	}
	return "POST"
}

// apply returns a copy of form with option values and errors merged into
// the fields. The input model is left untouched.
func apply(form model.FormModel, options render.RenderOptions) model.FormModel {
	out := form
	out.Sections = make([]model.Section, len(form.Sections))
	for i, section := range form.Sections {
		section.Fields = applyFields(section.Fields, options)
		groups := make([]model.Group, len(section.Groups))
		for j, group := range section.Groups {
			group.Fields = applyFields(group.Fields, options)
			groups[j] = group
		}
		section.Groups = groups
		out.Sections[i] = section
	}
	return out
}

func applyFields(fields []model.Field, options render.RenderOptions) []model.Field {
	if fields == nil {
		return nil
	}
	out := make([]model.Field, len(fields))
	for i, field := range fields {
		if value, ok := options.Values[field.Name]; ok {
			field.Value = formstate.DisplayValue(value)
		}
		field.Errors = render.MergeFormErrors(field.Errors, options.Errors[field.Name]...)
		out[i] = field
	}
	return out
}
