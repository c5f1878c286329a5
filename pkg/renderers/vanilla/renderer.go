package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-curatorform/pkg/formstate"
	"github.com/goliatone/go-curatorform/pkg/model"
	"github.com/goliatone/go-curatorform/pkg/render"
	rendertemplate "github.com/goliatone/go-curatorform/pkg/render/template"
	gotemplate "github.com/goliatone/go-curatorform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-curatorform/pkg/renderers/vanilla/components"
)

const (
	defaultActionField = "_action"
	methodOverrideName = "_method"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	overrides        map[string]string
	partials         map[string]string
	stylesheets      []string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithComponentOverrides renders the fields at the given paths with a named
// component instead of the default one.
func WithComponentOverrides(overrides map[string]string) Option {
	return func(cfg *config) {
		for path, name := range overrides {
			if cfg.overrides == nil {
				cfg.overrides = make(map[string]string, len(overrides))
			}
			cfg.overrides[strings.TrimSpace(path)] = strings.TrimSpace(name)
		}
	}
}

// WithPartials maps component partial keys ("forms.input") to alternate
// template paths.
func WithPartials(partials map[string]string) Option {
	return func(cfg *config) {
		for key, path := range partials {
			if cfg.partials == nil {
				cfg.partials = make(map[string]string, len(partials))
			}
			cfg.partials[strings.TrimSpace(key)] = strings.TrimSpace(path)
		}
	}
}

// WithStylesheet links an extra stylesheet ahead of the form.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// Renderer renders a FormModel to HTML. It holds no per-request state and is
// safe for concurrent use.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	registry    *components.Registry
	overrides   map[string]string
	partials    map[string]string
	stylesheets []string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		registry:    cfg.registry,
		overrides:   cfg.overrides,
		partials:    cfg.partials,
		stylesheets: cfg.stylesheets,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form markup. Option values and errors take precedence
// over those carried by the model.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := model.Validate(form); err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	pass := &renderPass{
		Renderer:    r,
		form:        form,
		options:     options,
		actionField: form.ActionField,
	}
	if pass.actionField == "" {
		pass.actionField = defaultActionField
	}

	method, hidden := resolveMethod(form.Method, options)

	sections := make([]any, 0, len(form.Sections))
	for _, section := range form.Sections {
		view, err := pass.section(section)
		if err != nil {
			return nil, err
		}
		sections = append(sections, view)
	}

	submit := form.Submit
	if submit.Kind == "" {
		submit = model.Action{Kind: model.ActionSubmit, Value: string(model.ActionSubmit), Label: "Submit"}
	}
	submitHTML, err := pass.action(submit, true)
	if err != nil {
		return nil, err
	}

	hiddenFields := make([]any, 0, len(hidden))
	for _, field := range render.SortedHiddenFields(hidden) {
		hiddenFields = append(hiddenFields, map[string]any{"name": field.Name, "value": field.Value})
	}

	stylesheets := slices.Clone(r.stylesheets)
	for _, href := range r.registry.Stylesheets(pass.used) {
		if !slices.Contains(stylesheets, href) {
			stylesheets = append(stylesheets, href)
		}
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"form_key":       form.ID,
		"endpoint":       form.Endpoint,
		"method":         strings.ToLower(method),
		"action_field":   pass.actionField,
		"default_action": submit.Value,
		"hidden":         hiddenFields,
		"form_errors":    render.MergeFormErrors(nil, options.FormErrors...),
		"sections":       sections,
		"submit":         submitHTML,
		"stylesheets":    stylesheets,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// resolveMethod maps verbs browsers cannot submit onto POST plus a hidden
// override input.
func resolveMethod(declared string, options render.RenderOptions) (string, map[string]string) {
	method := strings.ToUpper(strings.TrimSpace(options.Method))
	if method == "" {
		method = strings.ToUpper(strings.TrimSpace(declared))
	}
	switch method {
	case "":
		return http.MethodPost, options.Hidden
	case http.MethodGet, http.MethodPost:
		return method, options.Hidden
	default:
		return http.MethodPost, render.MergeHiddenFields(options.Hidden, render.Hidden(methodOverrideName, method))
	}
}

type renderPass struct {
	*Renderer
	form        model.FormModel
	options     render.RenderOptions
	actionField string
	used        []string
}

func (p *renderPass) section(section model.Section) (map[string]any, error) {
	fields, err := p.fields(section.Fields)
	if err != nil {
		return nil, err
	}

	groups := make([]any, 0, len(section.Groups))
	for _, group := range section.Groups {
		groupFields, err := p.fields(group.Fields)
		if err != nil {
			return nil, err
		}
		actions, err := p.actions(group.Actions)
		if err != nil {
			return nil, err
		}
		groups = append(groups, map[string]any{
			"key":     group.Key,
			"index":   strconv.Itoa(group.Index),
			"fields":  groupFields,
			"actions": actions,
		})
	}

	actions, err := p.actions(section.Actions)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"name":    section.Name,
		"title":   section.Title,
		"fields":  fields,
		"groups":  groups,
		"actions": actions,
	}, nil
}

func (p *renderPass) fields(fields []model.Field) ([]any, error) {
	out := make([]any, 0, len(fields))
	for _, field := range fields {
		markup, err := p.field(field)
		if err != nil {
			return nil, err
		}
		out = append(out, markup)
	}
	return out, nil
}

func (p *renderPass) field(field model.Field) (string, error) {
	if value, ok := p.options.Values[field.Name]; ok {
		field.Value = formstate.DisplayValue(value)
	}
	field.Errors = render.MergeFormErrors(field.Errors, p.options.Errors[field.Name]...)

	name := p.overrides[field.Name]
	if name == "" {
		name = components.NameInput
		if field.Type == model.FieldTypeHidden {
			name = components.NameHidden
		}
	}

	id := fieldID(p.form.ID, field.Name)
	var describedBy []string
	if field.Description != "" {
		describedBy = append(describedBy, id+"-description")
	}
	if len(field.Errors) > 0 {
		describedBy = append(describedBy, id+"-error")
	}

	return p.component(name, field.Name, map[string]any{
		"field":       field,
		"id":          id,
		"input_type":  inputType(field),
		"min":         ruleParam(field, model.ValidationRuleMin, "value"),
		"describedby": strings.Join(describedBy, " "),
	})
}

func (p *renderPass) actions(actions []model.Action) ([]any, error) {
	out := make([]any, 0, len(actions))
	for _, action := range actions {
		markup, err := p.action(action, false)
		if err != nil {
			return nil, err
		}
		out = append(out, markup)
	}
	return out, nil
}

func (p *renderPass) action(action model.Action, submit bool) (string, error) {
	name := components.NameAction
	if action.Kind == model.ActionRedirect || action.Href != "" {
		name = components.NameRedirect
	}
	return p.component(name, action.Value, map[string]any{
		"action":       action,
		"action_field": p.actionField,
		"icon":         render.SanitizeIcon(action.Icon),
		"submit":       submit,
	})
}

func (p *renderPass) component(name, target string, payload map[string]any) (string, error) {
	descriptor, ok := p.registry.Descriptor(name)
	if !ok {
		return "", fmt.Errorf("vanilla renderer: component %q not registered for %q", name, target)
	}
	var buf bytes.Buffer
	data := components.ComponentData{Template: p.templates, Partials: p.partials}
	if err := descriptor.Renderer(&buf, payload, data); err != nil {
		return "", fmt.Errorf("vanilla renderer: render %q: %w", target, err)
	}
	if !slices.Contains(p.used, name) {
		p.used = append(p.used, name)
	}
	return buf.String(), nil
}

func fieldID(formID, path string) string {
	id := gotemplate.DOMID(path)
	if prefix := gotemplate.DOMID(formID); prefix != "" {
		return prefix + "-" + id
	}
	return id
}

func inputType(field model.Field) string {
	if field.InputType != "" {
		return field.InputType
	}
	switch field.Type {
	case model.FieldTypeNumber:
		return "number"
	case model.FieldTypeHidden:
		return "hidden"
	default:
		return "text"
	}
}

func ruleParam(field model.Field, kind, param string) string {
	for _, rule := range field.Validations {
		if rule.Kind == kind {
			return rule.Params[param]
		}
	}
	return ""
}
