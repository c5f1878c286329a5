// Package curatorform is the entry point for embedding the curator
// information form: build a form, render it with a named renderer, or mount
// the HTTP component from components/curatorform.
package curatorform

import (
	"context"
	"fmt"

	"github.com/goliatone/go-curatorform/components/curatorform"
	"github.com/goliatone/go-curatorform/pkg/curator"
	"github.com/goliatone/go-curatorform/pkg/formstate"
	"github.com/goliatone/go-curatorform/pkg/render"
)

// Config aliases curator.Config for callers of the root package.
type Config = curator.Config

// Profile is the submitted form value.
type Profile = curator.Profile

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// NewForm builds a curator form over a fresh in-memory state seeded with the
// default values (one empty playlist row).
func NewForm(cfg Config, onSubmit curator.SubmitFunc, options ...formstate.Option) (*curator.Form, error) {
	return curator.New(formstate.New(curator.DefaultValues(), options...), onSubmit, cfg)
}

// Render renders form with the named renderer from the default registry
// ("vanilla" for HTML, "json" for the form model).
func Render(ctx context.Context, form *curator.Form, rendererName string, options RenderOptions) ([]byte, error) {
	if form == nil {
		return nil, fmt.Errorf("curatorform: form is required")
	}
	registry, err := curatorform.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form.Model(), options)
}

// GenerateHTML renders an empty form for cfg as HTML.
func GenerateHTML(ctx context.Context, cfg Config) ([]byte, error) {
	form, err := NewForm(cfg, func(context.Context, Profile) error { return nil })
	if err != nil {
		return nil, err
	}
	return Render(ctx, form, "vanilla", RenderOptions{})
}
