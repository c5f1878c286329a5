package vanilla_test

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/goliatone/go-curatorform/pkg/curator"
	"github.com/goliatone/go-curatorform/pkg/formstate"
	"github.com/goliatone/go-curatorform/pkg/model"
	"github.com/goliatone/go-curatorform/pkg/render"
	"github.com/goliatone/go-curatorform/pkg/renderers/vanilla"
	"github.com/goliatone/go-curatorform/pkg/testsupport"
)

func curatorModel(t *testing.T, cfg curator.Config, mutate func(*curator.Form)) model.FormModel {
	t.Helper()
	state := formstate.New(curator.DefaultValues(), testsupport.SequentialKeys("row"))
	form, err := curator.New(state, func(context.Context, curator.Profile) error { return nil }, cfg)
	if err != nil {
		t.Fatalf("curator.New: %v", err)
	}
	if mutate != nil {
		mutate(form)
	}
	return form.Model()
}

func renderHTML(t *testing.T, form model.FormModel, options render.RenderOptions) string {
	t.Helper()
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), form, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(output)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func assertNotContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(html, fragment) {
			t.Fatalf("expected output not to contain %q\n%s", fragment, html)
		}
	}
}

func TestRendererNamesInputsByPath(t *testing.T) {
	form := curatorModel(t, curator.Config{}, func(f *curator.Form) {
		if err := f.AppendSocial(curator.TikTok); err != nil {
			t.Fatalf("AppendSocial: %v", err)
		}
	})
	html := renderHTML(t, form, render.RenderOptions{})

	assertContains(t, html,
		`<form id="curator-information" class="curator-form" method="post" action="/curator"`,
		`name="name"`,
		`name="email" type="email"`,
		`name="phone" type="tel"`,
		`name="origin"`,
		`name="playlists.0.link" type="url"`,
		`name="playlists.0.cost" type="number"`,
		`min="0"`,
		`<input type="hidden" id="curator-information-socialLinks-0-name" name="socialLinks.0.name" value="tikTok">`,
		`name="socialLinks.0.link" type="url"`,
		`data-key="row-1" data-index="0"`,
		`placeholder="For example, dmicofficial@gmail.com"`,
		`<span class="curator-field__subtitle" id="curator-information-phone-description">Optional</span>`,
		`<span class="curator-section__title">Social Media Links</span>`,
		`name="_action" value="append-playlist" formnovalidate`,
		`name="_action" value="remove-social:0:tikTok" formnovalidate aria-label="Remove TikTok"><svg`,
		`name="_action" value="append-social:instagram" formnovalidate aria-label="Instagram"><svg`,
		`name="_action" value="submit">Continue</button>`,
	)
	assertNotContains(t, html, `name="password"`, `value="append-social:tikTok"`)
}

func TestRendererDefaultButtonSubmits(t *testing.T) {
	form := curatorModel(t, curator.Config{}, func(f *curator.Form) {
		if err := f.AppendSocial(curator.Instagram); err != nil {
			t.Fatalf("AppendSocial: %v", err)
		}
	})
	html := renderHTML(t, form, render.RenderOptions{})

	first := firstSubmitButton.FindStringSubmatch(html)
	if first == nil {
		t.Fatalf("no submit button rendered\n%s", html)
	}
	if first[1] != "_action" || first[2] != "submit" {
		t.Fatalf("implicit submission would send %s=%q, want _action=\"submit\"", first[1], first[2])
	}
	if strings.Index(html, first[0]) > strings.Index(html, `value="append-playlist"`) {
		t.Fatalf("default button must precede the playlist controls\n%s", html)
	}
}

var firstSubmitButton = regexp.MustCompile(`<button type="submit"[^>]*name="([^"]*)" value="([^"]*)"`)

func TestRendererPasswordField(t *testing.T) {
	form := curatorModel(t, curator.Config{PasswordField: true}, nil)
	html := renderHTML(t, form, render.RenderOptions{})
	assertContains(t, html, `name="password" type="password"`, `placeholder="*****"`)
}

func TestRendererAppliesValuesAndErrors(t *testing.T) {
	form := curatorModel(t, curator.Config{}, nil)
	html := renderHTML(t, form, render.RenderOptions{
		Values: map[string]any{"name": `<script>alert("x")</script>`},
		Errors: map[string][]string{
			"email":            {"Incorrect Email Address"},
			"playlists.0.link": {"Required"},
		},
		FormErrors: []string{"Something went wrong"},
		Hidden:     map[string]string{"_csrf": "token-123"},
	})

	assertContains(t, html,
		`value="&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;"`,
		`<p class="curator-field__error" id="curator-information-email-error" role="alert">Incorrect Email Address</p>`,
		`aria-describedby="curator-information-email-error" aria-invalid="true"`,
		`curator-field curator-field--invalid" data-field="playlists.0.link"`,
		`<input type="hidden" name="_csrf" value="token-123">`,
		`<p>Something went wrong</p>`,
	)
	assertNotContains(t, html, `<script>`)
}

func TestRendererPlaylistRemoveControls(t *testing.T) {
	deny := curatorModel(t, curator.Config{PlaylistsSettings: &curator.PlaylistsSettings{DenyButton: true}}, func(f *curator.Form) {
		_ = f.AppendPlaylist()
	})
	html := renderHTML(t, deny, render.RenderOptions{})
	assertNotContains(t, html, `value="remove-playlist:0"`)
	assertContains(t, html, `value="remove-playlist:1"`)

	redirect := curatorModel(t, curator.Config{PlaylistsSettings: &curator.PlaylistsSettings{RedirectOnRemoveFirst: "/playlists"}}, nil)
	html = renderHTML(t, redirect, render.RenderOptions{})
	assertContains(t, html, `<a class="curator-action curator-action--redirect" href="/playlists">Remove playlist</a>`)
}

func TestRendererMethodOverride(t *testing.T) {
	form := curatorModel(t, curator.Config{}, nil)
	html := renderHTML(t, form, render.RenderOptions{Method: "patch"})
	assertContains(t, html, `method="post"`, `<input type="hidden" name="_method" value="PATCH">`)
}

func TestRendererSanitizesIcons(t *testing.T) {
	form := model.FormModel{
		ID:       "icons",
		Endpoint: "/icons",
		Method:   "POST",
		Sections: []model.Section{{
			Name: "socialButtons",
			Actions: []model.Action{{
				Kind:  model.ActionAppendSocial,
				Value: "append-social:instagram",
				Label: "Instagram",
				Icon:  `<svg viewBox="0 0 24 24" onload="alert(1)"><path d="M0 0"/></svg>`,
			}},
		}},
	}
	html := renderHTML(t, form, render.RenderOptions{})
	assertContains(t, html, `d="M0 0"`)
	assertNotContains(t, html, "onload")
}

func TestRendererWithTemplateRenderer(t *testing.T) {
	stub := &stubTemplateRenderer{
		renderTemplateFunc: func(name string, data any, out ...io.Writer) (string, error) {
			if name == "templates/form.tmpl" {
				return "custom-output", nil
			}
			return "<component />", nil
		},
	}

	renderer, err := vanilla.New(vanilla.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), curatorModel(t, curator.Config{}, nil), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(output) != "custom-output" {
		t.Fatalf("expected stub output, got %q", output)
	}
	if stub.calls == 0 {
		t.Fatalf("expected component templates to be rendered through the stub")
	}
}

func TestRendererPropagatesTemplateErrors(t *testing.T) {
	stub := &stubTemplateRenderer{
		renderTemplateFunc: func(string, any, ...io.Writer) (string, error) {
			return "", errors.New("boom")
		},
	}
	renderer, err := vanilla.New(vanilla.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Render(testsupport.Context(), curatorModel(t, curator.Config{}, nil), render.RenderOptions{}); err == nil {
		t.Fatalf("expected template error")
	}
}

func TestRendererHonoursCancelledContext(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, model.FormModel{}, render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type stubTemplateRenderer struct {
	renderTemplateFunc func(name string, data any, out ...io.Writer) (string, error)
	calls              int
}

func (s *stubTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	s.calls++
	return s.renderTemplateFunc(name, data, out...)
}
