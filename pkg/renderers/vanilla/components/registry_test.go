package components

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistryDescriptorClone(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, payload map[string]any, data ComponentData) error { return nil }

	if err := reg.Register("test", Descriptor{Renderer: renderer, Stylesheets: []string{"/a.css"}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	desc, ok := reg.Descriptor("TEST")
	if !ok {
		t.Fatalf("descriptor not found")
	}

	desc.Stylesheets = append(desc.Stylesheets, "/mutated.css")

	original, _ := reg.Descriptor("test")
	if len(original.Stylesheets) != 1 || original.Stylesheets[0] != "/a.css" {
		t.Fatalf("registry descriptor mutated: %#v", original.Stylesheets)
	}
}

func TestRegistryRejectsInvalidDescriptors(t *testing.T) {
	reg := New()
	if err := reg.Register(" ", Descriptor{Renderer: func(*bytes.Buffer, map[string]any, ComponentData) error { return nil }}); err == nil {
		t.Fatalf("expected name error")
	}
	if err := reg.Register("input", Descriptor{}); err == nil {
		t.Fatalf("expected nil renderer error")
	}
}

func TestRegistryStylesheetsDeduplicates(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, payload map[string]any, data ComponentData) error { return nil }

	reg.MustRegister("input", Descriptor{Renderer: renderer, Stylesheets: []string{"/shared.css", "/input.css"}})
	reg.MustRegister("action", Descriptor{Renderer: renderer, Stylesheets: []string{"/shared.css", "/action.css"}})

	got := reg.Stylesheets([]string{"input", "action", "missing"})
	want := []string{"/shared.css", "/input.css", "/action.css"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
}

type recordingTemplates struct {
	names []string
}

func (r *recordingTemplates) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	r.names = append(r.names, name)
	return "<" + name + ">", nil
}

func TestDefaultRegistryHonoursPartials(t *testing.T) {
	reg := NewDefaultRegistry()
	if diff := cmp.Diff([]string{NameAction, NameHidden, NameInput, NameRedirect}, reg.Names()); diff != "" {
		t.Fatalf("default components mismatch (-want +got):\n%s", diff)
	}

	templates := &recordingTemplates{}
	desc, _ := reg.Descriptor(NameInput)
	var buf bytes.Buffer
	data := ComponentData{Template: templates, Partials: map[string]string{"forms.input": "custom/input.tmpl"}}
	if err := desc.Renderer(&buf, map[string]any{}, data); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "<custom/input.tmpl>" {
		t.Fatalf("expected partial override, got %q", buf.String())
	}

	buf.Reset()
	if err := desc.Renderer(&buf, map[string]any{}, ComponentData{Template: templates}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "<templates/components/input.tmpl>" {
		t.Fatalf("expected default template, got %q", buf.String())
	}

	if err := desc.Renderer(&buf, map[string]any{}, ComponentData{}); err == nil {
		t.Fatalf("expected error without template renderer")
	}
}
