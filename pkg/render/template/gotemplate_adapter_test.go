package template_test

import (
	"embed"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-curatorform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-curatorform/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_DOMIDFilter(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("field-id.tpl", map[string]any{"path": "socialLinks.1.link"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "field-id.golden"))
	if result != want || written != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q (writer %q)", want, result, written)
	}
}

func TestGoTemplateEngine_StructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)

	data := struct {
		Name string `json:"name"`
	}{Name: "Grace"}
	got, err := engine.RenderTemplate("hello", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "Hello Grace") {
		t.Fatalf("expected json-tagged field in output, got %q", got)
	}
}

func TestGoTemplateEngine_RejectsNonObjectData(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("hello", []string{"Ada"}); err == nil {
		t.Fatalf("expected error for non-object data")
	}
}

func TestGoTemplateEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("absent", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestGoTemplateEngine_RequiresFS(t *testing.T) {
	if _, err := gotemplate.New(gotemplate.WithExtension("tmpl")); err == nil {
		t.Fatalf("expected error without template fs")
	}
}

func TestGoTemplateEngine_ConcurrentRenders(t *testing.T) {
	engine := newEngine(t)
	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
			if err != nil {
				errs <- err.Error()
				return
			}
			if got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Fatalf("concurrent render: %s", msg)
	}
}

func TestDOMID(t *testing.T) {
	cases := map[string]string{
		"name":               "name",
		"playlists.0.link":   "playlists-0-link",
		" socialLinks.2.x. ": "socialLinks-2-x",
		"":                   "",
	}
	for in, want := range cases {
		if got := gotemplate.DOMID(in); got != want {
			t.Fatalf("DOMID(%q) = %q, want %q", in, got, want)
		}
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
