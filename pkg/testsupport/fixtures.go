package testsupport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-curatorform/pkg/formstate"
)

// SequentialKeys makes controllers mint predictable row keys
// ("row-1", "row-2", ...) so rendered output can be compared to goldens.
func SequentialKeys(prefix string) formstate.Option {
	n := 0
	return formstate.WithKeyGenerator(func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	})
}

// ValidValues returns flat form values that pass every field check of the
// curator form with its default single playlist row.
func ValidValues() map[string]string {
	return map[string]string{
		"name":             "David",
		"email":            "dmicofficial@gmail.com",
		"origin":           "Los Angeles, California",
		"playlists.0.link": "https://open.spotify.com/playlist/37i9dQZF1DX0XUsuxWHRQd",
		"playlists.0.cost": "25",
	}
}

// MustUnmarshalJSON decodes data into a T or fails the test.
func MustUnmarshalJSON[T any](t *testing.T, data []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal json: %v\n%s", err, data)
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
