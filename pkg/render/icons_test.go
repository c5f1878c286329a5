package render_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-curatorform/pkg/render"
)

func TestSanitizeIconStripsActiveContent(t *testing.T) {
	raw := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" onload="alert(1)"><script>alert(1)</script><path d="M0 0h24" onclick="x()"/><foreignObject><a href="javascript:x()">x</a></foreignObject></svg>`
	got := render.SanitizeIcon(raw)

	for _, banned := range []string{"onload", "script", "onclick", "foreignObject", "javascript:"} {
		if strings.Contains(got, banned) {
			t.Fatalf("sanitized icon still contains %q: %s", banned, got)
		}
	}
	if !strings.HasPrefix(got, "<svg") || !strings.Contains(got, `d="M0 0h24"`) {
		t.Fatalf("presentational markup should survive: %s", got)
	}
}

func TestSanitizeIconEmpty(t *testing.T) {
	if got := render.SanitizeIcon("   "); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
