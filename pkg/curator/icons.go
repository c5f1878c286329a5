package curator

import (
	"embed"
	"sync"

	"github.com/goliatone/go-curatorform/pkg/render"
)

//go:embed icons/*.svg
var iconFiles embed.FS

var (
	iconCacheMu sync.RWMutex
	iconCache   = map[Platform]string{}
)

// Icon returns sanitised SVG markup for p. Unknown platforms have no icon.
func Icon(p Platform) string {
	switch p {
	case Instagram:
		return loadIcon(p, "icons/instagram.svg")
	case YouTube:
		return loadIcon(p, "icons/youtube.svg")
	case Facebook:
		return loadIcon(p, "icons/facebook.svg")
	case Twitter:
		return loadIcon(p, "icons/twitter.svg")
	case TikTok:
		return loadIcon(p, "icons/tikTok.svg")
	default:
		return ""
	}
}

func loadIcon(p Platform, name string) string {
	iconCacheMu.RLock()
	markup, ok := iconCache[p]
	iconCacheMu.RUnlock()
	if ok {
		return markup
	}

	raw, err := iconFiles.ReadFile(name)
	if err != nil {
		return ""
	}
	markup = render.SanitizeIcon(string(raw))

	iconCacheMu.Lock()
	iconCache[p] = markup
	iconCacheMu.Unlock()
	return markup
}
