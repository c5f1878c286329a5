package template

import (
	"io"
)

// TemplateRenderer is the engine seam used by the HTML renderer. RenderTemplate
// returns the output and also writes it to any writers passed in.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
