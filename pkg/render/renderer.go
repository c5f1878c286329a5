package render

import (
	"context"

	"github.com/goliatone/go-curatorform/pkg/model"
)

// Renderer turns a FormModel into bytes (HTML, JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
