package render

import (
	"context"

	"github.com/goliatone/go-cardkit/pkg/card"
)

// Renderer converts a parsed card into a byte representation (HTML, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc *card.Card, options RenderOptions) ([]byte, error)
}
