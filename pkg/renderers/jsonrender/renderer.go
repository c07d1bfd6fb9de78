// Package jsonrender serialises parsed cards back to JSON.
package jsonrender

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-cardkit/pkg/card"
	"github.com/goliatone/go-cardkit/pkg/render"
)

// Name is the registry name of the JSON renderer.
const Name = "json"

type Option func(*Renderer)

// WithIndent sets the indentation used for output. Empty produces compact
// JSON.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer emits the canonical serialised form of a card. With
// ShowDiagnostics the card is wrapped as {"card": ..., "diagnostics": [...]}.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, doc *card.Card, options render.RenderOptions) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("json renderer: card is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var payload any = doc.Serialize()
	if options.ShowDiagnostics {
		diagnostics := options.Diagnostics
		if diagnostics == nil {
			diagnostics = []card.Diagnostic{}
		}
		payload = map[string]any{"card": payload, "diagnostics": diagnostics}
	}

	var (
		out []byte
		err error
	)
	if r.indent == "" {
		out, err = json.Marshal(payload)
	} else {
		out, err = json.MarshalIndent(payload, "", r.indent)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: marshal card: %w", err)
	}
	return append(out, '\n'), nil
}
