package cardkit

import (
	"github.com/goliatone/go-cardkit/pkg/card"
	"github.com/goliatone/go-cardkit/pkg/extensions"
	"github.com/goliatone/go-cardkit/pkg/loader"
)

// NewLoader constructs a document loader.
func NewLoader(options ...loader.Option) *loader.Loader {
	return loader.New(options...)
}

// NewRegistry returns the host element set with the layout container,
// Carousel, and CarouselPage installed.
func NewRegistry(options ...extensions.Option) *card.Registry {
	return extensions.NewRegistry(options...)
}

// Parse decodes data (JSON or YAML), parses it with the extension registry,
// and runs validation. Only undecodable input is an error; everything else
// is reported through the returned diagnostics.
func Parse(data []byte, options ...card.ParseOption) (*card.Card, []card.Diagnostic, error) {
	ctx := card.NewParseContext(NewRegistry(), options...)
	doc, err := card.Parse(data, ctx)
	if err != nil {
		return nil, nil, err
	}
	doc.Validate(ctx)
	return doc, ctx.Diagnostics(), nil
}
