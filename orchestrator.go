package cardkit

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardkit/pkg/loader"
	"github.com/goliatone/go-cardkit/pkg/orchestrator"
	"github.com/goliatone/go-cardkit/pkg/render"
)

// RenderOptions describes per-request renderer inputs (title, theme,
// diagnostics).
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeManifests registers manifests in a selector and uses the first as
// the default theme.
func WithThemeManifests(manifests ...*theme.Manifest) (orchestrator.Option, error) {
	selector, err := orchestrator.NewManifestSelector(manifests...)
	if err != nil {
		return nil, err
	}
	return orchestrator.WithThemeSelector(selector), nil
}

// RenderHTML loads source and renders it as a standalone HTML page.
func RenderHTML(ctx context.Context, source loader.Source, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Source: source})
}

// RenderHTMLFromBytes renders an in-memory document, bypassing the loader.
func RenderHTMLFromBytes(ctx context.Context, name string, data []byte, options ...orchestrator.Option) ([]byte, error) {
	doc, err := loader.NewDocument(loader.FromFS(name), data)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Document: &doc})
}
