// Package cardkit renders declarative card documents with responsive
// layouts and paged carousels.
//
// Quick start:
//
//	page, err := cardkit.RenderHTML(ctx, loader.FromFile("welcome.json"))
//
// The subpackages expose each stage: pkg/card (host elements), pkg/layout
// and pkg/carousel (the extensions), pkg/extensions (registration),
// pkg/validation, pkg/orchestrator and the renderers under pkg/renderers.
package cardkit
