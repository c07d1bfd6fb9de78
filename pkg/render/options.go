package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardkit/pkg/card"
)

// RenderOptions describe per-request data renderers use to customise output
// without mutating the parsed card.
type RenderOptions struct {
	// Title is used by page-level renderers for the document title.
	Title string
	// Theme carries resolved tokens and CSS custom properties. Nil renders the
	// built-in look.
	Theme *theme.RendererConfig
	// Diagnostics from parsing and validation. HTML output lists them when
	// ShowDiagnostics is set.
	Diagnostics     []card.Diagnostic
	ShowDiagnostics bool
	// Context overrides the element render context. When nil, renderers build
	// a static one so no auto-advance timers outlive the call.
	Context *card.RenderContext
}
