package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-cardkit/pkg/card"
	"github.com/goliatone/go-cardkit/pkg/render"
	rendertemplate "github.com/goliatone/go-cardkit/pkg/render/template"
	"github.com/goliatone/go-cardkit/pkg/render/template/pongo"
	"github.com/goliatone/go-cardkit/pkg/schedule"
)

// Name is the registry name of the HTML renderer.
const Name = "html"

const pageTemplate = "templates/page.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetURL         string
	lang             string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain templates/page.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAssetURL links the stylesheet and runtime script from prefix instead
// of inlining them into the page.
func WithAssetURL(prefix string) Option {
	return func(cfg *config) {
		cfg.assetURL = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// WithLang sets the page language attribute.
func WithLang(lang string) Option {
	return func(cfg *config) {
		if lang = strings.TrimSpace(lang); lang != "" {
			cfg.lang = lang
		}
	}
}

// Renderer exports a card as a standalone HTML page. The box tree is
// rendered once with a static clock and disposed before returning, so no
// timers outlive Render; the runtime script restores navigation in the
// browser from the data attributes.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	assetURL  string
	lang      string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), lang: "en"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, assetURL: cfg.assetURL, lang: cfg.lang}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, doc *card.Card, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if doc == nil {
		return nil, fmt.Errorf("vanilla renderer: card is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := Fragment(doc, options.Context)
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"lang":          r.lang,
		"title":         pageTitle(doc, options.Title),
		"body":          body,
		"fallback_text": doc.FallbackText,
		"asset_url":     r.assetURL,
		"stylesheet":    StylesheetName,
		"script":        RuntimeScriptName,
	}
	if r.assetURL == "" {
		data["inline_stylesheet"] = readAsset(StylesheetName)
		data["inline_script"] = readAsset(RuntimeScriptName)
	}
	page := pageTemplate
	if options.Theme != nil {
		data["theme"] = map[string]any{
			"name":       options.Theme.Theme,
			"variant":    options.Theme.Variant,
			"style":      render.CSSVarsStyle(options.Theme),
			"stylesheet": render.ThemeAssetURL(options.Theme, render.AssetStylesheet),
		}
		if partial := strings.TrimSpace(options.Theme.Partials[render.PartialPage]); partial != "" {
			page = partial
		}
	}
	if options.ShowDiagnostics && len(options.Diagnostics) > 0 {
		data["diagnostics"] = diagnosticsView(render.MapDiagnostics(options.Diagnostics))
	}

	result, err := r.templates.RenderTemplate(page, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// Fragment renders the card box tree to HTML without the page shell. A nil
// rctx uses a manual clock and sequential carousel ids.
func Fragment(doc *card.Card, rctx *card.RenderContext) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("vanilla renderer: card is nil")
	}
	if rctx == nil {
		rctx = StaticContext()
	}
	root := doc.Render(rctx)
	defer root.Dispose()

	out, err := root.HTML()
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: export html: %w", err)
	}
	return out, nil
}

// StaticContext returns a render context whose timers never fire and whose
// ids are "cardkit-1", "cardkit-2", ... so exported HTML is reproducible.
func StaticContext(options ...card.RenderOption) *card.RenderContext {
	next := 0
	base := []card.RenderOption{
		card.WithScheduler(schedule.NewManual()),
		card.WithIDGenerator(func() string {
			next++
			return "cardkit-" + strconv.Itoa(next)
		}),
	}
	return card.NewRenderContext(append(base, options...)...)
}

func pageTitle(doc *card.Card, title string) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}
	if fallback := strings.TrimSpace(doc.FallbackText); fallback != "" {
		return fallback
	}
	return "Card"
}

func diagnosticsView(mapping render.DiagnosticMapping) map[string]any {
	entries := make([]map[string]any, 0, len(mapping.Paths))
	for _, path := range mapping.SortedPaths() {
		entries = append(entries, map[string]any{
			"path":     path,
			"messages": mapping.Paths[path],
		})
	}
	return map[string]any{
		"errors":   mapping.Errors,
		"warnings": mapping.Warnings,
		"document": mapping.Document,
		"entries":  entries,
	}
}
