package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardkit/pkg/card"
	"github.com/goliatone/go-cardkit/pkg/extensions"
	"github.com/goliatone/go-cardkit/pkg/loader"
	"github.com/goliatone/go-cardkit/pkg/render"
	"github.com/goliatone/go-cardkit/pkg/renderers/jsonrender"
	"github.com/goliatone/go-cardkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-cardkit/pkg/validation"
)

const defaultRendererName = vanilla.Name

// ErrInvalidCard is returned in strict mode when a document has error
// diagnostics.
var ErrInvalidCard = errors.New("orchestrator: card has errors")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(l *loader.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = l
	}
}

// WithElements injects the element registry used for parsing.
func WithElements(reg *card.Registry) Option {
	return func(o *Orchestrator) {
		o.elements = reg
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithValidator runs the schema and element validation pass before
// rendering.
func WithValidator(v *validation.Validator) Option {
	return func(o *Orchestrator) {
		o.validator = v
	}
}

// WithStrict makes Generate fail with ErrInvalidCard when the document has
// error diagnostics.
func WithStrict(strict bool) Option {
	return func(o *Orchestrator) {
		o.strict = strict
	}
}

// WithThemeSelector resolves request themes through selector.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithDefaultTheme sets the theme and variant used when a request names
// none.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from card document to rendered
// output. It defaults to the extension element set and the html and json
// renderers.
type Orchestrator struct {
	loader          *loader.Loader
	elements        *card.Registry
	registry        *render.Registry
	validator       *validation.Validator
	themeSelector   theme.ThemeSelector
	logger          *log.Logger
	defaultRenderer string
	defaultTheme    string
	defaultVariant  string
	strict          bool
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          log.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a card.
type Request struct {
	// Source identifies where the card document lives. Optional when
	// Document is supplied.
	Source loader.Source

	// Document bypasses the loader.
	Document *loader.Document

	// Renderer names the renderer to use, falling back to the default.
	Renderer string

	// ThemeName and ThemeVariant select a theme through the configured
	// selector, falling back to the default theme.
	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions
}

// Prepared is a parsed card ready to render.
type Prepared struct {
	Card        *card.Card
	Diagnostics []card.Diagnostic
	Theme       *theme.RendererConfig
	Location    string
}

// Generate executes load → parse → validate → theme → render and returns
// the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	prepared, err := o.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil {
		options.Theme = prepared.Theme
	}
	options.Diagnostics = append(append([]card.Diagnostic(nil), options.Diagnostics...), prepared.Diagnostics...)

	output, err := renderer.Render(ctx, prepared.Card, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug("rendered card", "renderer", renderer.Name(), "source", prepared.Location, "bytes", len(output))
	return output, nil
}

// Prepare runs every stage except rendering.
func (o *Orchestrator) Prepare(ctx context.Context, req Request) (*Prepared, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	raw, err := doc.Decode()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: decode %s: %w", doc.Location(), err)
	}

	prepared := &Prepared{Location: doc.Location()}
	if o.validator != nil {
		result, err := o.validator.Validate(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: validate: %w", err)
		}
		prepared.Card = result.Card
		prepared.Diagnostics = result.Diagnostics()
	} else {
		pctx := card.NewParseContext(o.elements, card.WithParseLogger(o.logger))
		prepared.Card = card.ParseMap(raw, pctx)
		prepared.Card.Validate(pctx)
		prepared.Diagnostics = pctx.Diagnostics()
	}
	if o.strict && card.HasErrors(prepared.Diagnostics) {
		return prepared, fmt.Errorf("%w: %s", ErrInvalidCard, firstError(prepared.Diagnostics))
	}

	prepared.Theme, err = o.resolveTheme(req)
	if err != nil {
		return nil, err
	}
	return prepared, nil
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (loader.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return loader.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return loader.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if req.RenderOptions.Theme != nil {
		return req.RenderOptions.Theme, nil
	}
	name, variant := req.ThemeName, req.ThemeVariant
	if name == "" {
		name = o.defaultTheme
		if variant == "" {
			variant = o.defaultVariant
		}
	}
	if o.themeSelector == nil {
		if req.ThemeName != "" {
			return nil, fmt.Errorf("orchestrator: theme %q requested but no theme selector configured", req.ThemeName)
		}
		return nil, nil
	}
	cfg, err := render.ResolveTheme(o.themeSelector, name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return cfg, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = loader.New()
	}
	if o.elements == nil {
		o.elements = extensions.NewRegistry(extensions.WithLogger(o.logger))
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
		o.registry.MustRegister(jsonrender.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

func firstError(diagnostics []card.Diagnostic) string {
	for _, d := range diagnostics {
		if d.Severity == card.SeverityError {
			return d.String()
		}
	}
	return ""
}
