package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardkit/pkg/card"
	"github.com/goliatone/go-cardkit/pkg/loader"
	"github.com/goliatone/go-cardkit/pkg/render"
	"github.com/goliatone/go-cardkit/pkg/testsupport"
	"github.com/goliatone/go-cardkit/pkg/validation"
)

const slidesDoc = `{
	"type": "AdaptiveCard",
	"version": "1.5",
	"body": [{
		"type": "Carousel",
		"pages": [
			{"type": "CarouselPage", "items": [{"type": "TextBlock", "text": "One"}]},
			{"type": "CarouselPage", "items": [{"type": "TextBlock", "text": "Two"}]}
		]
	}]
}`

func slidesDocument() *loader.Document {
	doc := loader.MustNewDocument(loader.FromFS("slides.json"), []byte(slidesDoc))
	return &doc
}

func TestOrchestratorGeneratesHTMLByDefault(t *testing.T) {
	orch := New(WithLogger(testsupport.QuietLogger()))

	out, err := orch.Generate(testsupport.Context(), Request{Document: slidesDocument()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	page := string(out)
	for _, want := range []string{"<!DOCTYPE html>", `data-carousel-id="cardkit-1"`, "One", "Two"} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestOrchestratorLoadsSourcesAndSelectsRenderer(t *testing.T) {
	files := fstest.MapFS{"cards/slides.json": {Data: []byte(slidesDoc)}}
	orch := New(
		WithLogger(testsupport.QuietLogger()),
		WithLoader(loader.New(loader.WithFileSystem(files))),
	)

	out, err := orch.Generate(testsupport.Context(), Request{
		Source:   loader.FromFS("cards/slides.json"),
		Renderer: "JSON",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(string(out), "{") || !strings.Contains(string(out), `"type": "Carousel"`) {
		t.Fatalf("expected json output, got %s", out)
	}

	if _, err := orch.Generate(testsupport.Context(), Request{Document: slidesDocument(), Renderer: "pdf"}); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
	if _, err := orch.Generate(testsupport.Context(), Request{}); err == nil {
		t.Fatalf("expected error without source or document")
	}
}

func TestOrchestratorPassesThemeAndDiagnosticsToRenderer(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:     "acme",
			Tokens:   map[string]string{"brand": "#123456"},
			Variants: map[string]theme.Variant{"dark": {Tokens: map[string]string{"brand": "#654321"}}},
		},
	}}
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithLogger(testsupport.QuietLogger()),
		WithRegistry(registry),
		WithThemeSelector(selector),
	)

	doc := loader.MustNewDocument(loader.FromFS("card.json"), []byte(`{"type":"AdaptiveCard","body":[{"type":"TextBlock"}]}`))
	_, err := orch.Generate(context.Background(), Request{
		Document:     &doc,
		ThemeName:    "acme",
		ThemeVariant: "dark",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if diff := cmp.Diff([][2]string{{"acme", "dark"}}, selector.calls); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}
	cfg := renderer.options.Theme
	if cfg == nil || cfg.Tokens["brand"] != "#654321" || cfg.CSSVars["--cardkit-brand"] != "#654321" {
		t.Fatalf("unexpected theme config: %+v", cfg)
	}
	if len(renderer.options.Diagnostics) != 1 || renderer.options.Diagnostics[0].Path != "/body/0" {
		t.Fatalf("unexpected diagnostics: %+v", renderer.options.Diagnostics)
	}
}

func TestOrchestratorUsesDefaultThemeFromManifestSelector(t *testing.T) {
	selector, err := NewManifestSelector(
		&theme.Manifest{Name: "plain"},
		&theme.Manifest{
			Name:     "acme",
			Tokens:   map[string]string{"brand": "#123456"},
			Variants: map[string]theme.Variant{"dark": {Tokens: map[string]string{"brand": "#000000"}}},
		},
	)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	if err := selector.SetDefault("ACME", "dark"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(WithLogger(testsupport.QuietLogger()), WithRegistry(registry), WithThemeSelector(selector))
	if _, err := orch.Generate(context.Background(), Request{Document: slidesDocument()}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if cfg := renderer.options.Theme; cfg == nil || cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected theme config: %+v", cfg)
	}

	if _, err := orch.Generate(context.Background(), Request{Document: slidesDocument(), ThemeName: "plain"}); err != nil {
		t.Fatalf("generate plain: %v", err)
	}
	if cfg := renderer.options.Theme; cfg.Theme != "plain" || cfg.Variant != "" {
		t.Fatalf("unexpected plain theme config: %+v", cfg)
	}

	if _, err := orch.Generate(context.Background(), Request{Document: slidesDocument(), ThemeName: "acme", ThemeVariant: "neon"}); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}

func TestOrchestratorRejectsThemeWithoutSelector(t *testing.T) {
	orch := New(WithLogger(testsupport.QuietLogger()))
	if _, err := orch.Generate(context.Background(), Request{Document: slidesDocument(), ThemeName: "acme"}); err == nil {
		t.Fatalf("expected error when no selector is configured")
	}
}

func TestOrchestratorStrictModeFailsOnErrors(t *testing.T) {
	orch := New(WithLogger(testsupport.QuietLogger()), WithStrict(true))
	doc := loader.MustNewDocument(loader.FromFS("card.json"), []byte(`{"type":"AdaptiveCard","body":[{"type":"Image"}]}`))

	prepared, err := orch.Prepare(context.Background(), Request{Document: &doc})
	if !errors.Is(err, ErrInvalidCard) {
		t.Fatalf("expected ErrInvalidCard, got %v", err)
	}
	if prepared == nil || !card.HasErrors(prepared.Diagnostics) {
		t.Fatalf("expected prepared card with error diagnostics")
	}
}

func TestOrchestratorRunsValidator(t *testing.T) {
	ctx := context.Background()
	validator, err := validation.New(ctx, validation.WithLogger(testsupport.QuietLogger()))
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	orch := New(WithLogger(testsupport.QuietLogger()), WithValidator(validator))
	doc := loader.MustNewDocument(loader.FromFS("card.json"), []byte(`{"type":"AdaptiveCard","body":[{"type":"Carousel","timer":"fast","pages":[]}]}`))

	prepared, err := orch.Prepare(ctx, Request{Document: &doc})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	var paths []string
	for _, d := range prepared.Diagnostics {
		paths = append(paths, d.Path)
	}
	found := false
	for _, path := range paths {
		if path == "/body/0/timer" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected schema diagnostic at /body/0/timer, got %v", paths)
	}
}

func TestOrchestratorHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(WithLogger(testsupport.QuietLogger())).Generate(ctx, Request{Document: slidesDocument()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParseManifest(t *testing.T) {
	manifest, err := ParseManifest([]byte(`
name: acme
version: "1.0.0"
tokens:
  brand: "#123456"
templates:
  cardkit.page: themes/acme/page.tmpl
assets:
  prefix: /static/acme
  files:
    cardkit.stylesheet: acme.css
variants:
  dark:
    tokens:
      brand: "#654321"
`))
	if err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	if manifest.Name != "acme" || manifest.Assets.Prefix != "/static/acme" {
		t.Fatalf("unexpected manifest: %+v", manifest)
	}
	if manifest.Variants["dark"].Tokens["brand"] != "#654321" {
		t.Fatalf("variant tokens not decoded: %+v", manifest.Variants)
	}

	cfg := render.ConfigFromSelection(&theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest})
	if got := render.ThemeAssetURL(cfg, render.AssetStylesheet); got != "/static/acme/acme.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}

	if _, err := ParseManifest([]byte("tokens: {}\n")); err == nil {
		t.Fatalf("expected error for nameless manifest")
	}
}

func TestManifestSelectorRejectsDuplicates(t *testing.T) {
	if _, err := NewManifestSelector(&theme.Manifest{Name: "a"}, &theme.Manifest{Name: "A"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	selector, err := NewManifestSelector(&theme.Manifest{Name: "b"}, &theme.Manifest{Name: "a"})
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, selector.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	selection, err := selector.Select("", "")
	if err != nil || selection.Theme != "b" {
		t.Fatalf("expected first registered theme as default, got %+v, %v", selection, err)
	}
}

type captureRenderer struct {
	options render.RenderOptions
}

func (r *captureRenderer) Name() string {
	return "capture"
}

func (r *captureRenderer) ContentType() string {
	return "text/plain"
}

func (r *captureRenderer) Render(_ context.Context, doc *card.Card, opts render.RenderOptions) ([]byte, error) {
	r.options = opts
	return []byte(doc.Version), nil
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     [][2]string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, [2]string{name, variant})
	return s.selection, s.err
}
