package cardkit

import (
	"context"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardkit/pkg/card"
	"github.com/goliatone/go-cardkit/pkg/orchestrator"
)

func TestRuntimeAssetsFSContainsCarouselScript(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), "cardkit-carousel.js")
	if err != nil {
		t.Fatalf("expected runtime script to be readable: %v", err)
	}
	if !strings.Contains(string(data), "data-timer") {
		t.Fatalf("expected runtime script to read the timer attribute")
	}
	if _, err := fs.ReadFile(RuntimeAssetsFS(), "cardkit.css"); err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
}

func TestEmbeddedTemplatesContainPage(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
}

func TestParseReportsDiagnostics(t *testing.T) {
	doc, diags, err := Parse([]byte(`
type: AdaptiveCard
body:
  - type: Carousel
    initialPage: 5
    pages:
      - type: CarouselPage
        items:
          - type: TextBlock
            text: Only
`), card.WithParseLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc == nil {
		t.Fatalf("expected a card")
	}
	if len(diags) != 1 || diags[0].Path != "/body/0/initialPage" || diags[0].Severity != card.SeverityWarning {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}

	if _, _, err := Parse([]byte("")); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestRenderHTMLFromBytesWithTheme(t *testing.T) {
	themeOpt, err := WithThemeManifests(&theme.Manifest{Name: "acme", Tokens: map[string]string{"brand": "#123456"}})
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	page, err := RenderHTMLFromBytes(context.Background(), "card.json",
		[]byte(`{"type":"AdaptiveCard","body":[{"type":"TextBlock","text":"Hi"}]}`),
		themeOpt,
		orchestrator.WithLogger(log.New(io.Discard)),
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`data-theme="acme"`, "--cardkit-brand: #123456;", ">Hi</p>"} {
		if !strings.Contains(string(page), want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
}
