package jsonrender

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardkit/pkg/card"
	"github.com/goliatone/go-cardkit/pkg/extensions"
	"github.com/goliatone/go-cardkit/pkg/render"
	"github.com/goliatone/go-cardkit/pkg/testsupport"
)

func TestRendererRoundTripsCard(t *testing.T) {
	src := map[string]any{
		"type":    "AdaptiveCard",
		"layouts": []any{map[string]any{"type": "Layout.Stack"}},
		"body": []any{
			map[string]any{
				"type":  "Carousel",
				"loop":  true,
				"pages": []any{map[string]any{"type": "CarouselPage", "items": []any{map[string]any{"type": "TextBlock", "text": "A"}}}},
			},
		},
	}
	doc := card.ParseMap(src, testsupport.ParseContext(extensions.NewRegistry()))

	out, err := New(WithIndent("")).Render(context.Background(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(src, got); diff != "" {
		t.Fatalf("serialised card mismatch (-want +got):\n%s", diff)
	}
}

func TestRendererWrapsDiagnostics(t *testing.T) {
	doc := card.ParseMap(map[string]any{"type": "AdaptiveCard"}, testsupport.ParseContext(nil))
	out, err := New().Render(context.Background(), doc, render.RenderOptions{
		ShowDiagnostics: true,
		Diagnostics:     []card.Diagnostic{{Severity: card.SeverityError, Path: "/body/0", Message: "boom"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var got struct {
		Card        map[string]any    `json:"card"`
		Diagnostics []card.Diagnostic `json:"diagnostics"`
	}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Card["type"] != "AdaptiveCard" {
		t.Fatalf("unexpected card payload %v", got.Card)
	}
	want := []card.Diagnostic{{Severity: card.SeverityError, Path: "/body/0", Message: "boom"}}
	if diff := cmp.Diff(want, got.Diagnostics); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestRendererRejectsNilCard(t *testing.T) {
	if _, err := New().Render(context.Background(), nil, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for nil card")
	}
}

func TestRendererMatchesGolden(t *testing.T) {
	reg := extensions.NewRegistry()
	doc, parseDiags := testsupport.LoadCard(t, filepath.Join("testdata", "carousel.json"), reg)
	if len(parseDiags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", parseDiags)
	}
	vctx := testsupport.ParseContext(reg)
	doc.Validate(vctx)
	diags := vctx.Diagnostics()

	diagPath := filepath.Join("testdata", "carousel.diagnostics.golden.json")
	testsupport.WriteGolden(t, diagPath, diags)
	var wantDiags []card.Diagnostic
	if err := json.Unmarshal(testsupport.MustReadGolden(t, diagPath), &wantDiags); err != nil {
		t.Fatalf("unmarshal diagnostics golden: %v", err)
	}
	if diff := testsupport.CompareGolden(wantDiags, diags); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}

	out, err := New().Render(testsupport.Context(), doc, render.RenderOptions{
		ShowDiagnostics: true,
		Diagnostics:     diags,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	goldenPath := filepath.Join("testdata", "carousel.golden.json")
	if testsupport.WriteMaybeGolden(t, goldenPath, out) {
		return
	}
	var want, got map[string]any
	if err := json.Unmarshal(testsupport.MustReadGolden(t, goldenPath), &want); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("rendered card mismatch (-want +got):\n%s", diff)
	}
}
