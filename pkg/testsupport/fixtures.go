package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardkit/pkg/card"
	"github.com/goliatone/go-cardkit/pkg/schedule"
)

// QuietLogger returns a logger that discards everything.
func QuietLogger() *log.Logger {
	return log.New(io.Discard)
}

// ParseContext returns a parse context over reg that logs nowhere. A nil reg
// uses the host defaults.
func ParseContext(reg *card.Registry) *card.ParseContext {
	return card.NewParseContext(reg, card.WithParseLogger(QuietLogger()))
}

// StaticRenderContext returns a render context driven by a manual clock with
// sequential ids ("card-1", "card-2", ...), so rendered output is stable.
func StaticRenderContext(options ...card.RenderOption) (*card.RenderContext, *schedule.Manual) {
	clock := schedule.NewManual()
	next := 0
	base := []card.RenderOption{
		card.WithRenderLogger(QuietLogger()),
		card.WithScheduler(clock),
		card.WithIDGenerator(func() string {
			next++
			return "card-" + strconv.Itoa(next)
		}),
	}
	return card.NewRenderContext(append(base, options...)...), clock
}

// LoadCard parses the card document at path, returning the card and the
// parse diagnostics.
func LoadCard(t *testing.T, path string, reg *card.Registry) (*card.Card, []card.Diagnostic) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read card fixture: %v", err)
	}
	ctx := ParseContext(reg)
	doc, err := card.Parse(data, ctx)
	if err != nil {
		t.Fatalf("parse card fixture %s: %v", path, err)
	}
	return doc, ctx.Diagnostics()
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	writeFile(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written and the test should stop comparing.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	writeFile(t, path, data)
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}
