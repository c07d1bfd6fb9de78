package card

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func quietContext() *ParseContext {
	return NewParseContext(nil, WithParseLogger(log.New(io.Discard)))
}

func TestParseJSONDocument(t *testing.T) {
	doc := []byte(`{
		"type": "AdaptiveCard",
		"version": "1.5",
		"body": [
			{"type": "TextBlock", "text": "Hello", "wrap": true},
			{"type": "Image", "url": "https://example.com/a.png", "altText": "A"}
		],
		"actions": [{"type": "Action.OpenUrl", "title": "Open", "url": "https://example.com"}]
	}`)

	ctx := quietContext()
	c, err := Parse(doc, ctx)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ctx.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics())
	}
	body, ok := c.Body.(*Container)
	if !ok {
		t.Fatalf("expected *Container body, got %T", c.Body)
	}
	if body.ItemCount() != 2 {
		t.Fatalf("expected 2 body items, got %d", body.ItemCount())
	}
	if body.ItemAt(0).Base().Parent() != body {
		t.Fatalf("expected body item parent to be the body container")
	}
	if len(c.Actions) != 1 || c.Actions[0].Title() != "Open" {
		t.Fatalf("unexpected actions: %+v", c.Actions)
	}
}

func TestParseYAMLDocument(t *testing.T) {
	doc := []byte(`
type: AdaptiveCard
body:
  - type: TextBlock
    text: From YAML
`)
	c, err := Parse(doc, quietContext())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	text, ok := c.Body.(*Container).ItemAt(0).(*TextBlock)
	if !ok || text.Text != "From YAML" {
		t.Fatalf("unexpected first item: %#v", c.Body.(*Container).ItemAt(0))
	}
}

func TestDecodeRejectsNonObjects(t *testing.T) {
	for _, input := range []string{"", "   ", "- a\n- b\n"} {
		if _, err := Decode([]byte(input)); err == nil {
			t.Fatalf("expected error decoding %q", input)
		}
	}
}

func TestParseDropsUnknownElementsWithWarning(t *testing.T) {
	ctx := quietContext()
	c := ParseMap(map[string]any{
		"type": "AdaptiveCard",
		"body": []any{
			map[string]any{"type": "Rating", "value": 3},
			map[string]any{"type": "TextBlock", "text": "kept"},
			"not an element",
		},
	}, ctx)

	if got := c.Body.(*Container).ItemCount(); got != 1 {
		t.Fatalf("expected 1 surviving item, got %d", got)
	}
	diags := ctx.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", diags)
	}
	if diags[0].Path != "/body/0" || diags[0].Severity != SeverityWarning {
		t.Fatalf("unexpected first diagnostic: %+v", diags[0])
	}
	if diags[1].Path != "/body/2" {
		t.Fatalf("unexpected second diagnostic path: %q", diags[1].Path)
	}
}

func TestValidateReportsMissingContent(t *testing.T) {
	ctx := quietContext()
	c := ParseMap(map[string]any{
		"type": "AdaptiveCard",
		"body": []any{
			map[string]any{"type": "TextBlock"},
			map[string]any{"type": "Image"},
		},
	}, ctx)
	c.Validate(ctx)

	if !HasErrors(ctx.Diagnostics()) {
		t.Fatalf("expected validation errors")
	}
	var paths []string
	for _, d := range ctx.Diagnostics() {
		paths = append(paths, d.Path)
	}
	if diff := cmp.Diff([]string{"/body/0", "/body/1"}, paths); diff != "" {
		t.Fatalf("diagnostic paths mismatch (-want +got):\n%s", diff)
	}
}

func TestCardSerializeRoundTrip(t *testing.T) {
	doc := map[string]any{
		"type":    "AdaptiveCard",
		"version": "1.5",
		"body": []any{
			map[string]any{"type": "TextBlock", "text": "Title", "weight": "Bolder", "spacing": "Large"},
			map[string]any{
				"type":      "Container",
				"isVisible": false,
				"items": []any{
					map[string]any{"type": "Image", "url": "https://example.com/x.png"},
				},
			},
		},
		"actions": []any{
			map[string]any{"type": "Action.Submit", "title": "Send", "data": map[string]any{"k": "v"}},
		},
	}

	c := ParseMap(doc, quietContext())
	if diff := cmp.Diff(doc, c.Serialize()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCardRenderStripsMarkup(t *testing.T) {
	c := ParseMap(map[string]any{
		"type": "AdaptiveCard",
		"body": []any{
			map[string]any{"type": "TextBlock", "text": "<b>bold</b> & plain", "wrap": true},
		},
		"actions": []any{
			map[string]any{"type": "Action.OpenUrl", "title": "Go", "url": "https://example.com"},
		},
	}, quietContext())

	root := c.Render(NewRenderContext())
	text := root.Find("ac-textblock")
	if text == nil {
		t.Fatalf("expected a rendered text block")
	}
	if text.Text() != "bold & plain" {
		t.Fatalf("unexpected text: %q", text.Text())
	}
	inner := root.Find(ClassContainerInner)
	if inner == nil || inner.Len() != 1 {
		t.Fatalf("expected inner box with one child")
	}

	out, err := root.HTML()
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if !strings.Contains(out, `<button class="ac-action" type="button" data-action-type="Action.OpenUrl">Go</button>`) {
		t.Fatalf("expected action button in output, got %s", out)
	}
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	reg := NewDefaultRegistry()
	replaced, err := reg.Register("container", func() Element { return NewTypedContainer("Custom") })
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !replaced {
		t.Fatalf("expected registration to report a replacement")
	}
	element, ok := reg.Create(TypeContainer)
	if !ok || element.TypeName() != "Custom" {
		t.Fatalf("expected replacement factory, got %v", element)
	}

	clone := NewDefaultRegistry().Clone()
	clone.Unregister(TypeImage)
	if clone.Has(TypeImage) {
		t.Fatalf("expected image to be unregistered from clone")
	}
	if _, err := clone.Register(" ", func() Element { return NewImage() }); err == nil {
		t.Fatalf("expected error for blank type name")
	}
}
