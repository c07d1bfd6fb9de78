package card

import (
	"strings"

	"github.com/goliatone/go-cardkit/pkg/box"
)

// Leaf element type names.
const (
	TypeTextBlock = "TextBlock"
	TypeImage     = "Image"
)

// TextBlock renders a run of plain text.
type TextBlock struct {
	BaseElement

	Text   string
	Size   string
	Weight string
	Wrap   bool
}

// NewTextBlock returns an empty text block.
func NewTextBlock() *TextBlock {
	return &TextBlock{BaseElement: NewBaseElement(TypeTextBlock)}
}

func (t *TextBlock) Parse(src map[string]any, _ *ParseContext) {
	t.ParseBase(src)
	if text, ok := src["text"].(string); ok {
		t.Text = text
	}
	if size, ok := StringValue(src["size"]); ok {
		t.Size = size
	}
	if weight, ok := StringValue(src["weight"]); ok {
		t.Weight = weight
	}
	if wrap, ok := BoolValue(src["wrap"]); ok {
		t.Wrap = wrap
	}
}

func (t *TextBlock) Render(_ *RenderContext) *box.Box {
	b := box.New("p", "ac-textblock")
	if t.Size != "" {
		b.AddClass("ac-text-size-" + strings.ToLower(t.Size))
	}
	if t.Weight != "" {
		b.AddClass("ac-text-weight-" + strings.ToLower(t.Weight))
	}
	if !t.Wrap {
		b.SetStyle("white-space", "nowrap")
	}
	b.SetText(PlainText(t.Text))
	return t.Decorate(b)
}

func (t *TextBlock) Serialize() map[string]any {
	out := t.SerializeBase()
	if t.Text != "" {
		out["text"] = t.Text
	}
	if t.Size != "" {
		out["size"] = t.Size
	}
	if t.Weight != "" {
		out["weight"] = t.Weight
	}
	if t.Wrap {
		out["wrap"] = true
	}
	return out
}

func (t *TextBlock) Validate(ctx *ParseContext) {
	if strings.TrimSpace(t.Text) == "" {
		ctx.Error("TextBlock requires text")
	}
}

// Image renders a picture by URL.
type Image struct {
	BaseElement

	URL     string
	AltText string
	Size    string
}

// NewImage returns an empty image.
func NewImage() *Image {
	return &Image{BaseElement: NewBaseElement(TypeImage)}
}

func (i *Image) Parse(src map[string]any, _ *ParseContext) {
	i.ParseBase(src)
	if url, ok := StringValue(src["url"]); ok {
		i.URL = url
	}
	if alt, ok := src["altText"].(string); ok {
		i.AltText = alt
	}
	if size, ok := StringValue(src["size"]); ok {
		i.Size = size
	}
}

func (i *Image) Render(_ *RenderContext) *box.Box {
	b := box.New("img", "ac-image")
	b.SetAttr("src", i.URL)
	if alt := PlainText(i.AltText); alt != "" {
		b.SetAttr("alt", alt)
	}
	if i.Size != "" {
		b.AddClass("ac-image-size-" + strings.ToLower(i.Size))
	}
	return i.Decorate(b)
}

func (i *Image) Serialize() map[string]any {
	out := i.SerializeBase()
	if i.URL != "" {
		out["url"] = i.URL
	}
	if i.AltText != "" {
		out["altText"] = i.AltText
	}
	if i.Size != "" {
		out["size"] = i.Size
	}
	return out
}

func (i *Image) Validate(ctx *ParseContext) {
	if i.URL == "" {
		ctx.Error("Image requires url")
	}
}
