package card

import (
	"strings"

	"github.com/goliatone/go-cardkit/pkg/box"
)

// Element is the contract every registrable card element satisfies.
type Element interface {
	TypeName() string
	Base() *BaseElement
	Parse(src map[string]any, ctx *ParseContext)
	Render(ctx *RenderContext) *box.Box
	Serialize() map[string]any
	Validate(ctx *ParseContext)
}

// BaseElement holds the properties shared by all elements.
type BaseElement struct {
	typeName string
	parent   Element

	ID        string
	Visible   bool
	Spacing   string
	Separator bool
	Height    string
	// GridArea names the AreaGrid area the element is placed in ("grid.area").
	GridArea string
}

// NewBaseElement returns a visible element base for typeName.
func NewBaseElement(typeName string) BaseElement {
	return BaseElement{typeName: typeName, Visible: true}
}

// TypeName returns the JSON type tag fixed at construction.
func (b *BaseElement) TypeName() string {
	return b.typeName
}

// Base returns the receiver, letting embedding types satisfy Element.
func (b *BaseElement) Base() *BaseElement {
	return b
}

// Parent returns the element that owns this one.
func (b *BaseElement) Parent() Element {
	return b.parent
}

// SetParent records the owning element.
func (b *BaseElement) SetParent(parent Element) {
	b.parent = parent
}

// ParseBase reads the shared element vocabulary.
func (b *BaseElement) ParseBase(src map[string]any) {
	if id, ok := StringValue(src["id"]); ok {
		b.ID = id
	}
	if visible, ok := BoolValue(src["isVisible"]); ok {
		b.Visible = visible
	}
	if spacing, ok := StringValue(src["spacing"]); ok {
		b.Spacing = spacing
	}
	if separator, ok := BoolValue(src["separator"]); ok {
		b.Separator = separator
	}
	if height, ok := StringValue(src["height"]); ok {
		b.Height = height
	}
	if area, ok := StringValue(src["grid.area"]); ok {
		b.GridArea = area
	}
}

// SerializeBase emits the type tag and every shared field that differs from
// its default.
func (b *BaseElement) SerializeBase() map[string]any {
	out := map[string]any{"type": b.typeName}
	if b.ID != "" {
		out["id"] = b.ID
	}
	if !b.Visible {
		out["isVisible"] = false
	}
	if b.Spacing != "" {
		out["spacing"] = b.Spacing
	}
	if b.Separator {
		out["separator"] = true
	}
	if b.Height != "" {
		out["height"] = b.Height
	}
	if b.GridArea != "" {
		out["grid.area"] = b.GridArea
	}
	return out
}

// Decorate applies the shared element properties to a rendered box.
func (b *BaseElement) Decorate(target *box.Box) *box.Box {
	if target == nil {
		return nil
	}
	if b.ID != "" {
		target.SetAttr("id", b.ID)
	}
	if !b.Visible {
		target.SetStyle("display", "none")
	}
	if b.Spacing != "" {
		target.AddClass("ac-spacing-" + strings.ToLower(b.Spacing))
	}
	if b.Separator {
		target.AddClass("ac-separator")
	}
	if strings.EqualFold(b.Height, "stretch") {
		target.SetStyle("flex", "1 1 auto")
	}
	if b.GridArea != "" {
		target.SetAttr("data-grid-area", b.GridArea)
	}
	return target
}
