package card

import (
	"slices"
	"strings"

	"github.com/goliatone/go-cardkit/pkg/box"
)

// TypeContainer is the host container type name.
const TypeContainer = "Container"

// Class names of the boxes produced by Container rendering.
const (
	ClassContainer      = "ac-container"
	ClassContainerInner = "ac-container-inner"
)

var verticalContentAlignment = map[string]string{
	"top":    "flex-start",
	"center": "center",
	"bottom": "flex-end",
}

// Container stores and renders an ordered list of child elements.
type Container struct {
	BaseElement

	Style                    string
	VerticalContentAlignment string
	MinHeight                string

	items     []Element
	itemsKey  string
	self      Element
	minHeight any
}

// DefaultItemsKey is the JSON key holding container children.
const DefaultItemsKey = "items"

// NewContainer returns an empty host container.
func NewContainer() *Container {
	return NewTypedContainer(TypeContainer)
}

// NewTypedContainer returns a container whose type tag is typeName, for
// element types that specialise the container.
func NewTypedContainer(typeName string) *Container {
	c := &Container{BaseElement: NewBaseElement(typeName)}
	c.self = c
	return c
}

// Bind records the outermost element embedding this container so parsed
// children point at it as their parent.
func (c *Container) Bind(owner Element) {
	if owner != nil {
		c.self = owner
	}
}

// SetItemsKey renames the JSON key holding the children, e.g. "pages" for a
// carousel or "body" for a card root.
func (c *Container) SetItemsKey(key string) {
	c.itemsKey = strings.TrimSpace(key)
}

// ItemsKey returns the JSON key holding the children.
func (c *Container) ItemsKey() string {
	if c.itemsKey == "" {
		return DefaultItemsKey
	}
	return c.itemsKey
}

// Parse reads the container vocabulary and its items.
func (c *Container) Parse(src map[string]any, ctx *ParseContext) {
	c.ParseBase(src)
	if style, ok := StringValue(src["style"]); ok {
		c.Style = style
	}
	if align, ok := StringValue(src["verticalContentAlignment"]); ok {
		c.VerticalContentAlignment = align
	}
	if minHeight, ok := SizeValue(src["minHeight"]); ok {
		c.MinHeight = minHeight
		c.minHeight = src["minHeight"]
	}
	c.ParseItems(src, c.ItemsKey(), ctx)
}

// ParseItems replaces the item list with elements parsed from src[key].
// Entries that fail to parse are dropped.
func (c *Container) ParseItems(src map[string]any, key string, ctx *ParseContext) {
	raw, ok := SliceValue(src[key])
	if !ok {
		return
	}
	items := make([]Element, 0, len(raw))
	for idx, entry := range raw {
		leave := ctx.EnterIndex(key, idx)
		if element := ctx.ParseElement(entry); element != nil {
			element.Base().SetParent(c.self)
			items = append(items, element)
		}
		leave()
	}
	c.items = items
}

// Items returns the child elements in order.
func (c *Container) Items() []Element {
	return slices.Clone(c.items)
}

// SetItems replaces the child elements.
func (c *Container) SetItems(items []Element) {
	c.items = slices.Clone(items)
	for _, item := range c.items {
		item.Base().SetParent(c.self)
	}
}

// ItemCount returns the number of child elements.
func (c *Container) ItemCount() int {
	return len(c.items)
}

// ItemAt returns the child at index or nil.
func (c *Container) ItemAt(index int) Element {
	if index < 0 || index >= len(c.items) {
		return nil
	}
	return c.items[index]
}

// Render returns the decorated container box.
func (c *Container) Render(ctx *RenderContext) *box.Box {
	return c.Decorate(c.RenderContent(ctx))
}

// RenderContent renders the container box and its items without applying
// the shared element properties. Every item yields exactly one child of the
// inner box so item indexes match child box indexes.
func (c *Container) RenderContent(ctx *RenderContext) *box.Box {
	outer := box.New("div", ClassContainer)
	if c.Style != "" {
		outer.AddClass("ac-container-style-" + strings.ToLower(c.Style))
	}
	if c.MinHeight != "" {
		outer.SetStyle("min-height", c.MinHeight)
	}

	inner := box.New("div", ClassContainerInner)
	inner.SetStyle("display", "flex").SetStyle("flex-direction", "column")
	if align, ok := verticalContentAlignment[strings.ToLower(c.VerticalContentAlignment)]; ok {
		inner.SetStyle("justify-content", align)
	}
	for _, item := range c.items {
		rendered := item.Render(ctx)
		if rendered == nil {
			rendered = box.New("div")
			rendered.SetStyle("display", "none")
		}
		inner.Append(rendered)
	}
	outer.Append(inner)
	return outer
}

// Serialize emits the container vocabulary and serialised items.
func (c *Container) Serialize() map[string]any {
	out := c.SerializeBase()
	if c.Style != "" {
		out["style"] = c.Style
	}
	if c.VerticalContentAlignment != "" {
		out["verticalContentAlignment"] = c.VerticalContentAlignment
	}
	if c.MinHeight != "" {
		out["minHeight"] = c.MinHeight
		if parsed, _ := SizeValue(c.minHeight); parsed == c.MinHeight {
			out["minHeight"] = c.minHeight
		}
	}
	if len(c.items) > 0 {
		out[c.ItemsKey()] = SerializeElements(c.items)
	}
	return out
}

// Validate validates every item.
func (c *Container) Validate(ctx *ParseContext) {
	c.ValidateItems(c.ItemsKey(), ctx)
}

// ValidateItems validates children, reporting paths under key.
func (c *Container) ValidateItems(key string, ctx *ParseContext) {
	for idx, item := range c.items {
		leave := ctx.EnterIndex(key, idx)
		item.Validate(ctx)
		leave()
	}
}

// SerializeElements serialises a list of elements.
func SerializeElements(elements []Element) []any {
	out := make([]any, 0, len(elements))
	for _, element := range elements {
		out = append(out, element.Serialize())
	}
	return out
}
