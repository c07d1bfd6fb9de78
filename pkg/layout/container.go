package layout

import (
	"github.com/goliatone/go-cardkit/pkg/box"
	"github.com/goliatone/go-cardkit/pkg/card"
)

// Container is the host container extended with a layout selector. It keeps
// the host type name so it can replace the default registration.
type Container struct {
	*card.Container

	Layouts Selector
}

var _ card.Element = (*Container)(nil)

// NewContainer returns an empty layout-aware container.
func NewContainer() *Container {
	c := &Container{Container: card.NewContainer()}
	c.Container.Bind(c)
	return c
}

// Parse reads the base container vocabulary, then the layouts array.
func (c *Container) Parse(src map[string]any, ctx *card.ParseContext) {
	c.Container.Parse(src, ctx)
	raw, ok := card.SliceValue(src["layouts"])
	if !ok {
		return
	}
	leave := ctx.Enter("layouts")
	c.Layouts.Parse(raw, ctx)
	leave()
}

// Render renders the children through the base container and then applies
// the active layout to the box holding them.
func (c *Container) Render(ctx *card.RenderContext) *box.Box {
	rendered := c.Container.Render(ctx)
	active := c.Layouts.Active()
	if active == nil || rendered == nil {
		return rendered
	}
	target := rendered.Find(card.ClassContainerInner)
	if target == nil {
		target = rendered
	}
	active.Apply(target, c)
	return rendered
}

// Serialize adds the layouts array when present.
func (c *Container) Serialize() map[string]any {
	out := c.Container.Serialize()
	if c.Layouts.Len() > 0 {
		out["layouts"] = c.Layouts.Serialize()
	}
	return out
}

type validator interface {
	Validate(reporter Reporter)
}

// Validate validates the items and the declared layouts.
func (c *Container) Validate(ctx *card.ParseContext) {
	c.Container.Validate(ctx)
	for idx, descriptor := range c.Layouts.Descriptors() {
		v, ok := descriptor.(validator)
		if !ok {
			continue
		}
		leave := ctx.EnterIndex("layouts", idx)
		v.Validate(ctx)
		leave()
	}
}
