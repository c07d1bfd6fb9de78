package carousel

import (
	"strings"

	"github.com/goliatone/go-cardkit/pkg/box"
	"github.com/goliatone/go-cardkit/pkg/card"
)

// TypePage is the registered type name of a carousel page.
const TypePage = "CarouselPage"

// ClassPage tags the rendered page box.
const ClassPage = "ac-carousel-page"

// Background is a page background fill. A fill parsed from a plain string
// serialises back to a string.
type Background struct {
	URL                 string
	FillMode            string
	HorizontalAlignment string
	Structured          bool
}

func parseBackground(raw any) (*Background, bool) {
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, false
		}
		return &Background{URL: v}, true
	}
	src, ok := card.MapValue(raw)
	if !ok {
		return nil, false
	}
	bg := &Background{Structured: true}
	if url, ok := src["url"].(string); ok {
		bg.URL = url
	}
	if fill, ok := card.StringValue(src["fillMode"]); ok {
		bg.FillMode = fill
	}
	if align, ok := card.StringValue(src["horizontalAlignment"]); ok {
		bg.HorizontalAlignment = align
	}
	return bg, true
}

func (b *Background) serialize() any {
	if !b.Structured {
		return b.URL
	}
	out := map[string]any{}
	if b.URL != "" {
		out["url"] = b.URL
	}
	if b.FillMode != "" {
		out["fillMode"] = b.FillMode
	}
	if b.HorizontalAlignment != "" {
		out["horizontalAlignment"] = b.HorizontalAlignment
	}
	return out
}

// Apply writes the background styles onto target.
func (b *Background) Apply(target *box.Box) {
	target.SetStyle("background-image", "url("+b.URL+")")
	if !b.Structured {
		target.SetStyle("background-size", "cover").SetStyle("background-position", "center")
		return
	}
	switch strings.ToLower(b.FillMode) {
	case "", "cover":
		target.SetStyle("background-size", "cover")
	case "repeat":
		target.SetStyle("background-size", "auto").SetStyle("background-repeat", "repeat")
	case "repeathorizontally":
		target.SetStyle("background-size", "auto").SetStyle("background-repeat", "repeat-x")
	case "repeatvertically":
		target.SetStyle("background-size", "auto").SetStyle("background-repeat", "repeat-y")
	default:
		target.SetStyle("background-size", b.FillMode)
	}
	position := "center"
	if b.HorizontalAlignment != "" {
		position = strings.ToLower(b.HorizontalAlignment)
	}
	target.SetStyle("background-position", position)
}

// Page is one carousel page: a container with an optional background and an
// optional activation action.
type Page struct {
	*card.Container

	Background   *Background
	SelectAction card.Action
}

var _ card.Element = (*Page)(nil)

// NewPage returns an empty page.
func NewPage() *Page {
	p := &Page{Container: card.NewTypedContainer(TypePage)}
	p.Container.Bind(p)
	return p
}

func (p *Page) Parse(src map[string]any, ctx *card.ParseContext) {
	p.Container.Parse(src, ctx)
	if raw, ok := src["backgroundImage"]; ok {
		if bg, ok := parseBackground(raw); ok {
			p.Background = bg
		}
	}
	if raw, ok := src["selectAction"]; ok {
		leave := ctx.Enter("selectAction")
		p.SelectAction = ctx.CreateAction(raw)
		leave()
	}
}

// Render returns div.ac-carousel-page holding the base container rendering.
func (p *Page) Render(ctx *card.RenderContext) *box.Box {
	page := box.New("div", ClassPage)
	if p.Background != nil {
		p.Background.Apply(page)
	}
	if action := p.SelectAction; action != nil {
		page.AddClass("ac-selectable")
		page.SetAttr("role", "button")
		page.SetAttr("tabindex", "0")
		page.SetAttr("data-action-type", action.TypeName())
		if title := card.PlainText(action.Title()); title != "" {
			page.SetAttr("aria-label", title)
		}
		page.On(box.EventClick, func(*box.Box) { ctx.Invoke(action) })
	}
	page.Append(p.Container.RenderContent(ctx))
	return p.Decorate(page)
}

func (p *Page) Serialize() map[string]any {
	out := p.Container.Serialize()
	if p.Background != nil {
		out["backgroundImage"] = p.Background.serialize()
	}
	if p.SelectAction != nil {
		out["selectAction"] = p.SelectAction.Serialize()
	}
	return out
}
