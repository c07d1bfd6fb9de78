package layout

import (
	"strings"

	"github.com/goliatone/go-cardkit/pkg/box"
)

// Item fit modes.
const (
	ItemFitFit  = "Fit"
	ItemFitFill = "Fill"
)

// Flow wraps children row by row.
type Flow struct {
	targetWidth

	ColumnSpacing            string
	RowSpacing               string
	HorizontalItemsAlignment string
	VerticalItemsAlignment   string
	ItemFit                  string
	ItemWidth                string
	MinItemWidth             string
	MaxItemWidth             string

	sizes sizes
}

// NewFlow returns a Flow with default settings.
func NewFlow() *Flow {
	return &Flow{
		ColumnSpacing:            DefaultSpacing,
		RowSpacing:               DefaultSpacing,
		HorizontalItemsAlignment: "Center",
		VerticalItemsAlignment:   "Top",
		ItemFit:                  ItemFitFit,
	}
}

func (f *Flow) Type() string { return TypeFlow }

func (f *Flow) Parse(raw map[string]any) {
	stringField(raw, "columnSpacing", &f.ColumnSpacing)
	stringField(raw, "rowSpacing", &f.RowSpacing)
	stringField(raw, "horizontalItemsAlignment", &f.HorizontalItemsAlignment)
	stringField(raw, "verticalItemsAlignment", &f.VerticalItemsAlignment)
	stringField(raw, "itemFit", &f.ItemFit)
	f.sizes.parse(raw, "itemWidth", &f.ItemWidth)
	f.sizes.parse(raw, "minItemWidth", &f.MinItemWidth)
	f.sizes.parse(raw, "maxItemWidth", &f.MaxItemWidth)
	f.parseTarget(raw)
}

// Apply turns target into a wrapping row and sizes its direct children. A
// fixed itemWidth wins over min/max bounds and itemFit.
func (f *Flow) Apply(target *box.Box, _ Owner) {
	if target == nil {
		return
	}
	target.AddClass("ac-layout-flow")
	target.SetStyle("display", "flex").
		SetStyle("flex-direction", "row").
		SetStyle("flex-wrap", "wrap").
		SetStyle("justify-content", HorizontalAlignmentValue(f.HorizontalItemsAlignment)).
		SetStyle("align-items", VerticalAlignmentValue(f.VerticalItemsAlignment)).
		SetStyle("gap", SpacingValue(f.RowSpacing)+" "+SpacingValue(f.ColumnSpacing))

	fill := strings.EqualFold(f.ItemFit, ItemFitFill)
	for _, child := range target.Children() {
		if f.ItemWidth != "" {
			child.SetStyle("width", f.ItemWidth).
				SetStyle("flex-grow", "0").
				SetStyle("flex-shrink", "0")
			continue
		}
		if f.MinItemWidth != "" {
			child.SetStyle("min-width", f.MinItemWidth)
		}
		if f.MaxItemWidth != "" {
			child.SetStyle("max-width", f.MaxItemWidth)
		}
		if fill {
			child.SetStyle("flex-grow", "1")
		}
	}
}

func (f *Flow) Serialize() map[string]any {
	out := map[string]any{"type": TypeFlow}
	putIfNot(out, "columnSpacing", f.ColumnSpacing, DefaultSpacing)
	putIfNot(out, "rowSpacing", f.RowSpacing, DefaultSpacing)
	putIfNot(out, "horizontalItemsAlignment", f.HorizontalItemsAlignment, "Center")
	putIfNot(out, "verticalItemsAlignment", f.VerticalItemsAlignment, "Top")
	putIfNot(out, "itemFit", f.ItemFit, ItemFitFit)
	f.sizes.put(out, "itemWidth", f.ItemWidth)
	f.sizes.put(out, "minItemWidth", f.MinItemWidth)
	f.sizes.put(out, "maxItemWidth", f.MaxItemWidth)
	f.serializeTarget(out)
	return out
}
