package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-cardkit/pkg/box"
	"github.com/goliatone/go-cardkit/pkg/card"
)

// Area is a named grid region. Row and column are 1-based; missing or
// non-positive values resolve to 1.
type Area struct {
	Name       string
	Row        int
	Column     int
	RowSpan    int
	ColumnSpan int

	source map[string]any
}

var areaKeys = []string{"row", "column", "rowSpan", "columnSpan"}

func parseArea(raw map[string]any) Area {
	area := Area{Row: 1, Column: 1, RowSpan: 1, ColumnSpan: 1}
	if name, ok := raw["name"].(string); ok {
		area.Name = name
	}
	for _, key := range areaKeys {
		value, ok := raw[key]
		if !ok {
			continue
		}
		if area.source == nil {
			area.source = make(map[string]any, len(areaKeys))
		}
		area.source[key] = value
		*area.field(key) = coordinate(value)
	}
	return area
}

func coordinate(value any) int {
	if n, ok := card.IntValue(value); ok && n > 0 {
		return n
	}
	return 1
}

func (a *Area) field(key string) *int {
	switch key {
	case "row":
		return &a.Row
	case "column":
		return &a.Column
	case "rowSpan":
		return &a.RowSpan
	default:
		return &a.ColumnSpan
	}
}

// serialize emits the source value of a coordinate while it still resolves
// to the current one, else the coordinate when it is not 1.
func (a Area) serialize() map[string]any {
	out := map[string]any{"name": a.Name}
	for _, key := range areaKeys {
		value := *a.field(key)
		if src, ok := a.source[key]; ok && coordinate(src) == value {
			out[key] = src
			continue
		}
		if value != 1 {
			out[key] = value
		}
	}
	return out
}

// AreaGrid places children into named areas of a CSS grid.
type AreaGrid struct {
	targetWidth

	Areas         []Area
	Columns       []any
	ColumnSpacing string
	RowSpacing    string
}

// NewAreaGrid returns an AreaGrid with no areas and default spacing.
func NewAreaGrid() *AreaGrid {
	return &AreaGrid{ColumnSpacing: DefaultSpacing, RowSpacing: DefaultSpacing}
}

func (g *AreaGrid) Type() string { return TypeAreaGrid }

func (g *AreaGrid) Parse(raw map[string]any) {
	if areas, ok := card.SliceValue(raw["areas"]); ok {
		g.Areas = g.Areas[:0]
		for _, entry := range areas {
			if src, ok := card.MapValue(entry); ok {
				g.Areas = append(g.Areas, parseArea(src))
			}
		}
	}
	if columns, ok := card.SliceValue(raw["columns"]); ok {
		g.Columns = g.Columns[:0]
		for _, column := range columns {
			if n, ok := card.FloatValue(column); ok {
				g.Columns = append(g.Columns, n)
				continue
			}
			if token, ok := card.StringValue(column); ok {
				g.Columns = append(g.Columns, token)
			}
		}
	}
	stringField(raw, "columnSpacing", &g.ColumnSpacing)
	stringField(raw, "rowSpacing", &g.RowSpacing)
	g.parseTarget(raw)
}

// Area returns the area with the given name.
func (g *AreaGrid) Area(name string) (Area, bool) {
	for _, area := range g.Areas {
		if area.Name == name {
			return area, true
		}
	}
	return Area{}, false
}

// ColumnTemplate renders the grid-template-columns value. Bare numbers are
// percentages.
func (g *AreaGrid) ColumnTemplate() string {
	tracks := make([]string, 0, len(g.Columns))
	for _, column := range g.Columns {
		switch v := column.(type) {
		case float64:
			tracks = append(tracks, strconv.FormatFloat(v, 'f', -1, 64)+"%")
		case string:
			tracks = append(tracks, v)
		}
	}
	return strings.Join(tracks, " ")
}

// Apply turns target into a grid and positions the children whose element
// carries a matching area name. The name is read from the item, else from
// the item's parent.
func (g *AreaGrid) Apply(target *box.Box, owner Owner) {
	if target == nil {
		return
	}
	target.AddClass("ac-layout-areagrid")
	target.SetStyle("display", "grid")
	if template := g.ColumnTemplate(); template != "" {
		target.SetStyle("grid-template-columns", template)
	}
	target.SetStyle("column-gap", SpacingValue(g.ColumnSpacing)).
		SetStyle("row-gap", SpacingValue(g.RowSpacing))

	if owner == nil || len(g.Areas) == 0 {
		return
	}
	for idx := 0; idx < owner.ItemCount(); idx++ {
		name := areaName(owner.ItemAt(idx))
		if name == "" {
			continue
		}
		area, ok := g.Area(name)
		if !ok {
			continue
		}
		child := target.Child(idx)
		if child == nil {
			continue
		}
		child.SetStyle("grid-row", fmt.Sprintf("%d / span %d", area.Row, area.RowSpan)).
			SetStyle("grid-column", fmt.Sprintf("%d / span %d", area.Column, area.ColumnSpan))
	}
}

func areaName(item card.Element) string {
	if item == nil {
		return ""
	}
	base := item.Base()
	if base.GridArea != "" {
		return base.GridArea
	}
	if parent := base.Parent(); parent != nil {
		return parent.Base().GridArea
	}
	return ""
}

// Validate reports unnamed and duplicate areas.
func (g *AreaGrid) Validate(reporter Reporter) {
	seen := make(map[string]bool, len(g.Areas))
	for idx, area := range g.Areas {
		if area.Name == "" {
			reporter.Warn("area %d of %s has no name", idx, TypeAreaGrid)
			continue
		}
		if seen[area.Name] {
			reporter.Warn("area %q is declared more than once", area.Name)
		}
		seen[area.Name] = true
	}
}

func (g *AreaGrid) Serialize() map[string]any {
	out := map[string]any{"type": TypeAreaGrid}
	if len(g.Areas) > 0 {
		areas := make([]any, 0, len(g.Areas))
		for _, area := range g.Areas {
			areas = append(areas, area.serialize())
		}
		out["areas"] = areas
	}
	if len(g.Columns) > 0 {
		out["columns"] = append([]any(nil), g.Columns...)
	}
	putIfNot(out, "columnSpacing", g.ColumnSpacing, DefaultSpacing)
	putIfNot(out, "rowSpacing", g.RowSpacing, DefaultSpacing)
	g.serializeTarget(out)
	return out
}
