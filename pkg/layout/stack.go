package layout

import "github.com/goliatone/go-cardkit/pkg/box"

// Stack arranges children top to bottom with a single gap.
type Stack struct {
	targetWidth

	Spacing string
}

// NewStack returns a Stack with default spacing.
func NewStack() *Stack {
	return &Stack{Spacing: DefaultSpacing}
}

func (s *Stack) Type() string { return TypeStack }

func (s *Stack) Parse(raw map[string]any) {
	stringField(raw, "spacing", &s.Spacing)
	s.parseTarget(raw)
}

func (s *Stack) Apply(target *box.Box, _ Owner) {
	if target == nil {
		return
	}
	target.AddClass("ac-layout-stack")
	target.SetStyle("display", "flex").
		SetStyle("flex-direction", "column").
		SetStyle("gap", SpacingValue(s.Spacing))
}

func (s *Stack) Serialize() map[string]any {
	out := map[string]any{"type": TypeStack}
	putIfNot(out, "spacing", s.Spacing, DefaultSpacing)
	s.serializeTarget(out)
	return out
}
