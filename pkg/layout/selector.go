package layout

import (
	"slices"

	"github.com/goliatone/go-cardkit/pkg/card"
)

// Selector holds a container's descriptors in source order, which is also
// their priority order.
type Selector struct {
	descriptors []Descriptor
}

// Parse replaces the descriptors with those built from raw. Entries that are
// not objects or carry an unknown type are dropped with a warning.
func (s *Selector) Parse(raw []any, reporter Reporter) {
	if reporter == nil {
		reporter = LogReporter(nil)
	}
	descriptors := make([]Descriptor, 0, len(raw))
	for _, entry := range raw {
		src, ok := card.MapValue(entry)
		if !ok {
			reporter.Warn("layout entry is not an object")
			continue
		}
		if descriptor, ok := New(src, reporter); ok {
			descriptors = append(descriptors, descriptor)
		}
	}
	s.descriptors = descriptors
}

// Add appends a descriptor.
func (s *Selector) Add(descriptor Descriptor) {
	if descriptor != nil {
		s.descriptors = append(s.descriptors, descriptor)
	}
}

// Descriptors returns the descriptors in priority order.
func (s *Selector) Descriptors() []Descriptor {
	return slices.Clone(s.descriptors)
}

// Len returns the number of descriptors.
func (s *Selector) Len() int {
	return len(s.descriptors)
}

// Active returns the layout to apply, or nil when there is none. The first
// descriptor always wins; targetWidth is carried for round-tripping but not
// evaluated against the rendered width.
func (s *Selector) Active() Descriptor {
	if len(s.descriptors) == 0 {
		return nil
	}
	return s.descriptors[0]
}

// Serialize emits every descriptor in order.
func (s *Selector) Serialize() []any {
	out := make([]any, 0, len(s.descriptors))
	for _, descriptor := range s.descriptors {
		out = append(out, descriptor.Serialize())
	}
	return out
}
