package box

import (
	"slices"
	"strings"
)

// EventClick is the event name controls subscribe to for activation.
const EventClick = "click"

// Handler reacts to an event dispatched on a box.
type Handler func(target *Box)

type property struct {
	name  string
	value string
}

// Box is a retained-mode rendering unit: a tag with classes, an ordered style
// map, attributes, optional text, and child boxes. Boxes are not safe for
// concurrent mutation; owners that mutate from timer callbacks serialise
// access themselves.
type Box struct {
	tag       string
	classes   []string
	styles    []property
	attrs     []property
	text      string
	children  []*Box
	parent    *Box
	handlers  map[string][]Handler
	disposers []func()
	disposed  bool
}

// New creates a box with the provided tag (div when empty) and classes.
func New(tag string, classes ...string) *Box {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		tag = "div"
	}
	b := &Box{tag: tag}
	for _, class := range classes {
		b.AddClass(class)
	}
	return b
}

// Tag returns the element tag.
func (b *Box) Tag() string {
	if b == nil {
		return ""
	}
	return b.tag
}

// AddClass appends class tags, skipping blanks and duplicates.
func (b *Box) AddClass(classes ...string) *Box {
	for _, raw := range classes {
		for _, class := range strings.Fields(raw) {
			if !slices.Contains(b.classes, class) {
				b.classes = append(b.classes, class)
			}
		}
	}
	return b
}

// RemoveClass drops the class when present.
func (b *Box) RemoveClass(class string) *Box {
	b.classes = slices.DeleteFunc(b.classes, func(existing string) bool {
		return existing == class
	})
	return b
}

// HasClass reports whether the class tag is present.
func (b *Box) HasClass(class string) bool {
	if b == nil {
		return false
	}
	return slices.Contains(b.classes, class)
}

// Classes returns a copy of the class list in insertion order.
func (b *Box) Classes() []string {
	return slices.Clone(b.classes)
}

// SetStyle sets a style property. An empty value removes the property.
// Existing properties keep their original position.
func (b *Box) SetStyle(name, value string) *Box {
	b.styles = setProperty(b.styles, name, value)
	return b
}

// Style returns the value of a style property.
func (b *Box) Style(name string) string {
	if b == nil {
		return ""
	}
	return getProperty(b.styles, name)
}

// StyleString renders the inline style declaration in insertion order.
func (b *Box) StyleString() string {
	if b == nil || len(b.styles) == 0 {
		return ""
	}
	parts := make([]string, 0, len(b.styles))
	for _, prop := range b.styles {
		parts = append(parts, prop.name+": "+prop.value)
	}
	return strings.Join(parts, "; ")
}

// SetAttr sets an attribute. Class and style are managed through their own
// accessors and are ignored here.
func (b *Box) SetAttr(name, value string) *Box {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "class", "style", "":
		return b
	}
	name = strings.TrimSpace(name)
	for idx := range b.attrs {
		if b.attrs[idx].name == name {
			b.attrs[idx].value = value
			return b
		}
	}
	// boolean attributes keep an empty value
	b.attrs = append(b.attrs, property{name: name, value: value})
	return b
}

// Attr returns the attribute value and whether it is present.
func (b *Box) Attr(name string) (string, bool) {
	if b == nil {
		return "", false
	}
	for _, prop := range b.attrs {
		if prop.name == name {
			return prop.value, true
		}
	}
	return "", false
}

// RemoveAttr drops the attribute when present.
func (b *Box) RemoveAttr(name string) *Box {
	b.attrs = slices.DeleteFunc(b.attrs, func(prop property) bool {
		return prop.name == name
	})
	return b
}

// SetDisabled toggles the disabled attribute.
func (b *Box) SetDisabled(disabled bool) *Box {
	if disabled {
		if _, ok := b.Attr("disabled"); !ok {
			b.SetAttr("disabled", "")
		}
		return b
	}
	return b.RemoveAttr("disabled")
}

// Disabled reports whether the disabled attribute is set.
func (b *Box) Disabled() bool {
	_, ok := b.Attr("disabled")
	return ok
}

// SetText replaces the box text content.
func (b *Box) SetText(text string) *Box {
	b.text = text
	return b
}

// Text returns the box text content.
func (b *Box) Text() string {
	if b == nil {
		return ""
	}
	return b.text
}

// Append adds children, re-parenting them under b. Nil children are skipped.
func (b *Box) Append(children ...*Box) *Box {
	for _, child := range children {
		if child == nil {
			continue
		}
		if child.parent != nil {
			child.parent.detach(child)
		}
		child.parent = b
		b.children = append(b.children, child)
	}
	return b
}

func (b *Box) detach(child *Box) {
	b.children = slices.DeleteFunc(b.children, func(existing *Box) bool {
		return existing == child
	})
	child.parent = nil
}

// Children returns the direct children.
func (b *Box) Children() []*Box {
	if b == nil {
		return nil
	}
	return slices.Clone(b.children)
}

// Child returns the direct child at index or nil when out of range.
func (b *Box) Child(index int) *Box {
	if b == nil || index < 0 || index >= len(b.children) {
		return nil
	}
	return b.children[index]
}

// Len returns the number of direct children.
func (b *Box) Len() int {
	if b == nil {
		return 0
	}
	return len(b.children)
}

// Parent returns the enclosing box, if any.
func (b *Box) Parent() *Box {
	if b == nil {
		return nil
	}
	return b.parent
}

// Find returns the first descendant (depth-first, document order) carrying
// class, or nil.
func (b *Box) Find(class string) *Box {
	if b == nil {
		return nil
	}
	for _, child := range b.children {
		if child.HasClass(class) {
			return child
		}
		if found := child.Find(class); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant carrying class in document order.
func (b *Box) FindAll(class string) []*Box {
	if b == nil {
		return nil
	}
	var out []*Box
	for _, child := range b.children {
		if child.HasClass(class) {
			out = append(out, child)
		}
		out = append(out, child.FindAll(class)...)
	}
	return out
}

func setProperty(props []property, name, value string) []property {
	name = strings.TrimSpace(name)
	if name == "" {
		return props
	}
	idx := slices.IndexFunc(props, func(prop property) bool { return prop.name == name })
	if value == "" {
		if idx >= 0 {
			return slices.Delete(props, idx, idx+1)
		}
		return props
	}
	if idx >= 0 {
		props[idx].value = value
		return props
	}
	return append(props, property{name: name, value: value})
}

func getProperty(props []property, name string) string {
	for _, prop := range props {
		if prop.name == name {
			return prop.value
		}
	}
	return ""
}
