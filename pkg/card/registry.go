package card

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Factory constructs an empty element ready for Parse.
type Factory func() Element

// ActionFactory constructs an empty action ready for Parse.
type ActionFactory func() Action

type entry[F any] struct {
	name    string
	factory F
}

type factories[F any] struct {
	mu      sync.RWMutex
	entries map[string]entry[F]
}

func (f *factories[F]) register(name string, factory F) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.entries == nil {
		f.entries = make(map[string]entry[F])
	}
	key := normalize(name)
	_, replaced := f.entries[key]
	f.entries[key] = entry[F]{name: strings.TrimSpace(name), factory: factory}
	return replaced
}

func (f *factories[F]) lookup(name string) (F, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, ok := f.entries[normalize(name)]
	return e.factory, ok
}

func (f *factories[F]) unregister(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, normalize(name))
}

func (f *factories[F]) names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		names = append(names, e.name)
	}
	slices.Sort(names)
	return names
}

func (f *factories[F]) clone() *factories[F] {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return &factories[F]{entries: maps.Clone(f.entries)}
}

// Registry maps element type names to factories. Registration is last-wins:
// registering an existing name replaces the previous factory, which is how
// extensions override host defaults.
type Registry struct {
	set *factories[Factory]
}

// NewRegistry creates an empty element registry.
func NewRegistry() *Registry {
	return &Registry{set: &factories[Factory]{}}
}

// Clone returns an independent copy so callers can mutate registrations
// without affecting the source.
func (r *Registry) Clone() *Registry {
	return &Registry{set: r.set.clone()}
}

// Register associates a factory with the type name and reports whether an
// existing registration was replaced.
func (r *Registry) Register(typeName string, factory Factory) (bool, error) {
	if normalize(typeName) == "" {
		return false, fmt.Errorf("card: element type name is required")
	}
	if factory == nil {
		return false, fmt.Errorf("card: factory for %q is nil", typeName)
	}
	return r.set.register(typeName, factory), nil
}

// MustRegister mirrors Register but panics on error, simplifying default
// registry setup.
func (r *Registry) MustRegister(typeName string, factory Factory) {
	if _, err := r.Register(typeName, factory); err != nil {
		panic(err)
	}
}

// Unregister removes a type name.
func (r *Registry) Unregister(typeName string) {
	r.set.unregister(typeName)
}

// Has reports whether the type name is registered.
func (r *Registry) Has(typeName string) bool {
	_, ok := r.set.lookup(typeName)
	return ok
}

// Create instantiates an element for the type name.
func (r *Registry) Create(typeName string) (Element, bool) {
	factory, ok := r.set.lookup(typeName)
	if !ok {
		return nil, false
	}
	element := factory()
	return element, element != nil
}

// Names returns the registered type names sorted.
func (r *Registry) Names() []string {
	return r.set.names()
}

// ActionRegistry maps action type names to factories with the same last-wins
// semantics as Registry.
type ActionRegistry struct {
	set *factories[ActionFactory]
}

// NewActionRegistry creates an empty action registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{set: &factories[ActionFactory]{}}
}

// Clone returns an independent copy of the registry.
func (r *ActionRegistry) Clone() *ActionRegistry {
	return &ActionRegistry{set: r.set.clone()}
}

// Register associates a factory with the action type name.
func (r *ActionRegistry) Register(typeName string, factory ActionFactory) (bool, error) {
	if normalize(typeName) == "" {
		return false, fmt.Errorf("card: action type name is required")
	}
	if factory == nil {
		return false, fmt.Errorf("card: action factory for %q is nil", typeName)
	}
	return r.set.register(typeName, factory), nil
}

// MustRegister panics on registration failure.
func (r *ActionRegistry) MustRegister(typeName string, factory ActionFactory) {
	if _, err := r.Register(typeName, factory); err != nil {
		panic(err)
	}
}

// Create instantiates an action for the type name.
func (r *ActionRegistry) Create(typeName string) (Action, bool) {
	factory, ok := r.set.lookup(typeName)
	if !ok {
		return nil, false
	}
	action := factory()
	return action, action != nil
}

// Names returns the registered action type names sorted.
func (r *ActionRegistry) Names() []string {
	return r.set.names()
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
