package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores output renderers by name. The first registered renderer
// becomes the default unless SetDefault picks another.
type Registry struct {
	mu          sync.RWMutex
	renderers   map[string]Renderer
	defaultName string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds a renderer by its Name(). Names are case-insensitive and
// duplicates return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := normalizeName(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	if r.defaultName == "" {
		r.defaultName = name
	}
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// SetDefault selects the renderer Get returns for a blank name.
func (r *Registry) SetDefault(name string) error {
	name = normalizeName(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.renderers[name]; !ok {
		return fmt.Errorf("render: renderer %q not found", name)
	}
	r.defaultName = name
	return nil
}

// Get retrieves a renderer by name. A blank name resolves to the default.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = normalizeName(name)
	if name == "" {
		name = r.defaultName
	}
	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// Negotiate picks a renderer for an HTTP Accept header. Media ranges are
// tried in header order; q-values are ignored. "*/*" and an empty header
// select the default renderer, and "text/*" matches any text renderer.
func (r *Registry) Negotiate(accept string) (Renderer, error) {
	if strings.TrimSpace(accept) == "" {
		return r.Get("")
	}
	r.mu.RLock()
	names := r.sortedNamesLocked()
	r.mu.RUnlock()

	for _, entry := range strings.Split(accept, ",") {
		media := mediaType(entry)
		switch {
		case media == "":
			continue
		case media == "*/*":
			return r.Get("")
		}
		for _, name := range names {
			renderer, err := r.Get(name)
			if err != nil {
				continue
			}
			if mediaMatches(media, mediaType(renderer.ContentType())) {
				return renderer, nil
			}
		}
	}
	return nil, fmt.Errorf("render: no renderer produces %q", accept)
}

// MustGet panics if the renderer is missing.
func (r *Registry) MustGet(name string) Renderer {
	renderer, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return renderer
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNamesLocked()
}

func (r *Registry) sortedNamesLocked() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[normalizeName(name)]
	return ok
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// mediaType strips parameters from a content type or media range.
func mediaType(value string) string {
	media, _, _ := strings.Cut(value, ";")
	return strings.ToLower(strings.TrimSpace(media))
}

func mediaMatches(accepted, produced string) bool {
	if accepted == produced {
		return true
	}
	prefix, ok := strings.CutSuffix(accepted, "/*")
	return ok && strings.HasPrefix(produced, prefix+"/")
}
