package orchestrator

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// ManifestSelector resolves themes from a set of registered manifests.
type ManifestSelector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector registers manifests. The first manifest becomes the
// default theme unless SetDefault says otherwise.
func NewManifestSelector(manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{manifests: make(map[string]*theme.Manifest)}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds a manifest. Names are case-insensitive and must be unique.
func (s *ManifestSelector) Register(manifest *theme.Manifest) error {
	if manifest == nil {
		return fmt.Errorf("orchestrator: theme manifest is nil")
	}
	key := strings.ToLower(strings.TrimSpace(manifest.Name))
	if key == "" {
		return fmt.Errorf("orchestrator: theme manifest requires a name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[key]; exists {
		return fmt.Errorf("orchestrator: theme %q already registered", manifest.Name)
	}
	s.manifests[key] = manifest
	if s.defaultTheme == "" {
		s.defaultTheme = key
	}
	return nil
}

// SetDefault selects the theme and variant used when Select receives empty
// names.
func (s *ManifestSelector) SetDefault(name, variant string) error {
	key := strings.ToLower(strings.TrimSpace(name))
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.manifests[key]; !ok {
		return fmt.Errorf("orchestrator: theme %q not registered", name)
	}
	s.defaultTheme = key
	s.defaultVariant = strings.TrimSpace(variant)
	return nil
}

// Names lists registered theme names in order.
func (s *ManifestSelector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for _, manifest := range s.manifests {
		names = append(names, manifest.Name)
	}
	sort.Strings(names)
	return names
}

// Select resolves name and variant. An empty variant picks the default
// variant when the theme defines it, otherwise the base manifest.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = s.defaultTheme
	}
	manifest, ok := s.manifests[key]
	if !ok {
		return nil, fmt.Errorf("orchestrator: theme %q not registered", name)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" && key == s.defaultTheme {
		if _, ok := manifest.Variants[s.defaultVariant]; ok {
			variant = s.defaultVariant
		}
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("orchestrator: theme %q has no variant %q", manifest.Name, variant)
		}
	}
	return &theme.Selection{Theme: manifest.Name, Variant: variant, Manifest: manifest}, nil
}

type manifestFile struct {
	Name      string                 `yaml:"name"`
	Version   string                 `yaml:"version"`
	Tokens    map[string]string      `yaml:"tokens"`
	Templates map[string]string      `yaml:"templates"`
	Assets    assetsFile             `yaml:"assets"`
	Variants  map[string]variantFile `yaml:"variants"`
}

type assetsFile struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type variantFile struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    assetsFile        `yaml:"assets"`
}

// ParseManifest decodes a YAML (or JSON) theme manifest.
func ParseManifest(data []byte) (*theme.Manifest, error) {
	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("orchestrator: decode theme manifest: %w", err)
	}
	if strings.TrimSpace(file.Name) == "" {
		return nil, fmt.Errorf("orchestrator: theme manifest requires a name")
	}
	manifest := &theme.Manifest{
		Name:      file.Name,
		Version:   file.Version,
		Tokens:    file.Tokens,
		Templates: file.Templates,
		Assets:    theme.Assets{Prefix: file.Assets.Prefix, Files: file.Assets.Files},
	}
	if len(file.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(file.Variants))
		for name, v := range file.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    v.Tokens,
				Templates: v.Templates,
				Assets:    theme.Assets{Prefix: v.Assets.Prefix, Files: v.Assets.Files},
			}
		}
	}
	return manifest, nil
}
