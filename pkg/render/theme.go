package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ResolveTheme selects a theme/variant and flattens it into a renderer
// config. Variant tokens override manifest tokens, and every token is also
// exposed as a "--cardkit-<name>" CSS custom property.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("render: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, fmt.Errorf("render: theme %q resolved to nothing", name)
	}
	return ConfigFromSelection(selection), nil
}

// Theme keys understood by the HTML renderer.
const (
	PartialPage         = "cardkit.page"
	AssetStylesheet     = "cardkit.stylesheet"
	AssetCarouselScript = "cardkit.script"
)

// ConfigFromSelection flattens a selection into a renderer config. Variant
// templates and asset files override the manifest entries with the same key.
func ConfigFromSelection(selection *theme.Selection) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
		Partials: map[string]string{},
	}
	prefix := ""
	files := map[string]string{}
	if manifest := selection.Manifest; manifest != nil {
		mergeStrings(cfg.Tokens, manifest.Tokens)
		mergeStrings(cfg.Partials, manifest.Templates)
		mergeStrings(files, manifest.Assets.Files)
		prefix = manifest.Assets.Prefix
		if v, ok := manifest.Variants[selection.Variant]; ok {
			mergeStrings(cfg.Tokens, v.Tokens)
			mergeStrings(cfg.Partials, v.Templates)
			mergeStrings(files, v.Assets.Files)
			if v.Assets.Prefix != "" {
				prefix = v.Assets.Prefix
			}
		}
	}
	for key, value := range cfg.Tokens {
		cfg.CSSVars[cssVarName(key)] = value
	}
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

func mergeStrings(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}

// assetResolver maps an asset key to prefix/file. Unknown keys resolve to "".
func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(prefix, "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		return prefix + "/" + file
	}
}

// ThemeAssetURL resolves key against cfg, returning "" when cfg has no
// resolver or no such asset.
func ThemeAssetURL(cfg *theme.RendererConfig, key string) string {
	if cfg == nil || cfg.AssetURL == nil {
		return ""
	}
	return cfg.AssetURL(key)
}

// CSSVarsStyle renders the CSS custom properties of cfg as a declaration
// list in key order.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for idx, key := range keys {
		if idx > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s: %s;", key, cfg.CSSVars[key])
	}
	return b.String()
}

func cssVarName(token string) string {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, "--") {
		return token
	}
	token = strings.NewReplacer(".", "-", "_", "-", " ", "-").Replace(token)
	return "--cardkit-" + strings.ToLower(token)
}
