package render

import (
	"errors"
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ResolveTheme asks selector for a theme/variant and flattens the selection
// into a renderer config. Variant values override the base manifest, which
// overrides fallbacks.
func ResolveTheme(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, errors.New("render: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, fmt.Errorf("render: theme %q not found", name)
	}
	return rendererConfig(selection, fallbacks), nil
}

func rendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	partials := copyStringMap(fallbacks)
	tokens := map[string]string{}
	assetFiles := map[string]string{}
	assetPrefix := ""

	if manifest := selection.Manifest; manifest != nil {
		mergeInto(partials, manifest.Templates)
		mergeInto(tokens, manifest.Tokens)
		mergeInto(assetFiles, manifest.Assets.Files)
		assetPrefix = manifest.Assets.Prefix

		if v, ok := manifest.Variants[selection.Variant]; ok {
			mergeInto(partials, v.Templates)
			mergeInto(tokens, v.Tokens)
			mergeInto(assetFiles, v.Assets.Files)
			if strings.TrimSpace(v.Assets.Prefix) != "" {
				assetPrefix = v.Assets.Prefix
			}
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := assetFiles[key]
			if !ok || file == "" {
				return ""
			}
			if assetPrefix == "" || strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
				return file
			}
			return path.Join(assetPrefix, file)
		},
	}
}

func buildThemeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":     cfg.Theme,
		"variant":  cfg.Variant,
		"tokens":   copyStringMap(cfg.Tokens),
		"css_vars": copyStringMap(cfg.CSSVars),
	}
}

func mergeInto(dst, src map[string]string) {
	for key, value := range src {
		if strings.TrimSpace(value) == "" {
			continue
		}
		dst[key] = value
	}
}

func copyStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
