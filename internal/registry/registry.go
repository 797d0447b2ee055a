// Package registry resolves a submission's language name to a compile/run
// template, normalizing common spellings and aliases. It is built once at
// startup from configuration and is safe for concurrent reads thereafter.
package registry

import (
	"strings"

	"judged/internal/judgeerr"
	"judged/internal/model"
)

// Registry is an immutable, concurrency-safe language lookup table.
type Registry struct {
	templates map[string]model.LanguageTemplate
}

// aliases maps a normalized-but-still-colloquial spelling to the
// canonical registry key. Applied after the generic normalization pass
// (lowercase, spaces to underscores, dots stripped).
var aliases = map[string]string{
	"c++":    "cpp",
	"nodejs": "javascript", // "node.js" with dots already stripped
}

// Normalize lowercases a language name, replaces spaces with underscores,
// strips dots, and maps known aliases to their canonical registry key.
func Normalize(name string) string {
	n := strings.ToLower(name)
	n = strings.ReplaceAll(n, " ", "_")
	n = strings.ReplaceAll(n, ".", "")
	if canonical, ok := aliases[n]; ok {
		return canonical
	}
	return n
}

// New builds a Registry from a set of enabled language keys, skipping any
// key that builtinTemplates does not define.
func New(enabled []string) *Registry {
	templates := make(map[string]model.LanguageTemplate, len(enabled))
	for _, key := range enabled {
		if tmpl, ok := builtinTemplates[key]; ok {
			templates[key] = tmpl
		}
	}
	return &Registry{templates: templates}
}

// Resolve normalizes name and looks up its template. It returns
// judgeerr.LanguageNotFound when no template is registered.
func (r *Registry) Resolve(name string) (model.LanguageTemplate, error) {
	key := Normalize(name)
	tmpl, ok := r.templates[key]
	if !ok {
		return model.LanguageTemplate{}, judgeerr.Newf(judgeerr.LanguageNotFound, "language %q is not enabled or supported", name)
	}
	return tmpl, nil
}

// Len reports how many languages this registry resolves.
func (r *Registry) Len() int {
	return len(r.templates)
}
