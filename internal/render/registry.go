package render

import (
	"embed"
	"fmt"
	"html/template"

	"storefront-web/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Entry binds a stored template key to a page template and a label shown
// in the customization gallery.
type Entry struct {
	Key      string
	Label    string
	Template string
}

// Registry maps template keys to interchangeable storefront layouts.
// Exactly one is active per session; all receive the same StorePage.
type Registry struct {
	entries []Entry
	byKey   map[string]Entry
}

// NewRegistry registers the built-in storefront skins. Keys match the
// values the browser client persisted, so stored preferences keep
// resolving after the reimplementation.
func NewRegistry() *Registry {
	entries := []Entry{
		{Key: "StoreTemplateA", Label: "Clásica", Template: "StoreTemplateA"},
		{Key: "StoreTemplateB", Label: "Minimal", Template: "StoreTemplateB"},
		{Key: "StoreTemplateC", Label: "Vitrina", Template: "StoreTemplateC"},
		{Key: "StoreTemplateD", Label: "Hero", Template: "StoreTemplateD"},
	}
	byKey := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byKey[e.Key] = e
	}
	return &Registry{entries: entries, byKey: byKey}
}

// Entries returns the registered skins in gallery order.
func (r *Registry) Entries() []Entry {
	return r.entries
}

// Resolve returns the entry for a stored key, falling back to the
// default skin for unknown or empty keys.
func (r *Registry) Resolve(key string) Entry {
	if e, ok := r.byKey[key]; ok {
		return e
	}
	return r.byKey[models.DefaultTemplateKey]
}

// Known reports whether key identifies a registered skin.
func (r *Registry) Known(key string) bool {
	_, ok := r.byKey[key]
	return ok
}

// Validate checks at startup that every registered key has a parsed
// template, instead of discovering a missing layout on first render.
func (r *Registry) Validate(t *template.Template) error {
	for _, e := range r.entries {
		if t.Lookup(e.Template) == nil {
			return fmt.Errorf("template registry: key %s has no template %q", e.Key, e.Template)
		}
	}
	return nil
}

// Templates parses the embedded page templates with the render helpers.
func Templates() (*template.Template, error) {
	t := template.New("storefront").Funcs(template.FuncMap{
		"contrast": ContrastColor,
		"money":    FormatMoney,
	})
	t, err := t.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return t, nil
}
