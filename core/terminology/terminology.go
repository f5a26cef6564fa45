// Package terminology provides the localized labels used by the web UI.
// Labels are grouped per language in a Bundle; a Catalog is the view of a
// bundle for one negotiated language and falls back to English.
package terminology

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Message keys used by the web UI.
const (
	KeyTitle      = "api.html.title"
	KeyComponent  = "api.html.component"
	KeyComponents = "api.html.components"
	KeyViews      = "api.html.views"
	KeyActions    = "api.html.actions"
	KeyOthers     = "api.html.others"
	KeyView       = "api.html.view"
	KeyAction     = "api.html.action"
	KeyOther      = "api.html.other"
	KeyFormat     = "api.html.format"
)

// Labels maps message keys to text for one language.
type Labels map[string]string

// English returns the built-in English labels.
func English() Labels {
	return Labels{
		KeyTitle:      "API UI",
		KeyComponent:  "Component: ",
		KeyComponents: "Components",
		KeyViews:      "Views",
		KeyActions:    "Actions",
		KeyOthers:     "Others",
		KeyView:       "View: ",
		KeyAction:     "Action: ",
		KeyOther:      "Other: ",
		KeyFormat:     "Output Format",
	}
}

// Bundle holds labels for several languages.
type Bundle struct {
	tags    []language.Tag
	labels  map[language.Tag]Labels
	matcher language.Matcher
}

// NewBundle creates a bundle seeded with the English labels.
// English is the fallback for every lookup.
func NewBundle() *Bundle {
	b := &Bundle{labels: make(map[language.Tag]Labels)}
	b.Add(language.English, English())
	return b
}

// Add merges labels for a language into the bundle.
func (b *Bundle) Add(tag language.Tag, labels Labels) {
	existing, ok := b.labels[tag]
	if !ok {
		existing = make(Labels, len(labels))
		b.tags = append(b.tags, tag)
	}
	for k, v := range labels {
		existing[k] = v
	}
	b.labels[tag] = existing
	b.matcher = language.NewMatcher(b.tags)
}

// Languages returns the languages in the bundle, English first.
func (b *Bundle) Languages() []language.Tag {
	return append([]language.Tag{}, b.tags...)
}

// Catalog returns the catalog best matching the given preferences.
// Preferences may be BCP 47 tags or raw Accept-Language header values.
func (b *Bundle) Catalog(prefs ...string) *Catalog {
	_, idx := language.MatchStrings(b.matcher, prefs...)
	tag := b.tags[idx]
	return &Catalog{
		tag:      tag,
		labels:   b.labels[tag],
		fallback: b.labels[language.English],
	}
}

// LoadFile reads a YAML file of labels keyed by language:
//
//	de:
//	  api.html.views: Ansichten
//	  api.html.actions: Aktionen
func LoadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}

	var raw map[string]Labels
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse messages: %w", err)
	}

	// Sorted so the bundle's language order does not depend on map iteration.
	langs := make([]string, 0, len(raw))
	for lang := range raw {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	b := NewBundle()
	for _, lang := range langs {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("messages language %q: %w", lang, err)
		}
		b.Add(tag, raw[lang])
	}

	return b, nil
}

// Catalog resolves labels for one language.
type Catalog struct {
	tag      language.Tag
	labels   Labels
	fallback Labels
}

// Default returns the English catalog.
func Default() *Catalog {
	return NewBundle().Catalog()
}

// Language returns the catalog's language.
func (c *Catalog) Language() language.Tag {
	return c.tag
}

// Lookup returns the label for key, falling back to English and then to
// the key itself.
func (c *Catalog) Lookup(key string) string {
	if v, ok := c.labels[key]; ok {
		return v
	}
	if v, ok := c.fallback[key]; ok {
		return v
	}
	return key
}
