// Package i18n holds the UI string catalogs.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lang is a supported UI language.
type Lang string

const (
	English Lang = "en"
	Spanish Lang = "es"
)

// DefaultLang is used when nothing valid is stored.
const DefaultLang = English

// Langs lists the supported languages.
var Langs = []Lang{English, Spanish}

// ParseLang reports whether s names a supported language.
func ParseLang(s string) (Lang, bool) {
	for _, l := range Langs {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

//go:embed locales/*.yaml
var locales embed.FS

// Catalog maps languages to nested message trees.
type Catalog struct {
	trees map[Lang]map[string]any
}

// Default loads the embedded catalogs.
func Default() (*Catalog, error) {
	c := &Catalog{trees: make(map[Lang]map[string]any, len(Langs))}
	for _, l := range Langs {
		data, err := locales.ReadFile("locales/" + string(l) + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("reading %s catalog: %w", l, err)
		}
		tree := map[string]any{}
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parsing %s catalog: %w", l, err)
		}
		c.trees[l] = tree
	}
	return c, nil
}

// T returns the message at a dotted path such as "nav.docs". A missing
// path, or one that stops at a group rather than a message, returns the
// last segment of the path. Unknown languages use DefaultLang.
func (c *Catalog) T(lang Lang, path string) string {
	tree, ok := c.trees[lang]
	if !ok {
		tree = c.trees[DefaultLang]
	}
	keys := strings.Split(path, ".")
	fallback := keys[len(keys)-1]

	var cur any = tree
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return fallback
		}
		if cur, ok = m[k]; !ok {
			return fallback
		}
	}
	if s, ok := cur.(string); ok {
		return s
	}
	return fallback
}

// Messages returns the whole tree for lang, for clients that translate
// on their own.
func (c *Catalog) Messages(lang Lang) map[string]any {
	if tree, ok := c.trees[lang]; ok {
		return tree
	}
	return c.trees[DefaultLang]
}
