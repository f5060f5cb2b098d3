// Package preferences persists the reader's language, theme, and docs
// version.
package preferences

import (
	"context"

	"github.com/ziadkadry99/nexus-docs/internal/apperr"
	"github.com/ziadkadry99/nexus-docs/internal/i18n"
	"github.com/ziadkadry99/nexus-docs/internal/storage"
)

// Storage keys. Values are stored as plain strings.
const (
	LangKey    = "nexus_lang"
	ThemeKey   = "nexus_theme"
	VersionKey = "nexus_version"
)

// Theme is the colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Version is a documentation release shown in the version switcher.
type Version struct {
	Label string `json:"label"`
	Tag   string `json:"tag"`
}

// Versions in switcher order.
var Versions = []Version{
	{Label: "v2.4", Tag: "Latest"},
	{Label: "v2.3", Tag: "Stable"},
	{Label: "v1.5", Tag: "Legacy"},
	{Label: "Next", Tag: "Beta"},
}

// Preferences is the resolved set.
type Preferences struct {
	Language i18n.Lang `json:"language"`
	Theme    Theme     `json:"theme"`
	Version  string    `json:"version"`
}

// Update changes only its non-nil fields.
type Update struct {
	Language *string `json:"language,omitempty"`
	Theme    *string `json:"theme,omitempty"`
	Version  *string `json:"version,omitempty"`
}

// Store reads and writes preferences in a namespace.
type Store struct {
	kv             storage.KV
	defaultVersion string
}

// NewStore returns a store over kv. defaultVersion must be one of Versions.
func NewStore(kv storage.KV, defaultVersion string) *Store {
	if !validVersion(defaultVersion) {
		defaultVersion = Versions[0].Label
	}
	return &Store{kv: kv, defaultVersion: defaultVersion}
}

// Get returns the stored preferences. Missing or unrecognised values read
// as defaults.
func (s *Store) Get(ctx context.Context) (Preferences, error) {
	p := Preferences{Language: i18n.DefaultLang, Theme: ThemeLight, Version: s.defaultVersion}

	lang, err := s.read(ctx, LangKey)
	if err != nil {
		return p, err
	}
	if l, ok := i18n.ParseLang(lang); ok {
		p.Language = l
	}

	theme, err := s.read(ctx, ThemeKey)
	if err != nil {
		return p, err
	}
	if validTheme(theme) {
		p.Theme = Theme(theme)
	}

	version, err := s.read(ctx, VersionKey)
	if err != nil {
		return p, err
	}
	if validVersion(version) {
		p.Version = version
	}
	return p, nil
}

// Set validates and stores u, then returns the resulting preferences.
// Nothing is written when any field is invalid.
func (s *Store) Set(ctx context.Context, u Update) (Preferences, error) {
	if u.Language != nil {
		if _, ok := i18n.ParseLang(*u.Language); !ok {
			return Preferences{}, apperr.Validation("preferences.set", "unsupported language")
		}
	}
	if u.Theme != nil && !validTheme(*u.Theme) {
		return Preferences{}, apperr.Validation("preferences.set", "theme must be light or dark")
	}
	if u.Version != nil && !validVersion(*u.Version) {
		return Preferences{}, apperr.Validation("preferences.set", "unknown docs version")
	}

	writes := []struct {
		key string
		val *string
	}{
		{LangKey, u.Language},
		{ThemeKey, u.Theme},
		{VersionKey, u.Version},
	}
	for _, w := range writes {
		if w.val == nil {
			continue
		}
		if err := s.kv.Set(ctx, w.key, []byte(*w.val)); err != nil {
			return Preferences{}, err
		}
	}
	return s.Get(ctx)
}

// ToggleTheme flips between light and dark.
func (s *Store) ToggleTheme(ctx context.Context) (Preferences, error) {
	p, err := s.Get(ctx)
	if err != nil {
		return p, err
	}
	next := string(ThemeDark)
	if p.Theme == ThemeDark {
		next = string(ThemeLight)
	}
	return s.Set(ctx, Update{Theme: &next})
}

func (s *Store) read(ctx context.Context, key string) (string, error) {
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil || !ok {
		return "", err
	}
	return string(v), nil
}

func validTheme(s string) bool {
	return s == string(ThemeLight) || s == string(ThemeDark)
}

func validVersion(s string) bool {
	for _, v := range Versions {
		if v.Label == s {
			return true
		}
	}
	return false
}
