// Package search is the substring index behind the search modal.
package search

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/ziadkadry99/nexus-docs/internal/content"
)

// Entry is a single searchable topic.
type Entry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Path     string `json:"path"`
}

// DocsPath is the page every entry opens on.
const DocsPath = "docs"

// Index is an immutable flattened view of the registry. It is safe for
// concurrent use.
type Index struct {
	entries []Entry
	lower   []lowered
}

type lowered struct {
	title, category string
}

// Build flattens the registry in order. Top-level topics carry their
// section's category; sub-topics carry "Section > Topic".
func Build(reg *content.Registry) *Index {
	idx := &Index{}
	for _, sec := range reg.Sections() {
		for _, item := range sec.Items {
			idx.add(Entry{ID: item.ID, Title: item.Label, Category: sec.Category, Path: DocsPath})
			for _, sub := range item.Children {
				idx.add(Entry{
					ID:       sub.ID,
					Title:    sub.Label,
					Category: sec.Category + " > " + item.Label,
					Path:     DocsPath,
				})
			}
		}
	}
	return idx
}

func (idx *Index) add(e Entry) {
	idx.entries = append(idx.entries, e)
	idx.lower = append(idx.lower, lowered{
		title:    strings.ToLower(e.Title),
		category: strings.ToLower(e.Category),
	})
}

// Len returns the number of entries.
func (idx *Index) Len() int { return len(idx.entries) }

// Search returns, in registry order, every entry whose title or category
// contains query ignoring case. An empty query returns everything.
func (idx *Index) Search(query string) []Entry {
	q := strings.ToLower(query)
	out := make([]Entry, 0)
	for i, e := range idx.entries {
		if q == "" || strings.Contains(idx.lower[i].title, q) || strings.Contains(idx.lower[i].category, q) {
			out = append(out, e)
		}
	}
	return out
}

// Suggested returns the first n entries, shown before anything is typed.
func (idx *Index) Suggested(n int) []Entry {
	if n > len(idx.entries) {
		n = len(idx.entries)
	}
	if n < 0 {
		n = 0
	}
	out := make([]Entry, n)
	copy(out, idx.entries[:n])
	return out
}

// WriteFile writes the whole index as JSON so static pages can search
// without a server.
func (idx *Index) WriteFile(path string) error {
	data, err := json.MarshalIndent(idx.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
