// Package content holds the documentation registry: an immutable tree of
// sections, topics and sub-topics, plus the markdown body of each topic.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml topics
var embedded embed.FS

// MaxDepth is the deepest level a topic may sit at (section items are depth 1).
const MaxDepth = 2

// Node is a topic in the documentation tree.
type Node struct {
	ID       string `yaml:"id" json:"id"`
	Label    string `yaml:"label" json:"label"`
	Children []Node `yaml:"items,omitempty" json:"items,omitempty"`
}

// HasChildren reports whether the node has sub-topics.
func (n Node) HasChildren() bool { return len(n.Children) > 0 }

// Section is a top-level grouping shown as a sidebar header.
type Section struct {
	Category string `yaml:"category" json:"category"`
	Icon     string `yaml:"icon" json:"icon"`
	Items    []Node `yaml:"items" json:"items"`
}

// Entry is the flattened view of a node.
type Entry struct {
	Node     Node
	Section  int
	Category string
	// Ancestors holds the ids of enclosing topics, outermost first.
	Ancestors []string
}

// Depth is 1 for section items and 2 for sub-topics.
func (e Entry) Depth() int { return len(e.Ancestors) + 1 }

type registryFile struct {
	Default  string    `yaml:"default"`
	Sections []Section `yaml:"sections"`
}

// Registry is the immutable documentation tree. It is safe for concurrent use.
type Registry struct {
	sections  []Section
	entries   []Entry
	index     map[string]int
	bodies    map[string][]byte
	defaultID string
}

// Default loads the registry compiled into the binary.
func Default() (*Registry, error) {
	return Load(embedded)
}

// Load reads registry.yaml and topics/**/*.md from fsys.
func Load(fsys fs.FS) (*Registry, error) {
	data, err := fs.ReadFile(fsys, "registry.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading registry: %w", err)
	}
	var rf registryFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}

	r, err := build(rf.Sections, rf.Default)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(fsys, "topics/**/*.md")
	if err != nil {
		return nil, fmt.Errorf("globbing topics: %w", err)
	}
	for _, m := range matches {
		id := strings.TrimSuffix(path.Base(m), ".md")
		if _, ok := r.index[id]; !ok {
			return nil, fmt.Errorf("topic body %s has no registry entry", m)
		}
		body, err := fs.ReadFile(fsys, m)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", m, err)
		}
		r.bodies[id] = body
	}

	return r, nil
}

// New builds a registry from in-memory sections, mainly for tests.
func New(sections []Section, defaultID string) (*Registry, error) {
	return build(sections, defaultID)
}

func build(sections []Section, defaultID string) (*Registry, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("registry has no sections")
	}
	r := &Registry{
		sections:  sections,
		index:     make(map[string]int),
		bodies:    make(map[string][]byte),
		defaultID: defaultID,
	}
	for si, s := range sections {
		if s.Category == "" {
			return nil, fmt.Errorf("section %d has no category", si)
		}
		for _, n := range s.Items {
			if err := r.add(n, si, s.Category, nil); err != nil {
				return nil, err
			}
		}
	}
	if _, ok := r.index[defaultID]; !ok {
		return nil, fmt.Errorf("default topic %q is not in the registry", defaultID)
	}
	return r, nil
}

// add appends n and its descendants in pre-order.
func (r *Registry) add(n Node, section int, category string, ancestors []string) error {
	if n.ID == "" || n.Label == "" {
		return fmt.Errorf("topic in %q is missing an id or label", category)
	}
	if _, dup := r.index[n.ID]; dup {
		return fmt.Errorf("duplicate topic id %q", n.ID)
	}
	if len(ancestors)+1 > MaxDepth {
		return fmt.Errorf("topic %q exceeds the maximum depth", n.ID)
	}
	r.index[n.ID] = len(r.entries)
	r.entries = append(r.entries, Entry{
		Node:      n,
		Section:   section,
		Category:  category,
		Ancestors: ancestors,
	})
	next := append(append([]string(nil), ancestors...), n.ID)
	for _, c := range n.Children {
		if err := r.add(c, section, category, next); err != nil {
			return err
		}
	}
	return nil
}

// Sections returns the registry sections in order.
func (r *Registry) Sections() []Section { return r.sections }

// Entries returns every topic in pre-order.
func (r *Registry) Entries() []Entry { return r.entries }

// DefaultID is the topic unknown ids fall back to.
func (r *Registry) DefaultID() string { return r.defaultID }

// Lookup returns the entry for id.
func (r *Registry) Lookup(id string) (Entry, bool) {
	i, ok := r.index[id]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Has reports whether id names a topic.
func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// Ancestors returns the ids of the topics enclosing id, outermost first.
func (r *Registry) Ancestors(id string) []string {
	e, ok := r.Lookup(id)
	if !ok {
		return nil
	}
	return e.Ancestors
}

// Body returns the markdown for a topic. Topics without an authored body
// get a generated placeholder.
func (r *Registry) Body(id string) []byte {
	if b, ok := r.bodies[id]; ok {
		return b
	}
	e, ok := r.Lookup(id)
	if !ok {
		return nil
	}
	return []byte(fmt.Sprintf(
		"Documentation for **%s** in %s is being written.\n\n## Overview\n\nThis page will cover %s for EATGF v2.4 and later.\n",
		e.Node.Label, e.Category, strings.ToLower(e.Node.Label),
	))
}

// Walk calls fn for every entry in pre-order until fn returns false.
func (r *Registry) Walk(fn func(Entry) bool) {
	for _, e := range r.entries {
		if !fn(e) {
			return
		}
	}
}
