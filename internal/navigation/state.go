package navigation

import (
	"slices"

	"github.com/ziadkadry99/nexus-docs/internal/content"
)

// State is the current page and, on the docs page, the active topic.
type State struct {
	Page        Route  `json:"current_page"`
	ActiveTopic string `json:"active_topic_id"`
}

// NewState starts on the home page with the default topic selected.
func NewState(defaultTopic string) State {
	return State{Page: RouteHome, ActiveTopic: defaultTopic}
}

// Navigate moves to route. A non-empty topic replaces the active topic;
// an empty one keeps it so returning to the docs page resumes where the
// reader left off.
func (s State) Navigate(r Route, topic string) State {
	s.Page = ParseRoute(string(r))
	if topic != "" {
		s.ActiveTopic = topic
	}
	return s
}

// Expansion is the sidebar's expand/collapse state keyed by topic id. The
// registry tree itself is never mutated.
type Expansion struct {
	open map[string]bool
}

// NewExpansion returns an expansion map with everything collapsed.
func NewExpansion() *Expansion {
	return &Expansion{open: make(map[string]bool)}
}

// IsExpanded reports whether id is expanded.
func (e *Expansion) IsExpanded(id string) bool { return e.open[id] }

// Expanded returns the ids of expanded topics, sorted.
func (e *Expansion) Expanded() []string {
	out := make([]string, 0, len(e.open))
	for id, ok := range e.open {
		if ok {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Toggle flips a topic that has children. It returns false and does
// nothing for leaves and unknown ids.
func (e *Expansion) Toggle(reg *content.Registry, id string) bool {
	entry, ok := reg.Lookup(id)
	if !ok || !entry.Node.HasChildren() {
		return false
	}
	e.open[id] = !e.open[id]
	return true
}

// Reveal expands every ancestor of id. It never collapses anything.
func (e *Expansion) Reveal(reg *content.Registry, id string) {
	for _, a := range reg.Ancestors(id) {
		e.open[a] = true
	}
}

// Select applies a sidebar click. Clicking a topic with children toggles
// it and leaves navigation alone; clicking a leaf navigates to it.
func Select(reg *content.Registry, s State, exp *Expansion, id string) State {
	entry, ok := reg.Lookup(id)
	if !ok {
		return s
	}
	if entry.Node.HasChildren() {
		exp.Toggle(reg, id)
		return s
	}
	s = s.Navigate(RouteDocs, id)
	exp.Reveal(reg, id)
	return s
}
