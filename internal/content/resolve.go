package content

// Crumb is one step of a breadcrumb trail. Section crumbs have no ID.
type Crumb struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label"`
}

// Resolution is the result of resolving a topic id.
type Resolution struct {
	Node     Node    `json:"node"`
	Category string  `json:"category"`
	Trail    []Crumb `json:"trail"`
	// Found is false when the requested id was unknown and Node is the
	// default topic.
	Found bool `json:"found"`
}

// Resolve returns the topic for id along with its section label and
// breadcrumb trail. Unknown ids resolve to the default topic with
// Found set to false.
func (r *Registry) Resolve(id string) Resolution {
	e, ok := r.Lookup(id)
	if !ok {
		e, _ = r.Lookup(r.defaultID)
	}
	return Resolution{
		Node:     e.Node,
		Category: e.Category,
		Trail:    r.trail(e),
		Found:    ok,
	}
}

func (r *Registry) trail(e Entry) []Crumb {
	crumbs := make([]Crumb, 0, len(e.Ancestors)+2)
	crumbs = append(crumbs, Crumb{Label: e.Category})
	for _, id := range e.Ancestors {
		a, _ := r.Lookup(id)
		crumbs = append(crumbs, Crumb{ID: id, Label: a.Node.Label})
	}
	return append(crumbs, Crumb{ID: e.Node.ID, Label: e.Node.Label})
}

// Description returns the "Category > Label" string used for favorites.
func (res Resolution) Description() string {
	return res.Category + " > " + res.Node.Label
}
