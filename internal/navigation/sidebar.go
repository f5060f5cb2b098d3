package navigation

import (
	"github.com/ziadkadry99/nexus-docs/internal/content"
)

// SidebarItem is one rendered row of the sidebar.
type SidebarItem struct {
	ID          string        `json:"id"`
	Label       string        `json:"label"`
	Depth       int           `json:"depth"`
	Active      bool          `json:"active"`
	Expanded    bool          `json:"expanded"`
	HasChildren bool          `json:"has_children"`
	Children    []SidebarItem `json:"children,omitempty"`
}

// SidebarSection groups sidebar rows under a category header.
type SidebarSection struct {
	Category string        `json:"category"`
	Icon     string        `json:"icon"`
	Items    []SidebarItem `json:"items"`
}

// Sidebar builds the sidebar view for the active topic. It reads exp and
// never changes it.
func Sidebar(reg *content.Registry, s State, exp *Expansion) []SidebarSection {
	out := make([]SidebarSection, 0, len(reg.Sections()))
	for _, sec := range reg.Sections() {
		ss := SidebarSection{Category: sec.Category, Icon: sec.Icon}
		for _, n := range sec.Items {
			ss.Items = append(ss.Items, sidebarItem(n, 1, s.ActiveTopic, exp))
		}
		out = append(out, ss)
	}
	return out
}

func sidebarItem(n content.Node, depth int, active string, exp *Expansion) SidebarItem {
	item := SidebarItem{
		ID:          n.ID,
		Label:       n.Label,
		Depth:       depth,
		Active:      n.ID == active,
		Expanded:    exp.IsExpanded(n.ID),
		HasChildren: n.HasChildren(),
	}
	for _, c := range n.Children {
		item.Children = append(item.Children, sidebarItem(c, depth+1, active, exp))
	}
	return item
}
