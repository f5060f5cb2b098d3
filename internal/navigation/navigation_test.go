package navigation

import (
	"testing"

	"github.com/ziadkadry99/nexus-docs/internal/content"
)

func registry(t *testing.T) *content.Registry {
	t.Helper()
	r, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	return r
}

func TestParseRoute(t *testing.T) {
	if ParseRoute("docs") != RouteDocs {
		t.Error("docs should parse")
	}
	if ParseRoute("nowhere") != RouteHome {
		t.Error("unknown routes should fall back to home")
	}
	if ParseRoute("") != RouteHome {
		t.Error("empty route should fall back to home")
	}
}

func TestPageFor(t *testing.T) {
	p := PageFor(RouteBilling)
	if p.Kind != KindPlaceholder || p.Title != "Billing & Plans" {
		t.Errorf("unexpected billing page %+v", p)
	}
	if PageFor(RoutePrivacy).LegalTab != "privacy" {
		t.Error("privacy should open the privacy tab")
	}
	if PageFor(RouteLegal).LegalTab != "terms" {
		t.Error("legal should open the terms tab")
	}
	if PageFor("bogus").Route != RouteHome {
		t.Error("unknown route should describe home")
	}
	if len(Routes()) != 20 {
		t.Errorf("expected 20 routes, got %d", len(Routes()))
	}
}

func TestNavigateKeepsTopic(t *testing.T) {
	s := NewState("intro")
	s = s.Navigate(RouteDocs, "sso")
	if s.Page != RouteDocs || s.ActiveTopic != "sso" {
		t.Fatalf("unexpected state %+v", s)
	}
	s = s.Navigate(RouteAbout, "")
	if s.ActiveTopic != "sso" {
		t.Error("leaving docs should keep the active topic")
	}
	s = s.Navigate(RouteDocs, "")
	if s.ActiveTopic != "sso" {
		t.Error("returning to docs should resume the active topic")
	}
}

func TestToggleOnlyParents(t *testing.T) {
	reg := registry(t)
	exp := NewExpansion()

	if !exp.Toggle(reg, "install") || !exp.IsExpanded("install") {
		t.Fatal("install should expand")
	}
	if !exp.Toggle(reg, "install") || exp.IsExpanded("install") {
		t.Fatal("install should collapse on second toggle")
	}
	if exp.Toggle(reg, "intro") {
		t.Error("leaf topics cannot be toggled")
	}
	if exp.Toggle(reg, "missing") {
		t.Error("unknown ids cannot be toggled")
	}
}

func TestSelect(t *testing.T) {
	reg := registry(t)
	exp := NewExpansion()
	s := NewState("intro").Navigate(RouteDocs, "")

	s = Select(reg, s, exp, "encryption")
	if s.ActiveTopic != "intro" {
		t.Error("clicking a parent should not navigate")
	}
	if !exp.IsExpanded("encryption") {
		t.Error("clicking a parent should expand it")
	}

	s = Select(reg, s, exp, "install-k8s")
	if s.ActiveTopic != "install-k8s" || s.Page != RouteDocs {
		t.Errorf("clicking a leaf should navigate, got %+v", s)
	}
	if !exp.IsExpanded("install") {
		t.Error("ancestors of the selected leaf should be expanded")
	}
}

func TestSidebarKeepsCollapsedAncestors(t *testing.T) {
	reg := registry(t)
	exp := NewExpansion()
	s := State{Page: RouteDocs, ActiveTopic: "enc-keys"}
	exp.Reveal(reg, s.ActiveTopic)

	encryption := func(sections []SidebarSection) SidebarItem {
		t.Helper()
		for _, item := range sections[2].Items {
			if item.ID == "encryption" {
				return item
			}
		}
		t.Fatal("encryption not found in Platform Security")
		return SidebarItem{}
	}

	sections := Sidebar(reg, s, exp)
	if len(sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(sections))
	}
	enc := encryption(sections)
	if !enc.Expanded || !enc.HasChildren {
		t.Errorf("encryption should be expanded: %+v", enc)
	}
	if !enc.Children[2].Active || enc.Children[2].Depth != 2 {
		t.Errorf("enc-keys should be active at depth 2: %+v", enc.Children[2])
	}

	// Collapsing the active topic's parent must survive a redraw.
	if !exp.Toggle(reg, "encryption") {
		t.Fatal("toggle failed")
	}
	for i := 0; i < 2; i++ {
		if enc := encryption(Sidebar(reg, s, exp)); enc.Expanded {
			t.Fatalf("draw %d reopened encryption", i)
		}
	}
	if exp.IsExpanded("encryption") {
		t.Error("drawing the sidebar changed the expansion map")
	}
}
