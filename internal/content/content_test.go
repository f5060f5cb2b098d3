package content

import (
	"strings"
	"testing"
	"testing/fstest"
)

func loadDefault(t *testing.T) *Registry {
	t.Helper()
	r, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return r
}

func TestResolveEveryTopic(t *testing.T) {
	r := loadDefault(t)
	r.Walk(func(e Entry) bool {
		res := r.Resolve(e.Node.ID)
		if !res.Found {
			t.Errorf("Resolve(%q) reported not found", e.Node.ID)
		}
		if res.Node.ID != e.Node.ID {
			t.Errorf("Resolve(%q).Node.ID = %q", e.Node.ID, res.Node.ID)
		}
		return true
	})
	if len(r.Entries()) != 18 {
		t.Errorf("expected 18 topics, got %d", len(r.Entries()))
	}
}

func TestResolveUnknownFallsBack(t *testing.T) {
	r := loadDefault(t)
	for _, id := range []string{"", "nope", "INTRO", "getting-started"} {
		res := r.Resolve(id)
		if res.Found {
			t.Errorf("Resolve(%q) should not be found", id)
		}
		if res.Node.ID != "intro" {
			t.Errorf("Resolve(%q) fell back to %q, want intro", id, res.Node.ID)
		}
		if res.Category != "Getting Started" {
			t.Errorf("fallback category = %q", res.Category)
		}
	}
}

func TestSubTopicCategoryIsSection(t *testing.T) {
	r := loadDefault(t)
	tests := map[string]string{
		"install-docker": "Getting Started",
		"enc-keys":       "Platform Security",
		"encryption":     "Platform Security",
		"rate-limits":    "API Reference",
	}
	for id, want := range tests {
		if got := r.Resolve(id).Category; got != want {
			t.Errorf("category(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestBreadcrumbTrail(t *testing.T) {
	r := loadDefault(t)

	res := r.Resolve("enc-transit")
	var labels []string
	for _, c := range res.Trail {
		labels = append(labels, c.Label)
	}
	got := strings.Join(labels, " > ")
	if got != "Platform Security > Encryption > In Transit" {
		t.Errorf("trail = %q", got)
	}
	if res.Trail[0].ID != "" {
		t.Error("section crumb should have no id")
	}

	if d := r.Resolve("sso").Description(); d != "Platform Security > SSO Configuration" {
		t.Errorf("Description() = %q", d)
	}
}

func TestAncestors(t *testing.T) {
	r := loadDefault(t)
	if a := r.Ancestors("install-k8s"); len(a) != 1 || a[0] != "install" {
		t.Errorf("Ancestors(install-k8s) = %v", a)
	}
	if a := r.Ancestors("intro"); len(a) != 0 {
		t.Errorf("Ancestors(intro) = %v", a)
	}
	if a := r.Ancestors("missing"); a != nil {
		t.Errorf("Ancestors(missing) = %v", a)
	}
}

func TestBodies(t *testing.T) {
	r := loadDefault(t)
	if !strings.Contains(string(r.Body("intro")), "npm install -g @eatgf/cli") {
		t.Error("intro body should contain the quick example")
	}
	stub := string(r.Body("compliance"))
	if !strings.Contains(stub, "Compliance & SOC2") {
		t.Errorf("generated body should mention the label, got %q", stub)
	}
	if r.Body("missing") != nil {
		t.Error("unknown topic should have no body")
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]Section{
		{Category: "A", Items: []Node{{ID: "x", Label: "X"}}},
		{Category: "B", Items: []Node{{ID: "y", Label: "Y", Children: []Node{{ID: "x", Label: "X again"}}}}},
	}, "x")
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestLoadRejectsDeepTrees(t *testing.T) {
	_, err := New([]Section{{
		Category: "A",
		Items: []Node{{ID: "a", Label: "A", Children: []Node{
			{ID: "b", Label: "B", Children: []Node{{ID: "c", Label: "C"}}},
		}}},
	}}, "a")
	if err == nil {
		t.Fatal("expected depth error")
	}
}

func TestLoadRejectsMissingDefault(t *testing.T) {
	_, err := New([]Section{{Category: "A", Items: []Node{{ID: "a", Label: "A"}}}}, "intro")
	if err == nil {
		t.Fatal("expected missing default error")
	}
}

func TestLoadRejectsOrphanBody(t *testing.T) {
	fsys := fstest.MapFS{
		"registry.yaml":     {Data: []byte("default: a\nsections:\n  - category: A\n    items:\n      - id: a\n        label: A\n")},
		"topics/a.md":       {Data: []byte("body a")},
		"topics/deep/zz.md": {Data: []byte("orphan")},
	}
	if _, err := Load(fsys); err == nil {
		t.Fatal("expected orphan body error")
	}

	delete(fsys, "topics/deep/zz.md")
	r, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(r.Body("a")) != "body a" {
		t.Errorf("Body(a) = %q", r.Body("a"))
	}
}
