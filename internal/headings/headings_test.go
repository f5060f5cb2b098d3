package headings

import (
	"testing"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Quick Example!", "quick-example"},
		{"Next Steps", "next-steps"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Compliance & SOC2", "compliance-soc2"},
		{"API---Keys", "api-keys"},
		{"v2.4 Release", "v2-4-release"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIndexOrderAndLevels(t *testing.T) {
	src := []byte("# Title\n\n## Overview\n\ntext\n\n### Details\n\n#### Too Deep\n\n## Next Steps\n")
	hs := Index(src, nil)

	want := []Heading{
		{ID: "overview", Text: "Overview", Level: 2},
		{ID: "details", Text: "Details", Level: 3},
		{ID: "next-steps", Text: "Next Steps", Level: 2},
	}
	if len(hs) != len(want) {
		t.Fatalf("got %d headings, want %d: %+v", len(hs), len(want), hs)
	}
	for i := range want {
		if hs[i] != want[i] {
			t.Errorf("heading %d = %+v, want %+v", i, hs[i], want[i])
		}
	}
}

func TestIndexKeepsExplicitIDs(t *testing.T) {
	src := []byte("## Overview {#why-nexus}\n\n## Quick Example\n")
	hs := Index(src, nil)
	if len(hs) != 2 {
		t.Fatalf("expected 2 headings, got %d", len(hs))
	}
	if hs[0].ID != "why-nexus" || hs[0].Text != "Overview" {
		t.Errorf("explicit id not kept: %+v", hs[0])
	}
	if hs[1].ID != "quick-example" {
		t.Errorf("generated id = %q", hs[1].ID)
	}
}

func TestIndexPunctuationOnlyHeading(t *testing.T) {
	src := []byte("## Intro\n\n## ???\n\n## ...\n")
	hs := Index(src, nil)
	if len(hs) != 3 {
		t.Fatalf("expected 3 headings, got %d", len(hs))
	}
	if hs[1].ID != "heading-2" {
		t.Errorf("punctuation heading id = %q, want heading-2", hs[1].ID)
	}
	if hs[2].ID != "heading-3" {
		t.Errorf("punctuation heading id = %q, want heading-3", hs[2].ID)
	}
}

func TestIndexAvoidsTopicIDsAndDuplicates(t *testing.T) {
	topics := map[string]bool{"architecture": true, "sso": true}
	src := []byte("## Architecture\n\n## Setup\n\n## Setup\n\n## SSO\n")
	hs := Index(src, func(id string) bool { return topics[id] })

	want := []string{"architecture-2", "setup", "setup-2", "sso-2"}
	for i, id := range want {
		if hs[i].ID != id {
			t.Errorf("heading %d id = %q, want %q", i, hs[i].ID, id)
		}
	}
}

func TestIndexInlineMarkup(t *testing.T) {
	hs := Index([]byte("## Using `eatgf init` **safely**\n"), nil)
	if len(hs) != 1 {
		t.Fatalf("expected 1 heading, got %d", len(hs))
	}
	if hs[0].Text != "Using eatgf init safely" {
		t.Errorf("text = %q", hs[0].Text)
	}
	if hs[0].ID != "using-eatgf-init-safely" {
		t.Errorf("id = %q", hs[0].ID)
	}
}
