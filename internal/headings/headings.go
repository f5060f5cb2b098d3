// Package headings builds the "on this page" index for a topic and tracks
// which heading is active as the reader scrolls.
package headings

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of the page index.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Indexed heading levels.
const (
	MinLevel = 2
	MaxLevel = 3
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases text, collapses every run of characters outside a-z and
// 0-9 into one hyphen and trims hyphens from both ends. It returns "" for
// text with no alphanumerics.
func Slug(s string) string {
	s = nonAlnum.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAttribute()),
).Parser()

// Index parses markdown source and returns its heading index.
func Index(source []byte, reserved func(id string) bool) []Heading {
	doc := mdParser.Parse(text.NewReader(source))
	return Assign(doc, source, reserved)
}

// Assign walks doc in document order and gives every level 2 and 3
// heading an id, recording the result on the node so renderers emit it.
//
// Ids written by the author ({#id}) are kept. Generated ids come from
// Slug; a heading whose slug is empty becomes heading-<n>, n being its
// 1-based position in the index. A generated id that collides with a
// reserved id (a topic id) or an earlier heading gets -2, -3, ... appended.
func Assign(doc ast.Node, source []byte, reserved func(id string) bool) []Heading {
	if reserved == nil {
		reserved = func(string) bool { return false }
	}
	var out []Heading
	seen := make(map[string]bool)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level < MinLevel || h.Level > MaxLevel {
			return ast.WalkContinue, nil
		}

		label := plainText(h, source)
		id, explicit := explicitID(h)
		if !explicit {
			id = Slug(label)
			if id == "" {
				id = "heading-" + strconv.Itoa(len(out)+1)
			}
			id = unique(id, func(c string) bool { return seen[c] || reserved(c) })
			h.SetAttributeString("id", []byte(id))
		}
		seen[id] = true
		out = append(out, Heading{ID: id, Text: label, Level: h.Level})
		return ast.WalkSkipChildren, nil
	})
	return out
}

func explicitID(h *ast.Heading) (string, bool) {
	v, ok := h.AttributeString("id")
	if !ok {
		return "", false
	}
	switch id := v.(type) {
	case []byte:
		return string(id), len(id) > 0
	case string:
		return id, id != ""
	}
	return "", false
}

func unique(id string, taken func(string) bool) string {
	if !taken(id) {
		return id
	}
	for i := 2; ; i++ {
		c := fmt.Sprintf("%s-%d", id, i)
		if !taken(c) {
			return c
		}
	}
}

// plainText concatenates the text content of n's inline children.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				b.Write(t.Segment.Value(source))
				if t.SoftLineBreak() {
					b.WriteByte(' ')
				}
			case *ast.String:
				b.Write(t.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
