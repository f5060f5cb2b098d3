// Package render turns registry topics into HTML and draws the portal's
// pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/ziadkadry99/nexus-docs/internal/content"
	"github.com/ziadkadry99/nexus-docs/internal/headings"
	"github.com/ziadkadry99/nexus-docs/internal/navigation"
)

// Links builds URLs. The server uses Links{Base: "/"}; a static export
// uses a relative Base and the ".html" extension.
type Links struct {
	Base string
	Ext  string
}

// ServerLinks are the portal's own routes.
var ServerLinks = Links{Base: "/"}

// Topic returns the URL of a docs topic.
func (l Links) Topic(id string) string {
	return l.TopicBase() + id + l.Ext
}

// TopicBase is the prefix every topic URL starts with.
func (l Links) TopicBase() string {
	return l.Base + "docs/"
}

// Page returns the URL of a route.
func (l Links) Page(r navigation.Route) string {
	switch r {
	case navigation.RouteHome:
		if l.Ext != "" {
			return l.Base + "index" + l.Ext
		}
		return l.Base
	case navigation.RouteDocs:
		if l.Ext != "" {
			return l.Base + "docs/index" + l.Ext
		}
		return l.Base + "docs"
	}
	return l.Base + "page/" + string(r) + l.Ext
}

// Asset returns the URL of a static file such as the search index.
func (l Links) Asset(name string) string {
	return l.Base + name
}

// Topic is a resolved, rendered topic.
type Topic struct {
	content.Resolution
	Headings []headings.Heading `json:"headings"`
	HTML     template.HTML      `json:"html"`
	Markdown string             `json:"markdown"`
}

// Renderer converts topic markdown to HTML.
type Renderer struct {
	reg *content.Registry
	md  goldmark.Markdown
}

// NewRenderer creates a Renderer for reg.
func NewRenderer(reg *content.Registry) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAttribute(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{reg: reg, md: md}
}

// Topic resolves id and renders it. Heading ids never collide with topic
// ids, so "#<topic>" links in a body can be rewritten to topic URLs.
func (r *Renderer) Topic(id string, links Links) (*Topic, error) {
	res := r.reg.Resolve(id)
	src := r.reg.Body(res.Node.ID)

	doc := r.md.Parser().Parse(text.NewReader(src))
	hs := headings.Assign(doc, src, r.reg.Has)
	r.rewriteTopicLinks(doc, links)

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return nil, fmt.Errorf("rendering topic %s: %w", res.Node.ID, err)
	}
	if hs == nil {
		hs = []headings.Heading{}
	}
	return &Topic{
		Resolution: res,
		Headings:   hs,
		HTML:       template.HTML(buf.String()),
		Markdown:   string(src),
	}, nil
}

func (r *Renderer) rewriteTopicLinks(doc ast.Node, links Links) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if l, ok := n.(*ast.Link); ok {
			dest := string(l.Destination)
			if id, ok := strings.CutPrefix(dest, "#"); ok && r.reg.Has(id) {
				l.Destination = []byte(links.Topic(id))
			}
		}
		return ast.WalkContinue, nil
	})
}
