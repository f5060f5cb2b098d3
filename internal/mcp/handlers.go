package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/nexus-docs/internal/content"
	"github.com/ziadkadry99/nexus-docs/internal/headings"
	"github.com/ziadkadry99/nexus-docs/internal/search"
)

// handleSearchDocs runs a substring search over the topic index.
func (s *Server) handleSearchDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query must not be empty"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	results := s.index.Search(query)
	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No topics match %q. Use list_sections to browse the documentation.", query)), nil
	}
	if len(results) > limit {
		results = results[:limit]
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleGetTopic returns a topic's markdown, breadcrumbs and headings.
func (s *Server) handleGetTopic(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("topic_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: topic_id"), nil
	}
	if !s.reg.Has(id) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"No topic %q. Use search_docs or list_sections to find topic ids.", id,
		)), nil
	}

	res := s.reg.Resolve(id)
	body := s.reg.Body(id)
	hs := headings.Index(body, s.reg.Has)

	return mcp.NewToolResultText(formatTopic(res, hs, body)), nil
}

// handleListSections renders the registry tree as a markdown outline.
func (s *Server) handleListSections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, sec := range s.reg.Sections() {
		fmt.Fprintf(&b, "## %s\n\n", sec.Category)
		for _, item := range sec.Items {
			fmt.Fprintf(&b, "- %s (`%s`)\n", item.Label, item.ID)
			for _, sub := range item.Children {
				fmt.Fprintf(&b, "  - %s (`%s`)\n", sub.Label, sub.ID)
			}
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// formatSearchResults formats search entries as readable markdown.
func formatSearchResults(results []search.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d topics:\n\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&b, "%d. **%s** (`%s`)\n   %s\n", i+1, r.Title, r.ID, r.Category)
	}
	return b.String()
}

func formatTopic(res content.Resolution, hs []headings.Heading, body []byte) string {
	var b strings.Builder
	labels := make([]string, len(res.Trail))
	for i, c := range res.Trail {
		labels[i] = c.Label
	}
	fmt.Fprintf(&b, "# %s\n\n", res.Node.Label)
	fmt.Fprintf(&b, "Path: %s\n", strings.Join(labels, " > "))

	if len(hs) > 0 {
		b.WriteString("\nOn this page:\n")
		for _, h := range hs {
			indent := strings.Repeat("  ", h.Level-headings.MinLevel)
			fmt.Fprintf(&b, "%s- %s (#%s)\n", indent, h.Text, h.ID)
		}
	}
	if res.Node.HasChildren() {
		b.WriteString("\nSub-topics:\n")
		for _, c := range res.Node.Children {
			fmt.Fprintf(&b, "- %s (`%s`)\n", c.Label, c.ID)
		}
	}

	b.WriteString("\n---\n\n")
	b.Write(body)
	return b.String()
}
