package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/nexus-docs/internal/content"
	"github.com/ziadkadry99/nexus-docs/internal/search"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the documentation registry to
// coding agents.
type Server struct {
	reg   *content.Registry
	index *search.Index
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server over the registry and its search index.
func NewServer(reg *content.Registry, idx *search.Index) *Server {
	s := &Server{
		reg:   reg,
		index: idx,
	}

	s.mcp = server.NewMCPServer(
		"nexusdocs",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchDocsTool, s.handleSearchDocs)
	s.mcp.AddTool(getTopicTool, s.handleGetTopic)
	s.mcp.AddTool(listSectionsTool, s.handleListSections)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
