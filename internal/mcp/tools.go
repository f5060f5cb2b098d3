package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchDocsTool defines the search_docs MCP tool.
var searchDocsTool = mcp.NewTool("search_docs",
	mcp.WithDescription("Search EATGF documentation topics by title or section. Returns matching topic ids."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Case-insensitive text matched against topic titles and sections"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

// getTopicTool defines the get_topic MCP tool.
var getTopicTool = mcp.NewTool("get_topic",
	mcp.WithDescription("Get the markdown body of a documentation topic with its breadcrumb trail and page headings."),
	mcp.WithString("topic_id",
		mcp.Required(),
		mcp.Description("Topic id as returned by search_docs or list_sections"),
	),
)

// listSectionsTool defines the list_sections MCP tool.
var listSectionsTool = mcp.NewTool("list_sections",
	mcp.WithDescription("List every documentation section with its topics and sub-topics."),
)
