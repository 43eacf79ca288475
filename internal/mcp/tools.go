package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listDocumentsTool defines the list_documents MCP tool.
var listDocumentsTool = mcp.NewTool("list_documents",
	mcp.WithDescription("List the documents in the knowledge base with their names, types and tags."),
	mcp.WithString("tag",
		mcp.Description("Only return documents carrying this tag"),
	),
	mcp.WithBoolean("favorites_only",
		mcp.Description("Only return favorited documents"),
	),
)

// getDocumentTool defines the get_document MCP tool.
var getDocumentTool = mcp.NewTool("get_document",
	mcp.WithDescription("Get the full content of a document by its name."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Exact document name, as returned by list_documents"),
	),
)

// searchDocumentsTool defines the search_documents MCP tool.
var searchDocumentsTool = mcp.NewTool("search_documents",
	mcp.WithDescription("Search the knowledge base. Uses semantic search when an embedding provider is configured, substring matching otherwise."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

// askKnowledgeBaseTool defines the ask_knowledge_base MCP tool.
var askKnowledgeBaseTool = mcp.NewTool("ask_knowledge_base",
	mcp.WithDescription("Ask a question answered from the knowledge base documents, with source attribution."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The question to answer"),
	),
)
