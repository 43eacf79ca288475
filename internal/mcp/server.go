package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/knowledgehub/internal/llm"
	"github.com/ziadkadry99/knowledgehub/internal/search"
	"github.com/ziadkadry99/knowledgehub/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the knowledge base to AI agents.
type Server struct {
	store  *store.Store
	index  *search.Index
	client *llm.Client
	mcp    *server.MCPServer
}

// NewServer creates an MCP server. index may be nil when no embedding
// provider is configured; searches then fall back to substring matching.
func NewServer(st *store.Store, index *search.Index, client *llm.Client) *Server {
	s := &Server{
		store:  st,
		index:  index,
		client: client,
	}

	s.mcp = server.NewMCPServer(
		"knowledgehub",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listDocumentsTool, s.handleListDocuments)
	s.mcp.AddTool(getDocumentTool, s.handleGetDocument)
	s.mcp.AddTool(searchDocumentsTool, s.handleSearchDocuments)
	s.mcp.AddTool(askKnowledgeBaseTool, s.handleAskKnowledgeBase)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
