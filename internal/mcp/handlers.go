package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/knowledgehub/internal/assistant"
	"github.com/ziadkadry99/knowledgehub/internal/store"
)

// handleListDocuments lists the knowledge base contents.
func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := store.ListFilter{
		Tag:           request.GetString("tag", ""),
		FavoritesOnly: request.GetBool("favorites_only", false),
	}

	docs, err := s.store.List(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing documents failed: %v", err)), nil
	}
	if len(docs) == 0 {
		return mcp.NewToolResultText("The knowledge base is empty."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d document(s):\n", len(docs))
	for _, d := range docs {
		fmt.Fprintf(&sb, "\n- %s (%s)", d.Name, d.Type)
		if len(d.Tags) > 0 {
			fmt.Fprintf(&sb, " [%s]", strings.Join(d.Tags, ", "))
		}
		if d.ContentSnippet != "" {
			fmt.Fprintf(&sb, "\n  %s", d.ContentSnippet)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetDocument returns a single document's content by name.
func (s *Server) handleGetDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}

	doc, err := s.store.FindByName(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading document failed: %v", err)), nil
	}
	if doc == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no document named %q", name)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\nType: %s\n", doc.Name, doc.Type)
	if doc.SourceURL != "" {
		fmt.Fprintf(&sb, "Source URL: %s\n", doc.SourceURL)
	}
	sb.WriteString("\n")
	if doc.FullContent != "" {
		sb.WriteString(doc.FullContent)
	} else {
		sb.WriteString(doc.ContentSnippet)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleSearchDocuments searches the knowledge base.
func (s *Server) handleSearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	if s.index == nil {
		docs, err := s.store.List(ctx, store.ListFilter{Search: query})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		if len(docs) > limit {
			docs = docs[:limit]
		}
		if len(docs) == 0 {
			return mcp.NewToolResultText("No matching documents."), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Found %d document(s):\n", len(docs))
		for _, d := range docs {
			fmt.Fprintf(&sb, "\n- %s (%s): %s", d.Name, d.Type, d.ContentSnippet)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}

	results, err := s.index.Query(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No matching documents."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&sb, "\n--- Result %d ---\n", i+1)
		fmt.Fprintf(&sb, "Name: %s\nType: %s\nSimilarity: %.1f%%\n", r.Name, r.Type, r.Similarity*100)
		if r.Snippet != "" {
			fmt.Fprintf(&sb, "\n%s\n", r.Snippet)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleAskKnowledgeBase runs a full grounded answer turn and returns the
// final answer with its attributed sources.
func (s *Server) handleAskKnowledgeBase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	a := assistant.New(s.client, s.store)
	var final assistant.ChatMessage
	err = a.Ask(ctx, question, func(ev assistant.Event) {
		switch ev.Kind {
		case assistant.EventDone, assistant.EventError, assistant.EventSources:
			final = ev.Message
		}
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("question failed: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString(final.Text)
	if len(final.Sources) > 0 {
		sb.WriteString("\n\nSources: ")
		sb.WriteString(strings.Join(final.Sources, ", "))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
