package assistant

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/knowledgehub/internal/store"
)

const (
	// maxContextDocs bounds the context window. Documents are taken in
	// repository order; there is no relevance ranking.
	maxContextDocs = 5

	// fullContentPreviewLen is the number of runes of full content
	// included per document on top of its snippet.
	fullContentPreviewLen = 100

	// contextSeparator joins document blocks in the assembled context.
	contextSeparator = "\n\n---\n\n"

	// noDocumentsMarker stands in for the context when no document
	// qualifies, so the prompt template still renders legibly.
	noDocumentsMarker = "No documents are currently available in the knowledge base."
)

// BuildContext serializes a bounded subset of documents into a single
// context string for grounding prompts. Deterministic for a given document
// slice: documents with neither snippet nor full content are skipped, the
// first maxContextDocs qualifying documents are rendered in order.
func BuildContext(docs []store.Document) string {
	var blocks []string

	for _, d := range docs {
		if d.ContentSnippet == "" && d.FullContent == "" {
			continue
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Document name: %s\n", d.Name)
		fmt.Fprintf(&b, "Type: %s\n", d.Type)
		if d.SourceURL != "" {
			fmt.Fprintf(&b, "Source URL: %s\n", d.SourceURL)
		}
		fmt.Fprintf(&b, "Snippet: %s", d.ContentSnippet)
		if d.FullContent != "" {
			fmt.Fprintf(&b, "\nContent preview: %s...", truncateRunes(d.FullContent, fullContentPreviewLen))
		}

		blocks = append(blocks, b.String())
		if len(blocks) == maxContextDocs {
			break
		}
	}

	if len(blocks) == 0 {
		return noDocumentsMarker
	}
	return strings.Join(blocks, contextSeparator)
}

// truncateRunes shortens s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
