package assistant

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ziadkadry99/knowledgehub/internal/store"
)

func TestBuildContextEmpty(t *testing.T) {
	got := BuildContext(nil)
	if got != noDocumentsMarker {
		t.Errorf("expected no-documents marker, got %q", got)
	}
}

func TestBuildContextSkipsContentlessDocs(t *testing.T) {
	docs := []store.Document{
		{Name: "empty.pdf", Type: store.TypePDF},
		{Name: "notes.txt", Type: store.TypeText, ContentSnippet: "meeting notes"},
	}

	got := BuildContext(docs)
	if strings.Contains(got, "empty.pdf") {
		t.Error("document without snippet or content should be skipped")
	}
	if !strings.Contains(got, "Document name: notes.txt") {
		t.Errorf("expected notes.txt block, got %q", got)
	}
}

func TestBuildContextBoundsDocumentCount(t *testing.T) {
	var docs []store.Document
	for i := 0; i < 8; i++ {
		docs = append(docs, store.Document{
			Name:           fmt.Sprintf("doc-%d.txt", i),
			Type:           store.TypeText,
			ContentSnippet: "snippet",
		})
	}

	got := BuildContext(docs)
	blocks := strings.Split(got, contextSeparator)
	if len(blocks) != maxContextDocs {
		t.Fatalf("expected %d blocks, got %d", maxContextDocs, len(blocks))
	}
	// Repository order, no ranking: the first five win.
	if !strings.Contains(blocks[0], "doc-0.txt") || !strings.Contains(blocks[4], "doc-4.txt") {
		t.Errorf("expected first five documents in order, got %q", got)
	}
	if strings.Contains(got, "doc-5.txt") {
		t.Error("sixth document should not appear in context")
	}
}

func TestBuildContextBlockShape(t *testing.T) {
	docs := []store.Document{{
		Name:           "handbook.pdf",
		Type:           store.TypePDF,
		SourceURL:      "https://example.com/handbook.pdf",
		ContentSnippet: "employee handbook",
		FullContent:    strings.Repeat("x", 150),
	}}

	got := BuildContext(docs)
	for _, want := range []string{
		"Document name: handbook.pdf",
		"Type: PDF",
		"Source URL: https://example.com/handbook.pdf",
		"Snippet: employee handbook",
		"Content preview: " + strings.Repeat("x", fullContentPreviewLen) + "...",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("context missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, strings.Repeat("x", fullContentPreviewLen+1)) {
		t.Error("full content preview not truncated")
	}
}

func TestBuildContextOmitsOptionalLines(t *testing.T) {
	docs := []store.Document{{
		Name:           "plain.txt",
		Type:           store.TypeText,
		ContentSnippet: "just a snippet",
	}}

	got := BuildContext(docs)
	if strings.Contains(got, "Source URL") {
		t.Error("source URL line should be omitted when empty")
	}
	if strings.Contains(got, "Content preview") {
		t.Error("content preview line should be omitted without full content")
	}
}

func TestTruncateRunesMultibyte(t *testing.T) {
	s := strings.Repeat("é", 120)
	got := truncateRunes(s, fullContentPreviewLen)
	if len([]rune(got)) != fullContentPreviewLen {
		t.Errorf("expected %d runes, got %d", fullContentPreviewLen, len([]rune(got)))
	}
}
