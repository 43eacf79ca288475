package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/knowledgehub/internal/db"
	"github.com/ziadkadry99/knowledgehub/internal/store"
)

func TestRenderDocument(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	page, err := r.RenderDocument(store.Document{
		Name:        "onboarding.md",
		Type:        store.TypeText,
		Tags:        []string{"hr", "onboarding"},
		SourceURL:   "https://example.com/onboarding",
		FullContent: "# Welcome\n\nSome **bold** text.\n\n```go\nfunc main() {}\n```",
	})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}

	html := string(page)
	for _, want := range []string{
		"<title>onboarding.md</title>",
		"<strong>bold</strong>",
		`class="doc-tag"`,
		"https://example.com/onboarding",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestRenderDocumentFallsBackToSnippet(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	page, err := r.RenderDocument(store.Document{
		Name:           "note.txt",
		Type:           store.TypeText,
		ContentSnippet: "just the snippet",
	})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if !strings.Contains(string(page), "just the snippet") {
		t.Error("snippet not rendered when full content is empty")
	}
}

func TestExportAll(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer database.Close()

	st := store.NewStore(database)
	ctx := context.Background()
	for _, name := range []string{"Guide One", "Guide Two"} {
		if _, err := st.Create(ctx, store.Document{
			Name:        name,
			Type:        store.TypeText,
			FullContent: "# " + name,
		}); err != nil {
			t.Fatalf("creating document: %v", err)
		}
	}

	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	dir := t.TempDir()
	n, err := r.ExportAll(ctx, st, dir)
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 pages, got %d", n)
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatalf("reading index: %v", err)
	}
	if !strings.Contains(string(index), "guide-one.html") {
		t.Errorf("index missing document link:\n%s", index)
	}
	if _, err := os.Stat(filepath.Join(dir, "guide-one.html")); err != nil {
		t.Errorf("document page not written: %v", err)
	}
}

func TestFileNameSanitizes(t *testing.T) {
	got := fileName(store.Document{Name: "Q3 Report (final).PDF"})
	if got != "q3-report--final-.pdf.html" {
		t.Errorf("unexpected file name %q", got)
	}
}
