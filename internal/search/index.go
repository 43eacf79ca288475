package search

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/ziadkadry99/knowledgehub/internal/store"
)

const (
	collectionName  = "documents"
	indexFileName   = "index.gob.gz"
	maxIndexedRunes = 2000
)

// Result pairs an indexed document with its similarity score.
type Result struct {
	DocumentID string  `json:"document_id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Snippet    string  `json:"snippet"`
	Similarity float32 `json:"similarity"`
}

// Index is a semantic search index over knowledge base documents, backed by
// an in-memory chromem collection that can be persisted to disk.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewIndex creates an empty index using the given embedder.
func NewIndex(embedder Embedder) (*Index, error) {
	db := chromem.NewDB()
	ef := toChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &Index{db: db, collection: col, embedFunc: ef}, nil
}

// indexText builds the embedded text for a document: its name, snippet and
// a bounded slice of full content.
func indexText(d store.Document) string {
	parts := []string{d.Name}
	if d.ContentSnippet != "" {
		parts = append(parts, d.ContentSnippet)
	}
	if d.FullContent != "" {
		content := d.FullContent
		if runes := []rune(content); len(runes) > maxIndexedRunes {
			content = string(runes[:maxIndexedRunes])
		}
		parts = append(parts, content)
	}
	return strings.Join(parts, "\n")
}

// IndexDocument adds or replaces a document in the index. Documents without
// any text are skipped.
func (ix *Index) IndexDocument(ctx context.Context, d store.Document) error {
	text := indexText(d)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	doc := chromem.Document{
		ID:      d.ID,
		Content: text,
		Metadata: map[string]string{
			"name":    d.Name,
			"type":    string(d.Type),
			"snippet": d.ContentSnippet,
		},
	}
	return ix.collection.AddDocuments(ctx, []chromem.Document{doc}, 1)
}

// RemoveDocument drops a document from the index.
func (ix *Index) RemoveDocument(ctx context.Context, id string) error {
	return ix.collection.Delete(ctx, nil, nil, id)
}

// Sync replaces the index contents with the given repository snapshot.
func (ix *Index) Sync(ctx context.Context, docs []store.Document) error {
	col, err := ix.db.GetOrCreateCollection(collectionName, nil, ix.embedFunc)
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	ix.collection = col

	for _, d := range docs {
		if err := ix.IndexDocument(ctx, d); err != nil {
			return fmt.Errorf("indexing %s: %w", d.Name, err)
		}
	}
	return nil
}

// Query runs a semantic search and returns up to limit results ranked by
// similarity.
func (ix *Index) Query(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	// chromem-go requires nResults <= collection size.
	count := ix.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	results, err := ix.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result{
			DocumentID: r.ID,
			Name:       r.Metadata["name"],
			Type:       r.Metadata["type"],
			Snippet:    r.Metadata["snippet"],
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

// Count returns the number of indexed documents.
func (ix *Index) Count() int {
	return ix.collection.Count()
}

// Persist saves the index under dir.
func (ix *Index) Persist(dir string) error {
	return ix.db.ExportToFile(filepath.Join(dir, indexFileName), true, "")
}

// Load restores a previously persisted index from dir.
func (ix *Index) Load(dir string) error {
	if err := ix.db.ImportFromFile(filepath.Join(dir, indexFileName), ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := ix.db.GetCollection(collectionName, ix.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	ix.collection = col
	return nil
}
