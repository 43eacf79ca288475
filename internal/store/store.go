package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/knowledgehub/internal/db"
)

// Store manages persistence of documents.
type Store struct {
	db *db.DB
}

// NewStore creates a new document store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

const documentColumns = `id, name, type, tags, content_snippet, full_content, source_url, is_favorite, created_at, updated_at`

// Create inserts a new document. An empty ID is assigned a UUID; an empty
// type defaults to UNKNOWN.
func (s *Store) Create(ctx context.Context, d Document) (*Document, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("document name is required")
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Type == "" {
		d.Type = TypeUnknown
	}
	if !validTypes[d.Type] {
		return nil, fmt.Errorf("invalid document type %q", d.Type)
	}

	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	tags, err := json.Marshal(tagsOrEmpty(d.Tags))
	if err != nil {
		return nil, fmt.Errorf("marshaling tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (`+documentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Type, string(tags), d.ContentSnippet,
		nullable(d.FullContent), nullable(d.SourceURL), d.IsFavorite, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting document: %w", err)
	}

	return &d, nil
}

// Get retrieves a document by ID. Returns nil, nil when not found.
func (s *Store) Get(ctx context.Context, id string) (*Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)

	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return d, nil
}

// List returns documents in repository order (insertion order), optionally
// narrowed by the filter.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE 1=1`
	args := []any{}

	if filter.FavoritesOnly {
		query += " AND is_favorite = 1"
	}
	if filter.Search != "" {
		query += " AND (name LIKE ? OR content_snippet LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	query += " ORDER BY created_at ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		// Tag filtering happens here: tags are stored as a JSON array, so
		// SQL LIKE on the column would match substrings across tags.
		if filter.Tag != "" && !hasTag(d.Tags, filter.Tag) {
			continue
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

// Update replaces the mutable fields of an existing document.
func (s *Store) Update(ctx context.Context, d Document) (*Document, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("document id is required")
	}
	if d.Name == "" {
		return nil, fmt.Errorf("document name is required")
	}
	if d.Type == "" {
		d.Type = TypeUnknown
	}
	if !validTypes[d.Type] {
		return nil, fmt.Errorf("invalid document type %q", d.Type)
	}

	d.UpdatedAt = time.Now().UTC()

	tags, err := json.Marshal(tagsOrEmpty(d.Tags))
	if err != nil {
		return nil, fmt.Errorf("marshaling tags: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE documents
		 SET name = ?, type = ?, tags = ?, content_snippet = ?, full_content = ?, source_url = ?, updated_at = ?
		 WHERE id = ?`,
		d.Name, d.Type, string(tags), d.ContentSnippet,
		nullable(d.FullContent), nullable(d.SourceURL), d.UpdatedAt, d.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating document: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("document %s not found", d.ID)
	}

	return s.Get(ctx, d.ID)
}

// Delete removes a document by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("document %s not found", id)
	}
	return nil
}

// ToggleFavorite flips the favorite flag and returns the updated document.
func (s *Store) ToggleFavorite(ctx context.Context, id string) (*Document, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET is_favorite = NOT is_favorite, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("toggling favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking toggle result: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("document %s not found", id)
	}
	return s.Get(ctx, id)
}

// FindByName returns the first document with the given name, or nil.
// Attribution results carry names, not IDs, so this is the resolution path.
func (s *Store) FindByName(ctx context.Context, name string) (*Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE name = ? ORDER BY created_at ASC LIMIT 1`, name)

	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding document by name: %w", err)
	}
	return d, nil
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*Document, error) {
	var d Document
	var tags string
	var fullContent, sourceURL sql.NullString

	err := row.Scan(&d.ID, &d.Name, &d.Type, &tags, &d.ContentSnippet,
		&fullContent, &sourceURL, &d.IsFavorite, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &d.Tags); err != nil {
		return nil, fmt.Errorf("parsing tags: %w", err)
	}
	d.FullContent = fullContent.String
	d.SourceURL = sourceURL.String
	return &d, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
