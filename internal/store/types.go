package store

import "time"

// DocumentType categorizes the origin of a document record.
type DocumentType string

const (
	TypePDF       DocumentType = "PDF"
	TypeWord      DocumentType = "WORD"
	TypeExcel     DocumentType = "EXCEL"
	TypeText      DocumentType = "TEXT"
	TypeURL       DocumentType = "URL"
	TypeVideoLink DocumentType = "VIDEO_LINK"
	TypeUnknown   DocumentType = "UNKNOWN"
)

// validTypes is the set of recognized document types.
var validTypes = map[DocumentType]bool{
	TypePDF:       true,
	TypeWord:      true,
	TypeExcel:     true,
	TypeText:      true,
	TypeURL:       true,
	TypeVideoLink: true,
	TypeUnknown:   true,
}

// Document is a lightweight knowledge base record. Name doubles as the
// attribution key the assistant echoes back, so it should stay stable and
// unique within a knowledge base.
type Document struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Type           DocumentType `json:"type"`
	Tags           []string     `json:"tags"`
	ContentSnippet string       `json:"content_snippet"`
	FullContent    string       `json:"full_content,omitempty"`
	SourceURL      string       `json:"source_url,omitempty"`
	IsFavorite     bool         `json:"is_favorite"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// ListFilter narrows List results. Zero value means no filtering.
type ListFilter struct {
	Tag           string
	FavoritesOnly bool
	Search        string // substring match on name and snippet
}
