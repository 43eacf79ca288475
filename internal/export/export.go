package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/knowledgehub/internal/store"
)

// Renderer converts documents into standalone HTML pages. Document content
// is treated as markdown; plain text renders fine through the same path.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	return &Renderer{md: md, tmpl: tmpl}, nil
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title     string
	Type      string
	Tags      []string
	SourceURL string
	Content   template.HTML
}

// RenderDocument produces a complete HTML page for one document.
func (r *Renderer) RenderDocument(d store.Document) ([]byte, error) {
	body := d.FullContent
	if body == "" {
		body = d.ContentSnippet
	}

	var htmlBuf bytes.Buffer
	if err := r.md.Convert([]byte(body), &htmlBuf); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	data := pageData{
		Title:     d.Name,
		Type:      string(d.Type),
		Tags:      d.Tags,
		SourceURL: d.SourceURL,
		Content:   template.HTML(htmlBuf.String()),
	}

	var out bytes.Buffer
	if err := r.tmpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("executing page template: %w", err)
	}
	return out.Bytes(), nil
}

// ExportAll writes one HTML page per document into outputDir, plus an
// index page linking them. Returns the number of pages written.
func (r *Renderer) ExportAll(ctx context.Context, st *store.Store, outputDir string) (int, error) {
	docs, err := st.List(ctx, store.ListFilter{})
	if err != nil {
		return 0, fmt.Errorf("listing documents: %w", err)
	}
	if len(docs) == 0 {
		return 0, fmt.Errorf("no documents to export")
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return 0, err
	}

	var index strings.Builder
	index.WriteString("# Knowledge Base\n\n")

	for _, d := range docs {
		page, err := r.RenderDocument(d)
		if err != nil {
			return 0, fmt.Errorf("rendering %s: %w", d.Name, err)
		}
		name := fileName(d)
		if err := os.WriteFile(filepath.Join(outputDir, name), page, 0o644); err != nil {
			return 0, err
		}
		fmt.Fprintf(&index, "- [%s](%s)\n", d.Name, name)
	}

	indexPage, err := r.RenderDocument(store.Document{
		Name:        "Knowledge Base",
		FullContent: index.String(),
	})
	if err != nil {
		return 0, fmt.Errorf("rendering index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "index.html"), indexPage, 0o644); err != nil {
		return 0, err
	}

	return len(docs), nil
}

// fileName derives a safe HTML file name from a document.
func fileName(d store.Document) string {
	name := strings.ToLower(d.Name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	base := strings.Trim(b.String(), "-")
	if base == "" {
		base = d.ID
	}
	return base + ".html"
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; max-width: 820px; margin: 2rem auto; padding: 0 1rem; color: #1f2328; }
h1, h2, h3 { line-height: 1.25; }
pre { background: #f6f8fa; padding: 1rem; border-radius: 6px; overflow-x: auto; }
code { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; font-size: 0.92em; }
.doc-meta { color: #57606a; font-size: 0.9em; margin-bottom: 1.5rem; }
.doc-tag { background: #ddf4ff; color: #0969da; border-radius: 2em; padding: 0 0.6em; margin-right: 0.4em; }
table { border-collapse: collapse; }
td, th { border: 1px solid #d0d7de; padding: 0.4em 0.8em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="doc-meta">
<span>{{.Type}}</span>
{{range .Tags}}<span class="doc-tag">{{.}}</span>{{end}}
{{if .SourceURL}}<div><a href="{{.SourceURL}}">{{.SourceURL}}</a></div>{{end}}
</div>
{{.Content}}
</body>
</html>
`
