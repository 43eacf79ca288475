package importer

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/knowledgehub/internal/search"
	"github.com/ziadkadry99/knowledgehub/internal/store"
)

const (
	// snippetLen is the number of runes copied from a file into the
	// document snippet.
	snippetLen = 280

	// maxContentBytes bounds how much of a file is stored as full
	// content.
	maxContentBytes = 1 << 20
)

// Options controls which files an import picks up.
type Options struct {
	IncludeGlobs []string
	ExcludeGlobs []string
}

// Result summarizes a finished import.
type Result struct {
	Imported int
	Skipped  int
}

// Importer bulk-loads files from a directory tree into the document store,
// optionally feeding the search index as it goes.
type Importer struct {
	store    *store.Store
	index    *search.Index
	reporter Reporter
}

// New creates an importer. index and reporter may be nil.
func New(st *store.Store, index *search.Index, reporter Reporter) *Importer {
	if reporter == nil {
		reporter = silentReporter{}
	}
	return &Importer{store: st, index: index, reporter: reporter}
}

// Run imports every matching file under root.
func (im *Importer) Run(ctx context.Context, root string, opts Options) (*Result, error) {
	paths, err := im.collect(root, opts)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return &Result{}, nil
	}

	im.reporter.Start(len(paths))
	defer im.reporter.Finish()

	result := &Result{}
	for i, relPath := range paths {
		im.reporter.Update(i+1, relPath)

		doc, err := im.buildDocument(root, relPath)
		if err != nil {
			log.Printf("importer: skipping %s: %v", relPath, err)
			result.Skipped++
			continue
		}

		created, err := im.store.Create(ctx, doc)
		if err != nil {
			log.Printf("importer: storing %s: %v", relPath, err)
			result.Skipped++
			continue
		}

		if im.index != nil {
			if err := im.index.IndexDocument(ctx, *created); err != nil {
				log.Printf("importer: indexing %s: %v", relPath, err)
			}
		}
		result.Imported++
	}
	return result, nil
}

// collect walks the tree and returns relative paths of importable files.
func (im *Importer) collect(root string, opts Options) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && shouldExcludeDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !matchesInclude(rel, opts.IncludeGlobs) || matchesExclude(rel, opts.ExcludeGlobs) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return paths, nil
}

// buildDocument reads a file into a Document. Text-like files carry full
// content; other known types are imported as metadata-only records.
func (im *Importer) buildDocument(root, relPath string) (store.Document, error) {
	docType := typeForExt(filepath.Ext(relPath))
	doc := store.Document{
		Name: filepath.Base(relPath),
		Type: docType,
	}

	if !textLike(filepath.Ext(relPath)) {
		doc.ContentSnippet = fmt.Sprintf("Imported from %s", relPath)
		return doc, nil
	}

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		return store.Document{}, err
	}
	if len(data) > maxContentBytes {
		data = data[:maxContentBytes]
	}

	content := string(data)
	doc.FullContent = content
	doc.ContentSnippet = snippet(content)
	return doc, nil
}

// snippet condenses text into a single-line preview.
func snippet(content string) string {
	s := strings.Join(strings.Fields(content), " ")
	runes := []rune(s)
	if len(runes) > snippetLen {
		s = string(runes[:snippetLen])
	}
	return s
}

func typeForExt(ext string) store.DocumentType {
	switch strings.ToLower(ext) {
	case ".pdf":
		return store.TypePDF
	case ".doc", ".docx":
		return store.TypeWord
	case ".xls", ".xlsx", ".csv":
		return store.TypeExcel
	case ".txt", ".md", ".markdown", ".rst", ".html", ".json", ".yaml", ".yml":
		return store.TypeText
	default:
		return store.TypeUnknown
	}
}

func textLike(ext string) bool {
	switch strings.ToLower(ext) {
	case ".txt", ".md", ".markdown", ".rst", ".html", ".json", ".yaml", ".yml", ".csv":
		return true
	default:
		return false
	}
}
