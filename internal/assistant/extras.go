package assistant

import (
	"context"
	"strings"

	"github.com/ziadkadry99/knowledgehub/internal/store"
)

// FAQItem is one generated question/answer pair for a document.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// documentBody picks the richest available text for per-document prompts.
func documentBody(d store.Document) string {
	if d.FullContent != "" {
		return d.FullContent
	}
	return d.ContentSnippet
}

// Summarize produces a short prose summary of a document. Like all plain
// text completions it never fails; an unavailable service yields the
// standard notice text.
func (a *Assistant) Summarize(ctx context.Context, d store.Document) string {
	return a.client.CompleteText(ctx, summaryPrompt(d.Name, documentBody(d)))
}

// GenerateFAQ derives question/answer pairs from a document's content.
func (a *Assistant) GenerateFAQ(ctx context.Context, d store.Document) ([]FAQItem, error) {
	var items []FAQItem
	if err := a.client.CompleteStructured(ctx, faqPrompt(d.Name, documentBody(d)), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SuggestTags proposes lowercase tags for a document. Blank entries from the
// model are dropped and the rest normalized.
func (a *Assistant) SuggestTags(ctx context.Context, d store.Document) ([]string, error) {
	var raw []any
	if err := a.client.CompleteStructured(ctx, tagsPrompt(d.Name, documentBody(d)), &raw); err != nil {
		return nil, err
	}
	var tags []string
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			tags = append(tags, s)
		}
	}
	return tags, nil
}
