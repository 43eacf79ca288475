package assistant

import (
	"context"
	"log"
	"strings"
)

// resolveSources asks the model which context documents were primary sources
// for an answer. Attribution is best-effort enrichment: every failure mode
// degrades to nil (logged only), and blank answers skip the call entirely.
func (a *Assistant) resolveSources(ctx context.Context, query, contextStr, answer string) []string {
	if strings.TrimSpace(answer) == "" || !a.client.Available() {
		return nil
	}

	var raw []any
	if err := a.client.CompleteStructured(ctx, attributionPrompt(query, contextStr, answer), &raw); err != nil {
		log.Printf("assistant: attribution failed: %v", err)
		return nil
	}

	// The model may return malformed items; keep only non-empty strings.
	var names []string
	for _, item := range raw {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			names = append(names, s)
		}
	}
	return names
}
