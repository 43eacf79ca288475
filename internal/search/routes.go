package search

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/knowledgehub/internal/store"
)

// RegisterRoutes mounts the search API. index may be nil when no embedding
// provider is configured; searches then fall back to the repository's
// substring matching.
func RegisterRoutes(r chi.Router, index *Index, st *store.Store) {
	r.Get("/api/search", handleSearch(index, st))
}

func handleSearch(index *Index, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			http.Error(w, `{"error":"q is required"}`, http.StatusBadRequest)
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		if index == nil {
			docs, err := st.List(r.Context(), store.ListFilter{Search: query})
			if err != nil {
				http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
				return
			}
			results := make([]Result, 0, len(docs))
			for _, d := range docs {
				if limit > 0 && len(results) == limit {
					break
				}
				results = append(results, Result{
					DocumentID: d.ID,
					Name:       d.Name,
					Type:       string(d.Type),
					Snippet:    d.ContentSnippet,
				})
			}
			writeResults(w, results)
			return
		}

		results, err := index.Query(r.Context(), query, limit)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		writeResults(w, results)
	}
}

func writeResults(w http.ResponseWriter, results []Result) {
	if results == nil {
		results = []Result{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
