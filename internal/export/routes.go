package export

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/knowledgehub/internal/store"
)

// RegisterRoutes mounts the HTML export route.
func RegisterRoutes(r chi.Router, renderer *Renderer, st *store.Store) {
	r.Get("/api/documents/{id}/export", handleExport(renderer, st))
}

func handleExport(renderer *Renderer, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		doc, err := st.Get(r.Context(), id)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if doc == nil {
			http.Error(w, `{"error":"document not found"}`, http.StatusNotFound)
			return
		}

		page, err := renderer.RenderDocument(*doc)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}
