package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/knowledgehub/internal/llm"
	"github.com/ziadkadry99/knowledgehub/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler exposes the assistant over HTTP and WebSocket. Each connection or
// request gets its own transcript; finalized messages are persisted through
// History when a session id is supplied.
type Handler struct {
	client  *llm.Client
	store   *store.Store
	history *History
}

func NewHandler(client *llm.Client, st *store.Store, history *History) *Handler {
	return &Handler{client: client, store: st, history: history}
}

// RegisterRoutes mounts the assistant API routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/ask", h.handleAsk)
	r.Get("/ws/chat", h.handleWebSocket)

	r.Route("/api/chat/sessions", func(r chi.Router) {
		r.Get("/", h.handleListSessions)
		r.Post("/", h.handleCreateSession)
		r.Get("/{id}/messages", h.handleSessionMessages)
	})

	// Registered directly so they coexist with the document CRUD routes.
	r.Post("/api/documents/{id}/summarize", h.handleSummarize)
	r.Post("/api/documents/{id}/faq", h.handleFAQ)
	r.Post("/api/documents/{id}/suggest-tags", h.handleSuggestTags)
}

type askRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id,omitempty"`
}

type askResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}

// handleAsk runs a full chat turn and returns the finalized answer with its
// attributed sources. Streaming consumers use /ws/chat instead.
func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	a := New(h.client, h.store)
	var final ChatMessage
	err := a.Ask(r.Context(), req.Question, func(ev Event) {
		if ev.Kind == EventDone || ev.Kind == EventError || ev.Kind == EventSources {
			final = ev.Message
		}
		h.persist(r.Context(), req.SessionID, ev)
	})
	if err == ErrEmptyQuery {
		http.Error(w, `{"error":"question is required"}`, http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(askResponse{Answer: final.Text, Sources: final.Sources})
}

// chatFrame is one WebSocket message in either direction. Inbound frames
// carry a question; outbound frames mirror orchestrator events.
type chatFrame struct {
	Type      string       `json:"type"` // inbound: "ask"; outbound: event kind or "error"
	SessionID string       `json:"session_id,omitempty"`
	Question  string       `json:"question,omitempty"`
	Message   *ChatMessage `json:"message,omitempty"`
	Error     string       `json:"error,omitempty"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("assistant: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	// One transcript per connection.
	a := New(h.client, h.store)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("assistant: websocket read: %v", err)
			}
			return
		}

		var frame chatFrame
		if err := json.Unmarshal(msg, &frame); err != nil {
			h.sendError(conn, "invalid message format")
			continue
		}
		if frame.Type != "ask" {
			h.sendError(conn, "unknown message type: "+frame.Type)
			continue
		}

		err = a.Ask(r.Context(), frame.Question, func(ev Event) {
			m := ev.Message
			out := chatFrame{Type: string(ev.Kind), SessionID: frame.SessionID, Message: &m}
			if err := conn.WriteJSON(out); err != nil {
				log.Printf("assistant: websocket write: %v", err)
			}
			h.persist(r.Context(), frame.SessionID, ev)
		})
		if err == ErrEmptyQuery {
			h.sendError(conn, "question is required")
		}
	}
}

func (h *Handler) sendError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(chatFrame{Type: "error", Error: message}); err != nil {
		log.Printf("assistant: websocket write error: %v", err)
	}
}

// persist records finalized entries under a session; transient chunk events
// and sessionless turns are skipped.
func (h *Handler) persist(ctx context.Context, sessionID string, ev Event) {
	if h.history == nil || sessionID == "" || ev.Message.IsLoading {
		return
	}
	switch ev.Kind {
	case EventUser, EventDone, EventError, EventSources:
		if err := h.history.SaveMessage(ctx, sessionID, ev.Message); err != nil {
			log.Printf("assistant: persisting message: %v", err)
		}
	}
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.history.ListSessions(r.Context())
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if sessions == nil {
		sessions = []Session{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessions)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	sess, err := h.history.CreateSession(r.Context(), req.UserID)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sess)
}

func (h *Handler) handleSessionMessages(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := h.history.GetSession(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if sess == nil {
		http.Error(w, `{"error":"session not found"}`, http.StatusNotFound)
		return
	}
	msgs, err := h.history.Messages(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if msgs == nil {
		msgs = []ChatMessage{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(msgs)
}

// loadDocument resolves the {id} route param to a document, writing the
// error response itself when resolution fails.
func (h *Handler) loadDocument(w http.ResponseWriter, r *http.Request) (*store.Document, bool) {
	id := chi.URLParam(r, "id")
	doc, err := h.store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return nil, false
	}
	if doc == nil {
		http.Error(w, `{"error":"document not found"}`, http.StatusNotFound)
		return nil, false
	}
	return doc, true
}

func (h *Handler) handleSummarize(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadDocument(w, r)
	if !ok {
		return
	}
	a := New(h.client, h.store)
	summary := a.Summarize(r.Context(), *doc)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"summary": summary})
}

func (h *Handler) handleFAQ(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadDocument(w, r)
	if !ok {
		return
	}
	a := New(h.client, h.store)
	items, err := a.GenerateFAQ(r.Context(), *doc)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, llm.ErrUnavailable) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, status)
		return
	}
	if items == nil {
		items = []FAQItem{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *Handler) handleSuggestTags(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadDocument(w, r)
	if !ok {
		return
	}
	a := New(h.client, h.store)
	tags, err := a.SuggestTags(r.Context(), *doc)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, llm.ErrUnavailable) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, status)
		return
	}
	if tags == nil {
		tags = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"tags": tags})
}
