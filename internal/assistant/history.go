package assistant

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/knowledgehub/internal/db"
)

// History persists chat transcripts. The orchestrator itself owns no
// storage; callers that want durable sessions record finalized messages
// here.
type History struct {
	db *db.DB
}

func NewHistory(database *db.DB) *History {
	return &History{db: database}
}

// Session is a persisted conversation.
type Session struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreateSession starts a new session for a user. Empty userID defaults to
// anonymous.
func (h *History) CreateSession(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		userID = "anonymous"
	}
	id := uuid.New().String()
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO chat_sessions (id, user_id) VALUES (?, ?)`, id, userID)
	if err != nil {
		return nil, fmt.Errorf("creating chat session: %w", err)
	}
	return h.GetSession(ctx, id)
}

// GetSession returns a session by id, or nil if it does not exist.
func (h *History) GetSession(ctx context.Context, id string) (*Session, error) {
	row := h.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, updated_at FROM chat_sessions WHERE id = ?`, id)
	var s Session
	if err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("loading chat session: %w", err)
	}
	return &s, nil
}

// ListSessions returns all sessions, newest first.
func (h *History) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, user_id, created_at, updated_at FROM chat_sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing chat sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning chat session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// SaveMessage records a finalized message under a session. Loading entries
// are never persisted.
func (h *History) SaveMessage(ctx context.Context, sessionID string, m ChatMessage) error {
	if m.IsLoading {
		return fmt.Errorf("refusing to persist loading message %s", m.ID)
	}
	sources, err := json.Marshal(m.Sources)
	if err != nil {
		return fmt.Errorf("encoding sources: %w", err)
	}
	if m.Sources == nil {
		sources = []byte("[]")
	}
	_, err = h.db.ExecContext(ctx,
		`INSERT INTO chat_messages (id, session_id, sender, content, sources, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET content = excluded.content, sources = excluded.sources`,
		m.ID, sessionID, string(m.Sender), m.Text, string(sources), m.Timestamp.Format("2006-01-02 15:04:05"))
	if err != nil {
		return fmt.Errorf("saving chat message: %w", err)
	}
	_, err = h.db.ExecContext(ctx,
		`UPDATE chat_sessions SET updated_at = datetime('now') WHERE id = ?`, sessionID)
	return err
}

// Messages returns all messages of a session in chronological order.
func (h *History) Messages(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, sender, content, sources, created_at FROM chat_messages
		 WHERE session_id = ? ORDER BY created_at ASC, id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var msgs []ChatMessage
	for rows.Next() {
		var m ChatMessage
		var sender, sources, created string
		if err := rows.Scan(&m.ID, &sender, &m.Text, &sources, &created); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		m.Sender = Sender(sender)
		if ts, err := time.Parse("2006-01-02 15:04:05", created); err == nil {
			m.Timestamp = ts
		}
		if err := json.Unmarshal([]byte(sources), &m.Sources); err != nil {
			m.Sources = nil
		}
		if len(m.Sources) == 0 {
			m.Sources = nil
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
