package assistant

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ChatMessage is one entry in a chat transcript. While IsLoading is true the
// Text field accumulates streamed chunks; once a message is finalized it is
// never re-opened, and Sources may only be attached afterwards.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsLoading bool      `json:"is_loading"`
	Sources   []string  `json:"sources,omitempty"`
}

// newUserMessage creates a finalized user entry.
func newUserMessage(text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.New().String(),
		Sender:    SenderUser,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}

// newPendingMessage creates a loading AI entry with empty text.
func newPendingMessage() ChatMessage {
	return ChatMessage{
		ID:        uuid.New().String(),
		Sender:    SenderAI,
		Timestamp: time.Now().UTC(),
		IsLoading: true,
	}
}

// Transcript is an ordered, immutable sequence of chat messages. Every
// operation returns a new transcript value; callers hold the single
// authoritative copy and apply events as reductions over it.
type Transcript []ChatMessage

// Append returns a transcript with the message added at the end.
func (t Transcript) Append(m ChatMessage) Transcript {
	out := make(Transcript, len(t), len(t)+1)
	copy(out, t)
	return append(out, m)
}

// SetText replaces the text of a still-loading message. Returns the updated
// transcript and message; a missing or already-finalized message is left
// untouched and reported with ok=false.
func (t Transcript) SetText(id, text string) (Transcript, ChatMessage, bool) {
	return t.update(id, func(m *ChatMessage) bool {
		if !m.IsLoading {
			return false
		}
		m.Text = text
		return true
	})
}

// Finalize closes a loading message with its final text. Finalizing an
// already-final message is rejected: the loading state transitions to
// finalized exactly once.
func (t Transcript) Finalize(id, text string) (Transcript, ChatMessage, bool) {
	return t.update(id, func(m *ChatMessage) bool {
		if !m.IsLoading {
			return false
		}
		m.Text = text
		m.IsLoading = false
		return true
	})
}

// AttachSources records attribution results on a finalized message. Sources
// never attach to a message that is still loading, and attaching changes
// neither the text nor the loading state.
func (t Transcript) AttachSources(id string, sources []string) (Transcript, ChatMessage, bool) {
	return t.update(id, func(m *ChatMessage) bool {
		if m.IsLoading || len(sources) == 0 {
			return false
		}
		m.Sources = append([]string(nil), sources...)
		return true
	})
}

// Find returns the message with the given id.
func (t Transcript) Find(id string) (ChatMessage, bool) {
	for _, m := range t {
		if m.ID == id {
			return m, true
		}
	}
	return ChatMessage{}, false
}

func (t Transcript) update(id string, apply func(*ChatMessage) bool) (Transcript, ChatMessage, bool) {
	for i := range t {
		if t[i].ID != id {
			continue
		}
		out := make(Transcript, len(t))
		copy(out, t)
		m := out[i]
		if !apply(&m) {
			return t, t[i], false
		}
		out[i] = m
		return out, m, true
	}
	return t, ChatMessage{}, false
}
