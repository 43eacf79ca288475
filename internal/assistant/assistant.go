package assistant

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/ziadkadry99/knowledgehub/internal/llm"
	"github.com/ziadkadry99/knowledgehub/internal/store"
)

// streamErrorText replaces a loading answer when the token stream fails.
const streamErrorText = "Sorry, something went wrong while generating the answer. Please try again."

// ErrEmptyQuery is returned when a submitted query is blank after trimming.
var ErrEmptyQuery = errors.New("assistant: empty query")

// DocumentSource provides the repository snapshot used to build context.
// The assistant only ever reads from it.
type DocumentSource interface {
	List(ctx context.Context, filter store.ListFilter) ([]store.Document, error)
}

// EventKind labels a transcript change pushed to observers.
type EventKind string

const (
	// EventUser is the finalized user entry appended on submit.
	EventUser EventKind = "user"
	// EventPending is the loading AI placeholder appended on submit.
	EventPending EventKind = "pending"
	// EventChunk carries the loading entry with its accumulated text so far.
	EventChunk EventKind = "chunk"
	// EventDone carries the finalized AI entry.
	EventDone EventKind = "done"
	// EventError carries the AI entry finalized with an error text.
	EventError EventKind = "error"
	// EventSources carries the AI entry after attribution attached.
	EventSources EventKind = "sources"
)

// Event is one transcript change. Message is the affected entry after the
// change was applied.
type Event struct {
	Kind    EventKind   `json:"kind"`
	Message ChatMessage `json:"message"`
}

// Assistant orchestrates a chat turn: context assembly, streamed answer
// generation, and post-answer source attribution. It is the only writer of
// its transcript.
type Assistant struct {
	client     *llm.Client
	docs       DocumentSource
	transcript Transcript
}

func New(client *llm.Client, docs DocumentSource) *Assistant {
	return &Assistant{client: client, docs: docs}
}

// Transcript returns the current transcript snapshot.
func (a *Assistant) Transcript() Transcript {
	out := make(Transcript, len(a.transcript))
	copy(out, a.transcript)
	return out
}

// Ask runs one full chat turn. The user entry and a loading AI entry are
// appended before any network call, so observers never see a gap between the
// question and its placeholder. notify receives every transcript change in
// order; it may be nil. Ask blocks until the turn is fully resolved,
// attribution included; callers wanting concurrency run it in a goroutine.
// At most one Ask per Assistant may be in flight at a time.
func (a *Assistant) Ask(ctx context.Context, query string, notify func(Event)) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrEmptyQuery
	}
	if notify == nil {
		notify = func(Event) {}
	}

	user := newUserMessage(query)
	a.transcript = a.transcript.Append(user)
	notify(Event{Kind: EventUser, Message: user})

	if !a.client.Available() {
		// Resolve synchronously; never leave a loading entry the
		// service cannot finish.
		msg := newPendingMessage()
		msg.Text = llm.UnavailableNotice
		msg.IsLoading = false
		a.transcript = a.transcript.Append(msg)
		notify(Event{Kind: EventDone, Message: msg})
		return nil
	}

	pending := newPendingMessage()
	a.transcript = a.transcript.Append(pending)
	notify(Event{Kind: EventPending, Message: pending})

	docs, err := a.docs.List(ctx, store.ListFilter{})
	if err != nil {
		log.Printf("assistant: listing documents: %v", err)
		docs = nil
	}
	contextStr := BuildContext(docs)
	prompt := groundedAnswerPrompt(contextStr, query)

	var answer strings.Builder
	var streamErr error
	for ev := range a.client.CompleteStream(ctx, prompt) {
		if ev.Err != nil {
			streamErr = ev.Err
		}
		if ev.Done {
			break
		}
		answer.WriteString(ev.Content)
		t, msg, ok := a.transcript.SetText(pending.ID, answer.String())
		if ok {
			a.transcript = t
			notify(Event{Kind: EventChunk, Message: msg})
		}
	}

	if streamErr != nil {
		log.Printf("assistant: answer stream: %v", streamErr)
		t, msg, ok := a.transcript.Finalize(pending.ID, streamErrorText)
		if ok {
			a.transcript = t
			notify(Event{Kind: EventError, Message: msg})
		}
		return nil
	}

	t, final, ok := a.transcript.Finalize(pending.ID, answer.String())
	if !ok {
		return nil
	}
	a.transcript = t
	notify(Event{Kind: EventDone, Message: final})

	sources := a.resolveSources(ctx, query, contextStr, final.Text)
	if t, msg, ok := a.transcript.AttachSources(final.ID, sources); ok {
		a.transcript = t
		notify(Event{Kind: EventSources, Message: msg})
	}
	return nil
}
