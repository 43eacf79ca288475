package llm

import "context"

// Provider defines the interface for LLM providers.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// CompleteStream sends a completion request and returns a channel of
	// stream events. The channel yields text chunks in arrival order,
	// followed by exactly one terminal event (Done=true, Err set on
	// failure), and is then closed.
	CompleteStream(ctx context.Context, req CompletionRequest) <-chan StreamEvent
	// Name returns the name of this provider.
	Name() string
}

// terminal builds a closed single-event channel carrying only the terminal
// event. Used by providers that fail before a stream can be opened.
func terminal(err error) <-chan StreamEvent {
	ch := make(chan StreamEvent, 1)
	ch <- StreamEvent{Done: true, Err: err}
	close(ch)
	return ch
}

// emit sends ev unless the context is cancelled first, so a producer
// goroutine never blocks forever on a consumer that stopped reading.
// Returns false when the send was abandoned.
func emit(ctx context.Context, ch chan<- StreamEvent, ev StreamEvent) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
