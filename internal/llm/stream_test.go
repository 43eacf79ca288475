package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func collectStream(t *testing.T, ch <-chan StreamEvent) (string, StreamEvent) {
	t.Helper()
	var text string
	var last StreamEvent
	sawTerminal := false
	for ev := range ch {
		if sawTerminal {
			t.Fatal("event received after terminal event")
		}
		if ev.Done {
			sawTerminal = true
			last = ev
			continue
		}
		text += ev.Content
	}
	if !sawTerminal {
		t.Fatal("stream closed without a terminal event")
	}
	return text, last
}

func TestGoogleCompleteStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("alt") != "sse" {
			t.Errorf("expected alt=sse, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"Per \"}]}}]}\n\n")
		fmt.Fprint(w, "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"policy.pdf\"}]}}]}\n\n")
	}))
	defer srv.Close()

	p := NewGoogleProvider("test-key", "gemini-2.0-flash")
	p.baseURL = srv.URL

	text, last := collectStream(t, p.CompleteStream(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
	}))

	if text != "Per policy.pdf" {
		t.Errorf("expected concatenated text, got %q", text)
	}
	if last.Err != nil {
		t.Errorf("unexpected terminal error: %v", last.Err)
	}
}

func TestGoogleCompleteStreamAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"error\":{\"code\":429,\"message\":\"quota\",\"status\":\"RESOURCE_EXHAUSTED\"}}\n\n")
	}))
	defer srv.Close()

	p := NewGoogleProvider("test-key", "gemini-2.0-flash")
	p.baseURL = srv.URL

	text, last := collectStream(t, p.CompleteStream(context.Background(), CompletionRequest{}))
	if text != "" {
		t.Errorf("expected no content, got %q", text)
	}
	if last.Err == nil {
		t.Error("expected terminal error for API error event")
	}
}

func TestGoogleCompleteStreamHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	p := NewGoogleProvider("bad-key", "gemini-2.0-flash")
	p.baseURL = srv.URL

	_, last := collectStream(t, p.CompleteStream(context.Background(), CompletionRequest{}))
	if last.Err == nil {
		t.Error("expected terminal error for HTTP 403")
	}
}

func TestGoogleCompleteStreamAbandonedConsumer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for i := 0; i < 100; i++ {
			fmt.Fprint(w, "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"x\"}]}}]}\n\n")
		}
	}))
	defer srv.Close()

	p := NewGoogleProvider("test-key", "gemini-2.0-flash")
	p.baseURL = srv.URL

	ctx, cancel := context.WithCancel(context.Background())
	ch := p.CompleteStream(ctx, CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
	})

	// Never read an event. The producer must notice the cancelled context
	// and close the channel instead of blocking on its first send.
	cancel()
	time.Sleep(100 * time.Millisecond)

	select {
	case ev, ok := <-ch:
		if ok {
			t.Fatalf("expected closed channel after cancellation, got event %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream goroutine still blocked after context cancellation")
	}
}

func TestOllamaCompleteStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"Hel"},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"lo"},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":""},"done":true,"done_reason":"stop"}`)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")

	text, last := collectStream(t, p.CompleteStream(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
	}))

	if text != "Hello" {
		t.Errorf("expected 'Hello', got %q", text)
	}
	if last.Err != nil {
		t.Errorf("unexpected terminal error: %v", last.Err)
	}
}

func TestAnthropicCompleteStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: content_block_delta\n")
		fmt.Fprint(w, "data: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\"hi\"}}\n\n")
		fmt.Fprint(w, "event: message_stop\n")
		fmt.Fprint(w, "data: {\"type\":\"message_stop\"}\n\n")
	}))
	defer srv.Close()

	p := NewAnthropicProvider("test-key", "claude-sonnet-4-5-20250929")
	p.apiURL = srv.URL

	text, last := collectStream(t, p.CompleteStream(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
	}))

	if text != "hi" {
		t.Errorf("expected 'hi', got %q", text)
	}
	if last.Err != nil {
		t.Errorf("unexpected terminal error: %v", last.Err)
	}
}
