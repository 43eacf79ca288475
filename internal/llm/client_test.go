package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fenced with tag", "```json\n[\"a\",\"b\"]\n```", `["a","b"]`},
		{"fenced without tag", "```\n{}\n```", "{}"},
		{"no fence", "[]", "[]"},
		{"whitespace", "  {\"x\":1}  ", `{"x":1}`},
		{"empty", "", ""},
		{"fence only", "```json\n```", ""},
		{"unclosed fence kept", "```json\n[1,2]", "```json\n[1,2]"},
		{"bare opening line kept", "```json", "```json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompleteTextUnavailable(t *testing.T) {
	c := NewClient(nil, "")
	got := c.CompleteText(context.Background(), "hello")
	if got != UnavailableNotice {
		t.Errorf("expected unavailable notice, got %q", got)
	}
}

func TestCompleteTextEmbedsTransportFailure(t *testing.T) {
	mock := NewMockProvider("test")
	mock.Err = errors.New("connection refused")
	c := NewClient(mock, "mock-model")

	got := c.CompleteText(context.Background(), "hello")
	if !strings.Contains(got, "connection refused") {
		t.Errorf("expected error embedded in text, got %q", got)
	}
}

func TestCompleteStructuredUnavailable(t *testing.T) {
	c := NewClient(nil, "")
	var v []string
	err := c.CompleteStructured(context.Background(), "p", &v)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestCompleteStructuredParsesFencedJSON(t *testing.T) {
	mock := NewMockProvider("test")
	mock.Response.Content = "```json\n[\"a\",\"b\"]\n```"
	c := NewClient(mock, "mock-model")

	var v []string
	if err := c.CompleteStructured(context.Background(), "p", &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != 2 || v[0] != "a" || v[1] != "b" {
		t.Errorf("expected [a b], got %v", v)
	}
}

func TestCompleteStructuredParsesBareJSON(t *testing.T) {
	mock := NewMockProvider("test")
	mock.Response.Content = "[]"
	c := NewClient(mock, "mock-model")

	var v []string
	if err := c.CompleteStructured(context.Background(), "p", &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != 0 {
		t.Errorf("expected empty slice, got %v", v)
	}
}

func TestCompleteStructuredUnclosedFence(t *testing.T) {
	mock := NewMockProvider("test")
	mock.Response.Content = "```json\n[1,2]"
	c := NewClient(mock, "mock-model")

	var v []int
	err := c.CompleteStructured(context.Background(), "p", &v)

	var structErr *StructuredError
	if !errors.As(err, &structErr) {
		t.Fatalf("expected *StructuredError, got %v", err)
	}
	if structErr.RawText != "```json\n[1,2]" {
		t.Errorf("expected raw text preserved, got %q", structErr.RawText)
	}
}

func TestCompleteStructuredEmptyPayload(t *testing.T) {
	mock := NewMockProvider("test")
	mock.Response.Content = ""
	c := NewClient(mock, "mock-model")

	var v []string
	err := c.CompleteStructured(context.Background(), "p", &v)

	var structErr *StructuredError
	if !errors.As(err, &structErr) {
		t.Fatalf("expected *StructuredError, got %v", err)
	}
}

func TestCompleteStructuredMalformedJSON(t *testing.T) {
	mock := NewMockProvider("test")
	mock.Response.Content = "this is not json"
	c := NewClient(mock, "mock-model")

	var v []string
	err := c.CompleteStructured(context.Background(), "p", &v)

	var structErr *StructuredError
	if !errors.As(err, &structErr) {
		t.Fatalf("expected *StructuredError, got %v", err)
	}
	if structErr.RawText != "this is not json" {
		t.Errorf("expected raw text preserved, got %q", structErr.RawText)
	}
}

func TestCompleteStructuredTransportError(t *testing.T) {
	mock := NewMockProvider("test")
	mock.Err = errors.New("boom")
	c := NewClient(mock, "mock-model")

	var v []string
	err := c.CompleteStructured(context.Background(), "p", &v)

	var structErr *StructuredError
	if !errors.As(err, &structErr) {
		t.Fatalf("expected *StructuredError, got %v", err)
	}
	if !errors.Is(err, mock.Err) {
		t.Errorf("expected underlying cause preserved, got %v", structErr.Err)
	}
}

func TestCompleteStreamUnavailableTerminatesImmediately(t *testing.T) {
	c := NewClient(nil, "")

	var events []StreamEvent
	for ev := range c.CompleteStream(context.Background(), "p") {
		events = append(events, ev)
	}

	if len(events) != 1 {
		t.Fatalf("expected exactly 1 event, got %d", len(events))
	}
	if !events[0].Done || !errors.Is(events[0].Err, ErrUnavailable) {
		t.Errorf("expected terminal unavailable event, got %+v", events[0])
	}
}

func TestCompleteStreamDeliversChunksThenTerminal(t *testing.T) {
	mock := NewMockProvider("test")
	mock.Chunks = []string{"Hello", " world"}
	c := NewClient(mock, "mock-model")

	var text string
	terminals := 0
	for ev := range c.CompleteStream(context.Background(), "p") {
		if ev.Done {
			terminals++
			if ev.Err != nil {
				t.Errorf("unexpected stream error: %v", ev.Err)
			}
			continue
		}
		if terminals > 0 {
			t.Error("content event after terminal event")
		}
		text += ev.Content
	}

	if text != "Hello world" {
		t.Errorf("expected concatenated chunks, got %q", text)
	}
	if terminals != 1 {
		t.Errorf("expected exactly one terminal event, got %d", terminals)
	}
}
