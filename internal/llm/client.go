package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
)

// UnavailableNotice is returned by CompleteText when no provider is
// configured, so callers can surface it directly instead of failing.
const UnavailableNotice = "AI features are currently unavailable. Configure a provider API key (for example GOOGLE_API_KEY) and restart."

// ErrUnavailable is returned by CompleteStructured and delivered as the
// stream error when no provider is configured.
var ErrUnavailable = errors.New("llm: no provider configured")

// StructuredError reports a structured completion that could not be turned
// into the expected JSON value. RawText carries the model output when the
// transport exposed it, so callers can log what actually came back.
type StructuredError struct {
	RawText string
	Err     error
}

func (e *StructuredError) Error() string {
	return fmt.Sprintf("structured completion: %v", e.Err)
}

func (e *StructuredError) Unwrap() error { return e.Err }

// Client wraps a Provider with the three calling patterns the application
// needs: best-effort text, strict structured JSON, and streaming. A nil
// provider models the "no credential configured" state; every operation
// degrades uniformly instead of failing.
type Client struct {
	provider Provider
	model    string
}

// NewClient creates a client for the given provider. A nil provider yields
// an unavailable client whose operations degrade gracefully.
func NewClient(provider Provider, model string) *Client {
	return &Client{provider: provider, model: model}
}

// Available reports whether a provider is configured.
func (c *Client) Available() bool {
	return c != nil && c.provider != nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// CompleteText requests a plain text completion. It never returns an error:
// when the service is unavailable it returns a fixed notice, and transport
// failures are embedded in the returned text.
func (c *Client) CompleteText(ctx context.Context, prompt string) string {
	if !c.Available() {
		return UnavailableNotice
	}

	resp, err := c.provider.Complete(ctx, CompletionRequest{
		Model:       c.model,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   2048,
		Temperature: 0.3,
	})
	if err != nil {
		log.Printf("llm: text completion failed: %v", err)
		return fmt.Sprintf("The AI service returned an error: %v", err)
	}

	logUsage(resp)
	return resp.Content
}

// CompleteStructured requests a JSON completion and unmarshals the payload
// into v. A single well-formed triple-backtick code fence (with optional
// language tag) wrapping the payload is stripped first. Returns
// ErrUnavailable when no provider is configured; transport failures, empty
// payloads, and malformed JSON are reported as *StructuredError.
func (c *Client) CompleteStructured(ctx context.Context, prompt string, v any) error {
	if !c.Available() {
		return ErrUnavailable
	}

	resp, err := c.provider.Complete(ctx, CompletionRequest{
		Model:       c.model,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   4096,
		Temperature: 0.2,
		JSONMode:    true,
	})
	if err != nil {
		return &StructuredError{Err: err}
	}

	logUsage(resp)

	payload := stripCodeFence(resp.Content)
	if payload == "" {
		return &StructuredError{RawText: resp.Content, Err: errors.New("empty payload")}
	}

	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return &StructuredError{RawText: resp.Content, Err: fmt.Errorf("json parse: %w", err)}
	}
	return nil
}

// CompleteStream requests a streaming completion. When the service is
// unavailable the returned channel immediately yields a terminal error
// event, preserving the exactly-once completion guarantee for consumers.
func (c *Client) CompleteStream(ctx context.Context, prompt string) <-chan StreamEvent {
	if !c.Available() {
		return terminal(ErrUnavailable)
	}

	return c.provider.CompleteStream(ctx, CompletionRequest{
		Model:       c.model,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   2048,
		Temperature: 0.3,
	})
}

// stripCodeFence trims the text and removes a single markdown code fence
// (```lang ... ```) when it wraps the whole payload. Other fence shapes are
// left alone and surface as parse errors downstream.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "```") {
		lines := strings.Split(raw, "\n")
		// Strip only a complete fence: opening line (```json) plus a
		// closing ``` line. An unclosed fence is left intact so the
		// payload fails to parse.
		if len(lines) >= 2 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
			raw = strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
		}
	}

	return raw
}

func logUsage(resp *CompletionResponse) {
	if resp.InputTokens == 0 && resp.OutputTokens == 0 {
		return
	}
	cost := EstimateCost(resp.Model, resp.InputTokens, resp.OutputTokens)
	log.Printf("llm: %s used %d input / %d output tokens (est $%.4f)",
		resp.Model, resp.InputTokens, resp.OutputTokens, cost)
}
