package llm

import (
	openai "github.com/sashabaranov/go-openai"
)

// NewOpenRouterProvider creates a provider for the OpenRouter API, which is
// OpenAI-compatible and reuses the OpenAI request/stream plumbing.
func NewOpenRouterProvider(apiKey string, model string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = "https://openrouter.ai/api/v1"
	client := openai.NewClientWithConfig(cfg)
	return &OpenAIProvider{
		client: client,
		model:  model,
		name:   "openrouter",
	}
}
