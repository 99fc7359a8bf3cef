package sitescout

import "context"

// LLMRequest carries a prompt pair to a model.
type LLMRequest struct {
	SystemPrompt string
	UserPrompt   string
}

// LLMResponse is a normalized model response.
type LLMResponse struct {
	Text  string
	Model string
}

// LLMClient generates model responses. Implementations wrap a specific
// provider (e.g., Gemini) behind this interface so callers can swap them.
type LLMClient interface {
	Generate(ctx context.Context, req LLMRequest) (*LLMResponse, error)
}

// TokenCounter counts tokens in text for a specific model. The content
// pipeline uses it to report how much context a run's pages will consume.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
