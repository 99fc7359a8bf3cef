package mock

import (
	"context"

	"github.com/fwojciec/sitescout"
)

var _ sitescout.LLMClient = (*LLMClient)(nil)

// LLMClient is a mock implementation of sitescout.LLMClient.
type LLMClient struct {
	GenerateFn func(ctx context.Context, req sitescout.LLMRequest) (*sitescout.LLMResponse, error)
}

func (c *LLMClient) Generate(ctx context.Context, req sitescout.LLMRequest) (*sitescout.LLMResponse, error) {
	return c.GenerateFn(ctx, req)
}

var _ sitescout.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of sitescout.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
