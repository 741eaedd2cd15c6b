package ai

import "context"

// Client submits an analysis request to a language-model vendor and returns the
// generated text. Each call is attempted exactly once.
type Client interface {
	Analyze(ctx context.Context, request string) (string, error)
}
