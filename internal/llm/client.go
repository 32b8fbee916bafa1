package llm

import "context"

// Request is a single-turn completion: a fixed instruction plus one user
// prompt.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
