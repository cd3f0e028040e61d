package llm

import (
	"context"
)

// Client generates a completion for a prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder produces a vector embedding for a text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Reranker reorders documents by relevance to a query, returning indices.
type Reranker interface {
	Rank(ctx context.Context, query string, documents []string) ([]int, error)
}
