package llm

import (
	"context"
	"sync"
)

// EmbeddingCache memoizes embeddings by exact text. Tag and entity names
// repeat heavily across documents in a batch, so caching avoids re-embedding
// the same short strings thousands of times. The cache is an explicit,
// injected dependency with the lifetime of the pipeline run, not a
// process-wide singleton.
type EmbeddingCache struct {
	mu       sync.Mutex
	embedder Embedder
	entries  map[string][]float32
}

func NewEmbeddingCache(embedder Embedder) *EmbeddingCache {
	return &EmbeddingCache{
		embedder: embedder,
		entries:  make(map[string][]float32),
	}
}

func (c *EmbeddingCache) Embed(ctx context.Context, text string) ([]float32, error) {
	c.mu.Lock()
	if vec, ok := c.entries[text]; ok {
		c.mu.Unlock()
		return vec, nil
	}
	c.mu.Unlock()

	vec, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[text] = vec
	c.mu.Unlock()
	return vec, nil
}

// Len reports the number of cached entries.
func (c *EmbeddingCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
