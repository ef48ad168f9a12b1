package embedding

import "context"

// Embedding is the interface every embedding model client implements.
type Embedding interface {
	// Embed generates the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embedding vectors for a batch of texts,
	// one vector per input in the same order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
