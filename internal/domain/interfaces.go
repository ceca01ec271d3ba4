package domain

import "context"

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// Index is the external vector index collaborator. Embedding is the
// index's concern: callers hand over plain text on both paths.
type Index interface {
	Add(ctx context.Context, chunks []Chunk) error
	Count(ctx context.Context) (int, error)
	Query(ctx context.Context, text string, k int) ([]Hit, error)
}

// Completer is the external language-model collaborator.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
