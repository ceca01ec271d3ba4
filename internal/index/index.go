// Package index composes an embedder and a vector store into the
// black-box index the pipeline talks to: add text, count, query by text.
package index

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"reviewrag/internal/domain"
)

// Point is one embedded chunk as persisted by a Store.
type Point struct {
	ID     string
	Vector []float64
	Text   string
	Meta   domain.ChunkMeta
}

// Store persists embedded chunks and supports similarity search.
// Search results come back ordered by ascending distance.
type Store interface {
	Ensure(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, points []Point) error
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, vector []float64, k int) ([]domain.Hit, error)
}

// Vector implements domain.Index by embedding text through the embedder
// and delegating persistence and search to the store.
type Vector struct {
	embedder domain.Embedder
	store    Store
	log      *zap.Logger
	ensured  bool
}

// NewVector creates the index facade.
func NewVector(embedder domain.Embedder, store Store, log *zap.Logger) *Vector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Vector{embedder: embedder, store: store, log: log}
}

// Add embeds the chunk texts in one batch and upserts them.
func (v *Vector) Add(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	vectors, err := v.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed batch: %w", err)
	}
	if !v.ensured {
		if err := v.store.Ensure(ctx, len(vectors[0])); err != nil {
			return fmt.Errorf("ensure collection: %w", err)
		}
		v.ensured = true
	}
	points := make([]Point, len(chunks))
	for i, ch := range chunks {
		points[i] = Point{ID: ch.ID, Vector: vectors[i], Text: ch.Text, Meta: ch.Meta}
	}
	return v.store.Upsert(ctx, points)
}

// Count reports how many chunks the store currently holds.
func (v *Vector) Count(ctx context.Context) (int, error) {
	return v.store.Count(ctx)
}

// Query embeds the text and returns the k nearest chunks, most relevant
// first.
func (v *Vector) Query(ctx context.Context, text string, k int) ([]domain.Hit, error) {
	vec, err := v.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return v.store.Search(ctx, vec, k)
}
