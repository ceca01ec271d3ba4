// Package corpus orchestrates cleaning and chunking across the whole
// record set and populates the external index.
package corpus

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"reviewrag/internal/chunker"
	"reviewrag/internal/cleaner"
	"reviewrag/internal/domain"
)

// DefaultBatchSize caps one index submission; embedding endpoints
// commonly enforce batch limits around this size.
const DefaultBatchSize = 100

// Builder populates the index from cleaned reviews. It runs once at
// startup; a Build error means the process must not serve traffic.
type Builder struct {
	chunker *chunker.Chunker
	index   domain.Index
	batch   int
	log     *zap.Logger
}

// NewBuilder creates a Builder submitting batches of at most batchSize
// chunks (DefaultBatchSize when non-positive).
func NewBuilder(ch *chunker.Chunker, idx domain.Index, batchSize int, log *zap.Logger) *Builder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{chunker: ch, index: idx, batch: batchSize, log: log}
}

// CleanAll runs the cleaner over raw records in order, dropping records
// whose cleaned body is empty. Chunk IDs are numbered over the surviving
// reviews, so the cleaned artifact, not the raw file, is the reference
// for original_doc_index.
func CleanAll(c *cleaner.Cleaner, records []domain.RawRecord, log *zap.Logger) []domain.Review {
	if log == nil {
		log = zap.NewNop()
	}
	reviews := make([]domain.Review, 0, len(records))
	for i, rec := range records {
		review, ok := c.CleanRecord(rec)
		if !ok {
			log.Warn("skipping record with empty cleaned text",
				zap.Int("record", i+1),
				zap.String("url", rec.URL))
			continue
		}
		reviews = append(reviews, review)
	}
	return reviews
}

// Build chunks every review and submits the chunks to the index in
// batches. When the index already holds entries the build is a no-op,
// which makes restarts free of re-embedding cost.
func (b *Builder) Build(ctx context.Context, reviews []domain.Review) error {
	count, err := b.index.Count(ctx)
	if err != nil {
		return fmt.Errorf("check index population: %w", err)
	}
	if count > 0 {
		b.log.Info("index already populated, skipping embedding", zap.Int("count", count))
		return nil
	}

	var pending []domain.Chunk
	total := 0
	for i, review := range reviews {
		parts := b.chunker.Chunk(review.ContentText)
		b.log.Info("chunked review",
			zap.Int("review", i+1),
			zap.String("title", review.Title),
			zap.Int("chunks", len(parts)))
		for j, text := range parts {
			pending = append(pending, domain.Chunk{
				ID:   ChunkID(i+1, j+1),
				Text: text,
				Meta: domain.ChunkMeta{
					SourceURL:        review.URL,
					Title:            review.Title,
					ChunkNum:         j + 1,
					OriginalDocIndex: i + 1,
				},
			})
			if len(pending) >= b.batch {
				if err := b.flush(ctx, pending); err != nil {
					return err
				}
				total += len(pending)
				pending = pending[:0]
			}
		}
	}
	if len(pending) > 0 {
		if err := b.flush(ctx, pending); err != nil {
			return err
		}
		total += len(pending)
	}
	b.log.Info("corpus build complete", zap.Int("chunks", total), zap.Int("reviews", len(reviews)))
	return nil
}

func (b *Builder) flush(ctx context.Context, chunks []domain.Chunk) error {
	b.log.Info("adding batch to index", zap.Int("size", len(chunks)))
	if err := b.index.Add(ctx, chunks); err != nil {
		return fmt.Errorf("add batch of %d chunks: %w", len(chunks), err)
	}
	return nil
}

// ChunkID is the stable, unique chunk identifier: deterministic in the
// 1-based document and chunk positions so re-indexing is idempotent.
func ChunkID(docIndex, chunkIndex int) string {
	return fmt.Sprintf("review_%d_chunk_%d", docIndex, chunkIndex)
}
