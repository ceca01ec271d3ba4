// Package chunker splits cleaned article text into bounded, overlapping
// passages at natural boundaries.
package chunker

import "strings"

const (
	// DefaultMaxChars bounds a chunk; a soft bound since an atomic
	// paragraph or sentence may force the raw window.
	DefaultMaxChars = 1800
	// DefaultOverlap is repeated between consecutive chunks so that
	// concepts spanning a boundary stay retrievable from either side.
	DefaultOverlap = 200
)

// Chunker walks text left to right emitting windows of at most maxChars,
// preferring to end each chunk at a paragraph break, then at a sentence
// period, then at the raw window boundary.
type Chunker struct {
	maxChars int
	overlap  int
}

// New creates a Chunker, falling back to defaults for non-positive or
// inconsistent parameters.
func New(maxChars, overlap int) *Chunker {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	if overlap >= maxChars {
		overlap = maxChars / 4
	}
	return &Chunker{maxChars: maxChars, overlap: overlap}
}

// Chunk splits text into trimmed, non-empty passages. Empty text yields
// no chunks; text shorter than maxChars yields exactly one. The cursor
// always advances by at least one character, so Chunk terminates for any
// input.
func (c *Chunker) Chunk(text string) []string {
	var chunks []string
	n := len(text)
	cur := 0
	for cur < n {
		end := cur + c.maxChars
		if end >= n {
			end = n
		} else {
			// Boundary candidates only count beyond the overlap zone,
			// otherwise the next chunk would be a degenerate sliver.
			window := text[cur:end]
			if pb := strings.LastIndex(window, "\n\n"); pb > c.overlap {
				end = cur + pb + len("\n\n")
			} else if sp := strings.LastIndex(window, "."); sp > c.overlap {
				end = cur + sp + 1
			}
		}

		if chunk := strings.TrimSpace(text[cur:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end >= n {
			break
		}
		next := end - c.overlap
		if next <= cur {
			next = cur + 1
		}
		cur = next
	}
	return chunks
}
