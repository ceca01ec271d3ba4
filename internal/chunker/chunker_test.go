package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkEmptyText(t *testing.T) {
	c := New(1800, 200)
	assert.Empty(t, c.Chunk(""))
	assert.Empty(t, c.Chunk("   \n\n  "))
}

func TestChunkShortTextYieldsOneChunk(t *testing.T) {
	c := New(1800, 200)
	text := "First paragraph with a sentence.\n\nSecond paragraph with more."
	chunks := c.Chunk(text)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestChunkPrefersParagraphBreaks(t *testing.T) {
	c := New(1800, 200)

	// Eight ~500-char paragraphs, close to 4000 chars in total.
	para := strings.TrimSpace(strings.Repeat("ab ", 166))
	paras := make([]string, 8)
	for i := range paras {
		paras[i] = para
	}
	text := strings.Join(paras, "\n\n")

	chunks := c.Chunk(text)
	require.Len(t, chunks, 3)
	for i, ch := range chunks {
		assert.LessOrEqual(t, len(ch), 1800, "chunk %d exceeds max", i)
		assert.NotEmpty(t, ch)
	}
	// Consecutive chunks share overlap-derived text.
	for i := 1; i < len(chunks); i++ {
		tail := chunks[i-1][len(chunks[i-1])-50:]
		assert.Contains(t, chunks[i], tail, "chunks %d and %d share no overlap", i-1, i)
	}
}

func TestChunkFallsBackToSentenceBoundary(t *testing.T) {
	c := New(200, 40)

	// No paragraph breaks; sentences every ~60 chars.
	sentence := strings.Repeat("word ", 11) + "end."
	text := strings.TrimSpace(strings.Repeat(sentence+" ", 10))

	chunks := c.Chunk(text)
	require.Greater(t, len(chunks), 1)
	for i, ch := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(ch, "."), "chunk %d does not end at a sentence: %q", i, ch)
	}
}

func TestChunkPathologicalInputTerminates(t *testing.T) {
	c := New(1800, 200)

	// No periods, no paragraph breaks: raw windows only.
	text := strings.Repeat("x", 5000)
	chunks := c.Chunk(text)
	require.Len(t, chunks, 3)
	assert.Equal(t, 1800, len(chunks[0]))
}

func TestChunkCoversWholeText(t *testing.T) {
	c := New(300, 50)
	text := strings.Repeat("y", 1000)
	chunks := c.Chunk(text)
	require.NotEmpty(t, chunks)

	// With overlapping windows over uniform text, total emitted length
	// must be at least the input length: no gaps.
	total := 0
	for _, ch := range chunks {
		total += len(ch)
	}
	assert.GreaterOrEqual(t, total, len(text))
	assert.True(t, strings.HasSuffix(text, chunks[len(chunks)-1]))
}

func TestChunkDegenerateParamsFallBackToDefaults(t *testing.T) {
	c := New(0, -1)
	chunks := c.Chunk(strings.Repeat("z", 100))
	require.Len(t, chunks, 1)

	// Overlap larger than the window must not stall the cursor.
	c = New(100, 500)
	chunks = c.Chunk(strings.Repeat("z", 1000))
	assert.NotEmpty(t, chunks)
}
