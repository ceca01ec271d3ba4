package domain

// RawRecord is one scraped article as produced by the scraper:
// title and date are best-effort and may be empty or null.
type RawRecord struct {
	Title       string  `json:"title"`
	Date        *string `json:"date"`
	URL         string  `json:"url"`
	ContentText string  `json:"content_text"`
}

// Review is a cleaned record ready for chunking and indexing.
// ContentText is non-empty and free of the footer markers the cleaner
// recognizes; Title falls back to "Unknown Title" when nothing better
// could be extracted.
type Review struct {
	ContentText string  `json:"content_text"`
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Date        *string `json:"date"`
}

// ChunkMeta is the metadata stored alongside every chunk in the index.
type ChunkMeta struct {
	SourceURL        string `json:"source_url"`
	Title            string `json:"title"`
	ChunkNum         int    `json:"chunk_num"`
	OriginalDocIndex int    `json:"original_doc_index"`
}

// Chunk is a bounded contiguous slice of a cleaned review, the unit
// stored and retrieved by the index. IDs are deterministic
// (review_<doc>_chunk_<n>, both 1-based) so re-indexing is idempotent.
type Chunk struct {
	ID   string
	Text string
	Meta ChunkMeta
}

// Hit is one retrieved chunk with its distance to the query
// (ascending distance = more relevant). Ephemeral, never persisted.
type Hit struct {
	Text     string
	Meta     ChunkMeta
	Distance float64
}
