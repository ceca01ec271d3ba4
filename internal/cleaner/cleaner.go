// Package cleaner strips footer noise and boilerplate from scraped
// review articles and extracts missing titles and dates.
package cleaner

import (
	"strings"

	"go.uber.org/zap"

	"reviewrag/internal/domain"
)

// DefaultMinArticleLen is the shortest truncation result accepted before
// the separator-split fallback kicks in. Empirical; see config to tune.
const DefaultMinArticleLen = 300

// Config tunes the cleaner heuristics.
type Config struct {
	MinArticleLen int
}

// Cleaner turns raw scraped text into clean article bodies. Clean never
// fails: missing structure degrades to a shorter or noisier result.
type Cleaner struct {
	minLen int
	log    *zap.Logger
}

// New creates a Cleaner. A zero MinArticleLen falls back to the default.
func New(cfg Config, log *zap.Logger) *Cleaner {
	if cfg.MinArticleLen <= 0 {
		cfg.MinArticleLen = DefaultMinArticleLen
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Cleaner{minLen: cfg.MinArticleLen, log: log}
}

// Clean truncates raw text at the first footer marker, applies the
// ordered noise rules, and returns the trimmed result. An empty result
// means the record should be dropped by the caller.
func (c *Cleaner) Clean(raw, url string) string {
	if strings.TrimSpace(raw) == "" {
		c.log.Warn("empty content", zap.String("url", url))
		return ""
	}

	meaningful := strings.TrimSpace(raw[:c.firstMarkerOffset(raw)])

	// If the marker fired too early the cut may have eaten the article.
	// Retry on the long-separator boundary and keep the first segment if
	// it is plausibly an article; otherwise keep the short result as-is.
	if len(meaningful) < c.minLen {
		c.log.Warn("truncation cut short, attempting separator fallback", zap.String("url", url))
		parts := separatorSplit.Split(raw, 2)
		if len(parts) > 0 && len(parts[0]) > c.minLen {
			meaningful = strings.TrimSpace(parts[0])
		}
	}

	cleaned := meaningful
	for _, r := range noiseRules {
		cleaned = r.pattern.ReplaceAllString(cleaned, r.replace)
	}
	return strings.TrimSpace(cleaned)
}

// firstMarkerOffset returns the minimum case-insensitive match offset of
// any end marker, or len(raw) when none is present.
func (c *Cleaner) firstMarkerOffset(raw string) int {
	lower := strings.ToLower(raw)
	first := len(raw)
	for _, marker := range endMarkers {
		if pos := strings.Index(lower, strings.ToLower(marker)); pos != -1 && pos < first {
			first = pos
		}
	}
	return first
}

// CleanRecord runs the full record pipeline: clean the body, then fill
// in title and date from the URL when the scraper left them blank.
// Returns false when the cleaned body is empty and the record must be
// dropped.
func (c *Cleaner) CleanRecord(raw domain.RawRecord) (domain.Review, bool) {
	text := c.Clean(raw.ContentText, raw.URL)
	if text == "" {
		return domain.Review{}, false
	}

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = ExtractTitleFromURL(raw.URL)
	}
	if title == "" {
		title = titleFromFirstLine(text)
	}
	if title == "" {
		title = "Unknown Title"
	}

	date := raw.Date
	if date == nil && raw.URL != "" {
		if d := ExtractDateFromURL(raw.URL); d != "" {
			date = &d
		}
	}

	return domain.Review{
		ContentText: text,
		URL:         raw.URL,
		Title:       title,
		Date:        date,
	}, true
}

// titleFromFirstLine treats the first line of the cleaned body as a title
// when it looks plausible: 5-120 chars and not a bracketed placeholder.
func titleFromFirstLine(text string) string {
	first, _, _ := strings.Cut(text, "\n")
	first = strings.TrimSpace(first)
	if len(first) > 5 && len(first) < 120 && !strings.HasPrefix(first, "[") {
		return first
	}
	return ""
}
