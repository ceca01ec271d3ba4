package cleaner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewrag/internal/domain"
)

func newTestCleaner() *Cleaner {
	return New(Config{}, nil)
}

func TestCleanTruncatesAtFirstMarker(t *testing.T) {
	c := newTestCleaner()

	got := c.Clean("Great lens. Sharp wide open.\n\nPros:\n- cheap", "http://example.com/lens-review/")
	assert.Equal(t, "Great lens. Sharp wide open.", got)
}

func TestCleanMarkerBoundsOutputLength(t *testing.T) {
	c := newTestCleaner()

	body := strings.Repeat("The lens renders beautifully. ", 20) // well past the short threshold
	text := body + "Conclusion\nBuy it now."
	got := c.Clean(text, "")
	assert.LessOrEqual(t, len(got), len(body))
	assert.NotContains(t, got, "Conclusion")
}

func TestCleanPicksEarliestMarker(t *testing.T) {
	c := newTestCleaner()

	body := strings.Repeat("Sharpness is excellent across the frame. ", 10)
	text := body + "Pros:\ngood\nCons:\nbad"
	got := c.Clean(text, "")
	assert.NotContains(t, got, "Pros:")
	assert.NotContains(t, got, "Cons:")
}

func TestCleanMarkersAreCaseInsensitive(t *testing.T) {
	c := newTestCleaner()

	body := strings.Repeat("A fine optic for the price point. ", 12)
	got := c.Clean(body+"GEAR used: camera", "")
	assert.NotContains(t, strings.ToLower(got), "gear used")
}

func TestCleanEmptyInput(t *testing.T) {
	c := newTestCleaner()

	assert.Equal(t, "", c.Clean("", "http://example.com"))
	assert.Equal(t, "", c.Clean("   \n\t  ", "http://example.com"))
}

func TestCleanIdempotentOnCleanText(t *testing.T) {
	c := newTestCleaner()

	text := "The autofocus is quick and quiet.\n\nBokeh is smooth at wide apertures."
	once := c.Clean(text, "")
	twice := c.Clean(once, "")
	assert.Equal(t, once, twice)
}

func TestCleanSeparatorFallbackRescuesEarlyMarker(t *testing.T) {
	c := newTestCleaner()

	// A marker in the opening line would truncate the article to almost
	// nothing; the separator fallback should recover the full first
	// segment instead.
	article := "Purchase the lens here.\n" + strings.Repeat("Real review content follows with plenty of detail. ", 10)
	text := article + "\n\n" + strings.Repeat("-", 30) + "\n\nFooter junk."
	got := c.Clean(text, "")
	assert.Contains(t, got, "Real review content")
	assert.NotContains(t, got, "Footer junk")
}

func TestCleanKeepsShortResultWhenFallbackFails(t *testing.T) {
	c := newTestCleaner()

	got := c.Clean("Tiny intro.\nPros:\nstuff", "")
	assert.Equal(t, "Tiny intro.", got)
}

func TestCleanRemovesLineStartNoise(t *testing.T) {
	c := newTestCleaner()

	text := strings.Join([]string{
		"Follow Me @ Instagram and Facebook",
		"Thanks to Viltrox for sending me this lens for review.",
		"The build quality impresses immediately.",
		"You can visit the product page here.",
		strings.Repeat("More substantive detail about rendering and focus. ", 8),
	}, "\n")
	got := c.Clean(text, "")
	assert.NotContains(t, got, "Follow Me @")
	assert.NotContains(t, got, "Thanks to Viltrox")
	assert.NotContains(t, got, "visit the product page")
	assert.Contains(t, got, "build quality")
}

func TestCleanRemovesDiscountCodes(t *testing.T) {
	c := newTestCleaner()

	body := strings.Repeat("Color rendition is accurate and pleasing. ", 10)
	got := c.Clean(body+"Order now (use code DUSTIN10 for 10% off) today.", "")
	assert.NotContains(t, got, "use code")
}

func TestCleanReplacesImageReferences(t *testing.T) {
	c := newTestCleaner()

	body := strings.Repeat("Flare resistance proved solid in testing. ", 10)
	got := c.Clean(body+"Here’s a look at my test chart: and the results.", "")
	assert.Contains(t, got, "[Test chart description:]")
	assert.NotContains(t, got, "Here’s a look at my test chart:")
}

func TestCleanCollapsesBlankLinesAndSeparators(t *testing.T) {
	c := newTestCleaner()

	body := strings.Repeat("Vignette clears by F2.8 in my copy of the lens. ", 8)
	text := body + "\n\n\n\n\nSecond paragraph." + "\n______\nThird."
	got := c.Clean(text, "")
	assert.NotContains(t, got, "\n\n\n")
	assert.NotContains(t, got, "______")
}

func TestCleanRecordDropsEmptyContent(t *testing.T) {
	c := newTestCleaner()

	_, ok := c.CleanRecord(domain.RawRecord{URL: "http://example.com", ContentText: "  "})
	assert.False(t, ok)
}

func TestCleanRecordDefaultsTitle(t *testing.T) {
	c := newTestCleaner()

	// First line too short to pass for a title.
	review, ok := c.CleanRecord(domain.RawRecord{URL: "", ContentText: "x50\nrest of the body"})
	require.True(t, ok)
	assert.Equal(t, "Unknown Title", review.Title)
}

func TestCleanRecordTitleFromURL(t *testing.T) {
	c := newTestCleaner()

	review, ok := c.CleanRecord(domain.RawRecord{
		URL:         "https://dustinabbott.net/2023/07/viltrox-af-85mm-review/",
		ContentText: strings.Repeat("Substantial article body text here. ", 12),
	})
	require.True(t, ok)
	assert.Equal(t, "Viltrox Af 85mm", review.Title)
	require.NotNil(t, review.Date)
	assert.Equal(t, "2023-07", *review.Date)
}

func TestCleanRecordTitleFromFirstLine(t *testing.T) {
	c := newTestCleaner()

	review, ok := c.CleanRecord(domain.RawRecord{
		ContentText: "A Fast Fifty Worth Owning\n" + strings.Repeat("Body text with useful detail. ", 12),
	})
	require.True(t, ok)
	assert.Equal(t, "A Fast Fifty Worth Owning", review.Title)
	assert.Nil(t, review.Date)
}

func TestCleanRecordKeepsOriginalDate(t *testing.T) {
	c := newTestCleaner()

	date := "2022-01-15"
	review, ok := c.CleanRecord(domain.RawRecord{
		Title:       "Existing Title",
		Date:        &date,
		URL:         "https://dustinabbott.net/2023/07/some-review/",
		ContentText: strings.Repeat("Body text. ", 40),
	})
	require.True(t, ok)
	assert.Equal(t, "Existing Title", review.Title)
	require.NotNil(t, review.Date)
	assert.Equal(t, "2022-01-15", *review.Date)
}
