package cleaner

import "regexp"

// endMarkers are footer/boilerplate sentinels, checked case-insensitively.
// The earliest match across all of them truncates the article.
var endMarkers = []string{
	"Pros:",
	"Cons:",
	"Conclusion",
	"GEAR USED:",
	"Purchase the",
	"Keywords:",
	"Share on Facebook",
	"Want to support this channel?",
	"Buy DA Merchandise",
	"_________________________________________________________________________",
}

// rule is one pattern-based substitution in the noise pipeline.
type rule struct {
	pattern *regexp.Regexp
	replace string
}

// noiseRules run in order on the truncated text. Order matters: later
// rules may target text only reachable after earlier substitutions.
var noiseRules = []rule{
	// Social media / intro / sponsor lines at line start.
	{regexp.MustCompile(`(?im)^Follow Me @.*(\n|$)`), ""},
	{regexp.MustCompile(`(?im)^Thanks to .*? for sending me.*(\n|$)`), ""},
	{regexp.MustCompile(`(?im)^\*The tests and most of the photos.*(\n|$)`), ""},
	{regexp.MustCompile(`(?im)^You can visit the product page.*(\n|$)`), ""},

	// Lists of cross-referenced reviews.
	{regexp.MustCompile(`(?i)Viltrox AIR Series Reviews:.*\n(Viltrox AF.*(\n|$))+`), ""},
	{regexp.MustCompile(`(?im)^Here’s a look at my reviews of this series.*(\n|$)`), ""},

	// Promotional discount-code parentheticals.
	{regexp.MustCompile(`(?i)\(use code .*? for .*?% off\)`), ""},

	// Image/video references, replaced with placeholders that keep the
	// document readable without the image.
	{regexp.MustCompile(`(?i)watching the video review below\s*or reading on`), "as detailed below"},
	{regexp.MustCompile(`(?i)For example, here is .*? at F\d+(\.\d)? compared to .*?:`), "[Comparison description:]"},
	{regexp.MustCompile(`(?i)But here is something absurd: check out the corner comparison!`), "[Corner comparison description follows.]"},
	{regexp.MustCompile(`Oof!`), ""},
	{regexp.MustCompile(`(?i)Here’s a deep crop from a photo.*?:`), "[Deep crop description:]"},
	{regexp.MustCompile(`(?i)Here’s an image taken at F\d+:`), "[Image description:]"},
	{regexp.MustCompile(`(?i)Here’s what that looks like:`), "[Magnification example description:]"},
	{regexp.MustCompile(`(?i)Here’s a grab from a video clip.*?:`), "[Video frame description:]"},
	{regexp.MustCompile(`(?i)Here’s a look at my test chart:`), "[Test chart description:]"},
	{regexp.MustCompile(`(?i)And here are the crops.*?:`), "[Crop descriptions follow:]"},
	{regexp.MustCompile(`(?i)visit the image gallery here`), "(image gallery link removed)"},

	// Formatting cleanup: residual separator runs, then collapse runs of
	// blank lines to a single blank line.
	{regexp.MustCompile(`_{5,}`), ""},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

// separatorSplit matches a long dash/underscore rule surrounded by blank
// lines, used as a fallback boundary when marker truncation cuts too short.
var separatorSplit = regexp.MustCompile(`\n\n[-_]{20,}\n\n`)
