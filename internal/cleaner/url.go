package cleaner

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	dateTailRe = regexp.MustCompile(`/\d{4}/\d{2}/?$`)
	urlDateRe  = regexp.MustCompile(`/(\d{4})/(\d{1,2})(/|$)`)

	// Category-like suffixes that add nothing to a title.
	commonTitleEndings = []string{" Review", " G Review", " Air Review"}
)

// ExtractTitleFromURL derives a title from the URL slug: strips any
// /YYYY/MM/ tail, spaces out hyphens and underscores, title-cases the
// words and drops common category endings. Returns "" when the URL
// yields nothing usable.
func ExtractTitleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	p := dateTailRe.ReplaceAllString(u.Path, "")
	slug := path.Base(strings.Trim(p, "/"))
	if slug == "" || slug == "." {
		return ""
	}
	title := titleCase(strings.NewReplacer("-", " ", "_", " ").Replace(slug))
	for _, ending := range commonTitleEndings {
		if strings.HasSuffix(strings.ToLower(title), strings.ToLower(ending)) {
			title = title[:len(title)-len(ending)]
			break
		}
	}
	return strings.TrimSpace(title)
}

// ExtractDateFromURL pulls a YYYY-MM date out of URL paths like
// /2023/07/some-review/. Returns "" when no date segment is present.
func ExtractDateFromURL(rawURL string) string {
	m := urlDateRe.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	month, err := strconv.Atoi(m[2])
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s-%02d", m[1], month)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
