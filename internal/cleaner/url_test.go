package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTitleFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "slug with review suffix",
			url:  "https://dustinabbott.net/2023/07/viltrox-af-85mm-review/",
			want: "Viltrox Af 85mm",
		},
		{
			name: "underscored slug",
			url:  "https://example.com/sony_fe_50mm_notes/",
			want: "Sony Fe 50mm Notes",
		},
		{
			name: "date tail stripped",
			url:  "https://example.com/canon-rf-35mm-review/2024/01/",
			want: "Canon Rf 35mm",
		},
		{
			name: "empty path",
			url:  "https://example.com/",
			want: "",
		},
		{
			name: "unparseable",
			url:  "://not a url",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTitleFromURL(tt.url))
		})
	}
}

func TestExtractDateFromURL(t *testing.T) {
	assert.Equal(t, "2023-07", ExtractDateFromURL("https://dustinabbott.net/2023/07/some-review/"))
	assert.Equal(t, "2021-03", ExtractDateFromURL("https://example.com/2021/3/post"))
	assert.Equal(t, "", ExtractDateFromURL("https://example.com/no-date-here/"))
}
