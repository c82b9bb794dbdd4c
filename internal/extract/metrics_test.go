package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCompactCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"0", 0},
		{"423", 423},
		{"1,234", 1234},
		{"1.2K", 1200},
		{"1.2k", 1200},
		{"5.7M", 5_700_000},
		{"4B", 4_000_000_000},
		{"  88 ", 88},
		{"-5", 0},
		{"K", 0},
		{"a lot", 0},
		{"12likes", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCompactCount(tt.in))
		})
	}
}

func TestCounterPrefersAriaLabel(t *testing.T) {
	const fixture = `
	<article data-testid="tweet">
	  <button data-testid="like" aria-label="1,999 Likes"><span>2K</span></button>
	</article>`

	e := newTestExtractor(t, "")
	m := e.extractMetrics(firstArticle(t, fixture))
	assert.Equal(t, 1999, m.Likes)
	assert.Equal(t, 0, m.Replies)
	assert.Equal(t, 0, m.Reposts)
}
