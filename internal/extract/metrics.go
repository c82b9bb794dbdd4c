package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/unspool/unspool/internal/types"
)

var leadingCountRe = regexp.MustCompile(`^([\d,.]+\s*[KkMmBb]?)`)

var magnitudeSuffixes = map[byte]float64{
	'K': 1_000,
	'M': 1_000_000,
	'B': 1_000_000_000,
}

// extractMetrics reads the three engagement counters. Counters that are
// missing or unparsable read as zero; a post with hidden metrics is still
// a perfectly good post.
func (e *Extractor) extractMetrics(post *goquery.Selection) types.Metrics {
	return types.Metrics{
		Replies: e.extractCounter(post, replyCounter),
		Reposts: e.extractCounter(post, repostCounter),
		Likes:   e.extractCounter(post, likeCounter),
	}
}

func (e *Extractor) extractCounter(post *goquery.Selection, patterns []string) int {
	node := e.cascade.Query(post, patterns)
	if node == nil {
		return 0
	}
	// aria-label carries the unambiguous value ("1,234 Likes"); visible
	// text is the compacted fallback ("1.2K").
	if label, ok := node.Attr("aria-label"); ok {
		if m := leadingCountRe.FindStringSubmatch(label); m != nil {
			return ParseCompactCount(m[1])
		}
	}
	return ParseCompactCount(node.Text())
}

// ParseCompactCount converts magnitude-suffixed counter text like "1.2K",
// "3M", or "4B" into an integer. Commas are stripped; anything unparsable
// yields 0, never an error.
func ParseCompactCount(s string) int {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}

	multiplier := 1.0
	last := s[len(s)-1]
	if last >= 'a' && last <= 'z' {
		last -= 'a' - 'A'
	}
	if mult, ok := magnitudeSuffixes[last]; ok {
		multiplier = mult
		s = strings.TrimSpace(s[:len(s)-1])
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return 0
	}
	return int(value * multiplier)
}
