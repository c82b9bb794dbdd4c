package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

var relativeTextRe = regexp.MustCompile(`^(\d+)\s*([smhd])$`)

// extractTimestamp resolves a post's time. Machine-readable datetime first,
// then the human-readable hover title through a tolerant parser, then the
// visible relative-time text, and finally "now". Never unset, never an
// error.
func (e *Extractor) extractTimestamp(post *goquery.Selection) time.Time {
	node := e.cascade.Query(post, timeNode)
	if node == nil {
		return e.now()
	}

	if dt, ok := node.Attr("datetime"); ok {
		if ts, err := time.Parse(time.RFC3339, dt); err == nil {
			return ts
		}
	}

	// Human-readable attribute, locale permitting ("8:15 PM · Mar 14, 2026").
	for _, attr := range []string{"title", "aria-label"} {
		if s, ok := node.Attr(attr); ok && s != "" {
			if ts, err := dateparse.ParseAny(cleanTimeText(s)); err == nil {
				return ts
			}
		}
	}

	if ts, ok := e.parseRelativeTime(node.Text()); ok {
		return ts
	}

	return e.now()
}

// parseRelativeTime handles the visible "5m" / "2h" / "3d" labels relative
// to parse time.
func (e *Extractor) parseRelativeTime(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	if strings.EqualFold(text, "now") {
		return e.now(), true
	}
	m := relativeTextRe.FindStringSubmatch(text)
	if m == nil {
		// Older posts show "Mar 14" or "Mar 14, 2025" as visible text.
		if ts, err := dateparse.ParseAny(text); err == nil {
			return ts, true
		}
		return time.Time{}, false
	}
	n := 0
	for _, r := range m[1] {
		n = n*10 + int(r-'0')
	}
	var unit time.Duration
	switch m[2] {
	case "s":
		unit = time.Second
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	}
	return e.now().Add(-time.Duration(n) * unit), true
}

// cleanTimeText strips the metadata separator X wedges between clock and
// date in hover titles.
func cleanTimeText(s string) string {
	s = strings.ReplaceAll(s, "·", " ")
	return strings.Join(strings.Fields(s), " ")
}

func (e *Extractor) now() time.Time {
	return e.clock.Now()
}
