// Package thread decides whether posts belong to multi-post sequences and
// rebuilds those sequences from independently discovered records. All of it
// operates on plain data so it can be tested without a live page.
package thread

import (
	"regexp"
	"strings"
)

// Positional numbering patterns. A post that declares "2/5" (or a bracketed
// or thread-emoji-prefixed variant) is announcing its place in a sequence.
var positionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*🧵?\s*[(\[]?(\d{1,3})\s*/\s*(\d{1,3})[)\]]?`),
	regexp.MustCompile(`[(\[](\d{1,3})\s*/\s*(\d{1,3})[)\]]\s*$`),
	regexp.MustCompile(`(\d{1,3})\s*/\s*(\d{1,3})\s*$`),
	regexp.MustCompile(`🧵\s*(\d{1,3})\s*/\s*(\d{1,3})`),
	regexp.MustCompile(`\b(\d{1,3})\s*/\s*(\d{1,3})\b`),
}

// leadingOrdinal matches "3. " at the start of a post: a position with no
// declared total.
var leadingOrdinal = regexp.MustCompile(`^\s*(\d{1,2})\.\s+\S`)

// continuityMarkers are language-specific phrases signaling "this post
// continues a previous one". Matched case-insensitively as substrings.
// Deliberately permissive: reconstruction re-validates membership with
// stronger signals, so false positives here are cheap.
var continuityMarkers = []string{
	"show this thread",
	"continued",
	"cont'd",
	"(cont)",
	"a thread",
	"furthermore",
	"moreover",
	"to continue",
	// Japanese
	"続き",
	"つづく",
	"また",
	"スレッド",
	// Korean
	"그리고",
	"이어서",
	"계속",
	// Spanish
	"además",
	"hilo",
	// French
	"de plus",
	"suite",
	// German
	"außerdem",
	"weiter im thread",
	// Russian
	"продолжение",
}

// IsCandidate reports whether content looks like part of a multi-post
// sequence: explicit positional numbering, a thread emoji, a leading
// ordinal, or a continuity marker phrase.
func IsCandidate(content string) bool {
	if content == "" {
		return false
	}
	if pos, _, ok := ParsePosition(content); ok && pos > 0 {
		return true
	}
	if strings.Contains(content, "🧵") {
		return true
	}
	lower := strings.ToLower(content)
	for _, marker := range continuityMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// HasContinuityMarker reports whether content contains one of the
// multilingual continuity phrases, independent of numbering.
func HasContinuityMarker(content string) bool {
	lower := strings.ToLower(content)
	for _, marker := range continuityMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// ParsePosition extracts explicit positional numbering from content.
// "2/5" yields (2, 5, true); a leading "3. " yields (3, 0, true); content
// with no numbering yields (0, 0, false). A position of zero or a position
// beyond a declared total is rejected as noise.
func ParsePosition(content string) (pos, total int, ok bool) {
	for _, re := range positionPatterns {
		m := re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		p := atoiSafe(m[1])
		t := atoiSafe(m[2])
		if p == 0 || t == 0 || p > t {
			continue
		}
		return p, t, true
	}
	if m := leadingOrdinal.FindStringSubmatch(content); m != nil {
		if p := atoiSafe(m[1]); p > 0 {
			return p, 0, true
		}
	}
	return 0, 0, false
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
		if n > 999 {
			return 0
		}
	}
	return n
}
