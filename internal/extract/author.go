package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/unspool/unspool/internal/types"
)

const (
	minNameLen = 2
	maxNameLen = 49
)

var (
	// A bare counter like "1.2K" or "37" that leaked out of a metrics node.
	bareCounterRe = regexp.MustCompile(`^[\d,.]+\s*[KkMmBb]?$`)
	// Relative-time text like "5m", "2h", "3d".
	relativeTimeRe = regexp.MustCompile(`^\d+\s*[smhd]$`)
	// A handle path segment: /ada_l, /ada_l/status/123.
	handlePathRe = regexp.MustCompile(`^/([A-Za-z0-9_]{1,15})(?:/|$)`)
	handleTextRe = regexp.MustCompile(`^@([A-Za-z0-9_]{1,15})$`)
)

// handle path segments that are site chrome, never accounts.
var reservedPaths = map[string]bool{
	"home": true, "explore": true, "notifications": true, "messages": true,
	"search": true, "settings": true, "i": true, "compose": true,
	"hashtag": true, "intent": true,
}

// extractAuthor resolves display name and handle through independent
// cascades, then falls back to progressively weaker scans. Either field
// failing leaves its zero value; the normalizer decides whether that sinks
// the record.
func (e *Extractor) extractAuthor(post *goquery.Selection) types.Author {
	var author types.Author

	if name, ok := e.extractDisplayName(post); ok {
		author.DisplayName = name
	}
	if handle, ok := e.extractHandle(post); ok {
		author.Handle = handle
	}

	// Last resorts, each independent of the other field's outcome.
	if author.DisplayName == "" {
		if name, ok := e.scanLeavesForName(post); ok {
			author.DisplayName = name
		}
	}
	if author.Handle == "" {
		if handle, ok := e.handleFromPageURL(); ok {
			author.Handle = handle
		}
	}

	if avatar := e.cascade.Query(post, avatarImage); avatar != nil {
		if src, ok := avatar.Attr("src"); ok {
			author.AvatarURL = src
		}
	}

	return author
}

func (e *Extractor) extractDisplayName(post *goquery.Selection) (string, bool) {
	// Strategy 1: dedicated name nodes inside the author container.
	if node := e.cascade.Query(post, displayNameNode); node != nil {
		if name := strings.TrimSpace(node.Text()); validDisplayName(name) {
			return name, true
		}
	}

	// Strategy 2: first acceptable span anywhere in the author container.
	if container := e.cascade.Query(post, authorContainer); container != nil {
		name, found := "", false
		container.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			candidate := strings.TrimSpace(s.Text())
			if validDisplayName(candidate) {
				name, found = candidate, true
				return false
			}
			return true
		})
		if found {
			return name, true
		}
	}

	return "", false
}

func (e *Extractor) extractHandle(post *goquery.Selection) (string, bool) {
	// Strategy 1: profile links in the author container.
	for _, link := range e.cascade.QueryAll(post, handleNode) {
		if href, ok := link.Attr("href"); ok {
			if m := handlePathRe.FindStringSubmatch(href); m != nil && !reservedPaths[strings.ToLower(m[1])] {
				return m[1], true
			}
		}
	}

	// Strategy 2: visible "@handle" text anywhere in the post header.
	handle, found := "", false
	post.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := handleTextRe.FindStringSubmatch(strings.TrimSpace(s.Text())); m != nil {
			handle, found = m[1], true
			return false
		}
		return true
	})
	return handle, found
}

// scanLeavesForName is the last-resort display name pass: the first
// text-bearing leaf whose string fits the length bounds and dodges every
// negative pattern.
func (e *Extractor) scanLeavesForName(post *goquery.Selection) (string, bool) {
	name, found := "", false
	for _, leafSel := range genericTextLeaf {
		post.Find(leafSel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if s.Children().Length() > 0 {
				return true // leaves only
			}
			candidate := strings.TrimSpace(s.Text())
			if validDisplayName(candidate) {
				name, found = candidate, true
				return false
			}
			return true
		})
		if found {
			return name, true
		}
	}
	return "", false
}

// handleFromPageURL derives the handle from the current page address, the
// weakest possible signal: only the page author's own posts resolve
// correctly through it.
func (e *Extractor) handleFromPageURL() (string, bool) {
	if e.pageURL == nil {
		return "", false
	}
	m := handlePathRe.FindStringSubmatch(e.pageURL.Path)
	if m == nil || reservedPaths[strings.ToLower(m[1])] {
		return "", false
	}
	return m[1], true
}

// validDisplayName rejects strings that look like they were scraped out of
// the wrong node: handle markers, counters, relative times, or metadata
// separators.
func validDisplayName(s string) bool {
	if len(s) < minNameLen || len(s) > maxNameLen {
		return false
	}
	if strings.HasPrefix(s, "@") {
		return false
	}
	if strings.ContainsRune(s, '·') {
		return false
	}
	if bareCounterRe.MatchString(s) || relativeTimeRe.MatchString(s) {
		return false
	}
	return true
}
