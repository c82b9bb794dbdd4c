// Package xdom implements the structural query cascade: an ordered list of
// CSS selectors tried against a document snapshot until one matches. The
// cascade is what isolates the field extractors from X.com markup churn.
package xdom

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Cascade resolves selector pattern lists against goquery selections.
// Pattern lists must be ordered most-specific first: the first selector
// yielding a non-empty result wins and later selectors are never consulted.
type Cascade struct {
	log *slog.Logger
}

// New creates a Cascade that logs skipped patterns to log.
func New(log *slog.Logger) *Cascade {
	return &Cascade{log: log}
}

// Query returns the first node matched by the first selector in patterns
// that matches anything under root, or nil if every selector is exhausted.
// A selector that fails to compile is skipped, never fatal.
func (c *Cascade) Query(root *goquery.Selection, patterns []string) *goquery.Selection {
	for _, p := range patterns {
		m, err := cascadia.Compile(p)
		if err != nil {
			c.log.Warn("skipping unsupported selector", "selector", p, "error", err)
			continue
		}
		if sel := root.FindMatcher(m); sel.Length() > 0 {
			return sel.First()
		}
	}
	return nil
}

// QueryAll returns every node matched by the first selector in patterns
// that matches anything under root. Exhausting the list yields an empty
// slice, never an error.
func (c *Cascade) QueryAll(root *goquery.Selection, patterns []string) []*goquery.Selection {
	for _, p := range patterns {
		m, err := cascadia.Compile(p)
		if err != nil {
			c.log.Warn("skipping unsupported selector", "selector", p, "error", err)
			continue
		}
		sel := root.FindMatcher(m)
		if sel.Length() == 0 {
			continue
		}
		out := make([]*goquery.Selection, 0, sel.Length())
		sel.Each(func(_ int, s *goquery.Selection) {
			out = append(out, s)
		})
		return out
	}
	return nil
}
