package extract

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/unspool/unspool/internal/types"
)

var statusIDRe = regexp.MustCompile(`/status/(\d+)`)

// extractQuoted looks for an embedded quoted post: a nested link-role
// container that itself holds both a text node and an author node. Reply
// context renders author chrome without its own text container, which is
// what keeps it out of this path. The matched container is returned
// alongside the quote so the parent's media pass can exclude its subtree.
func (e *Extractor) extractQuoted(post *goquery.Selection) (*types.QuotedPost, *goquery.Selection) {
	for _, container := range e.cascade.QueryAll(post, quotedContainer) {
		if e.cascade.Query(container, contentContainer) == nil {
			continue
		}
		if e.cascade.Query(container, authorContainer) == nil {
			continue
		}
		if q := e.parseQuoted(container); q != nil {
			return q, container
		}
		return nil, nil
	}
	return nil, nil
}

// parseQuoted runs a reduced extractor pass scoped to the quote container.
// A quote missing its content or author is dropped entirely rather than
// attached half-empty.
func (e *Extractor) parseQuoted(container *goquery.Selection) *types.QuotedPost {
	content, ok := e.extractContent(container)
	if !ok {
		return nil
	}
	author := e.extractAuthor(container)
	if author.Handle == "" && author.DisplayName == "" {
		return nil
	}

	quoted := &types.QuotedPost{
		Author:  author,
		Content: content,
		Media:   e.extractMedia(container, nil),
	}

	// Timestamp stays optional on quotes: only read it when the quote
	// actually renders one, so the "now" fallback never fabricates it.
	if e.cascade.Query(container, timeNode) != nil {
		quoted.Timestamp = e.extractTimestamp(container)
	}

	if link := e.cascade.Query(container, statusLink); link != nil {
		if href, ok := link.Attr("href"); ok {
			if m := statusIDRe.FindStringSubmatch(href); m != nil {
				quoted.ID = m[1]
				quoted.SourceURL = sourceURL(author.Handle, m[1])
			}
		}
	}

	return quoted
}
