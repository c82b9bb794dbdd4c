// Package extract turns X.com post markup into normalized records. Every
// field is resolved through a selector cascade with layered fallback
// strategies, because the markup offers no stable schema to read from.
package extract

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonboulle/clockwork"

	"github.com/unspool/unspool/internal/types"
	"github.com/unspool/unspool/internal/xdom"
)

// Extractor parses post nodes from one page view. It owns the record
// cache for that view; Reset clears it on navigation.
type Extractor struct {
	cascade *xdom.Cascade
	cache   *Cache
	log     *slog.Logger
	clock   clockwork.Clock
	pageURL *url.URL

	// passes counts full (uncached) extraction runs.
	passes int
}

// New creates an Extractor for the page at pageURL. pageURL may be nil;
// it only feeds the weakest author fallback and conversation grouping.
func New(log *slog.Logger, pageURL *url.URL) *Extractor {
	return &Extractor{
		cascade: xdom.New(log),
		cache:   NewCache(),
		log:     log,
		clock:   clockwork.NewRealClock(),
		pageURL: pageURL,
	}
}

// WithClock replaces the extractor's time source. Tests inject a fake
// clock so relative-time fallbacks are deterministic.
func (e *Extractor) WithClock(clock clockwork.Clock) *Extractor {
	e.clock = clock
	return e
}

// ParseDocument extracts every post currently present in the snapshot.
// A post that fails extraction is dropped and logged, never fatal to its
// neighbors.
func (e *Extractor) ParseDocument(doc *goquery.Document) []types.Record {
	var records []types.Record
	for _, post := range e.cascade.QueryAll(doc.Selection, postArticle) {
		if rec := e.ParseRecord(post); rec != nil {
			records = append(records, *rec)
		}
	}
	return records
}

// ParseRecord extracts one post node into a Record, or nil when required
// fields are unresolvable. The cache short-circuits repeat work: a node
// whose ID was already extracted this page view returns the cached record
// without re-running the field extractors.
func (e *Extractor) ParseRecord(post *goquery.Selection) *types.Record {
	id, ok := e.extractID(post)
	if !ok {
		e.log.Warn("post node has no resolvable id, skipping")
		return nil
	}
	if cached := e.cache.Get(id); cached != nil {
		e.log.Debug("record cache hit", "id", id)
		return cached
	}

	e.passes++

	content, contentOK := e.extractContent(post)
	quoted, quotedSel := e.extractQuoted(post)
	raw := rawFields{
		id:        id,
		author:    e.extractAuthor(post),
		content:   content,
		contentOK: contentOK,
		timestamp: e.extractTimestamp(post),
		metrics:   e.extractMetrics(post),
		media:     e.extractMedia(post, quotedSel),
		quoted:    quoted,
		groupID:   e.conversationGroupID(),
	}

	rec := e.normalize(raw)
	if rec == nil {
		return nil
	}
	e.cache.Set(id, rec)
	return rec
}

// Reset clears the record cache. Call on navigation; stale entries are
// harmless but a new page means new identities.
func (e *Extractor) Reset() {
	e.cache.Clear()
}

// extractID resolves the post's globally unique status ID from its
// permalink.
func (e *Extractor) extractID(post *goquery.Selection) (string, bool) {
	for _, link := range e.cascade.QueryAll(post, statusLink) {
		if href, ok := link.Attr("href"); ok {
			if m := statusIDRe.FindStringSubmatch(href); m != nil {
				return m[1], true
			}
		}
	}
	return "", false
}

// conversationGroupID derives an explicit thread group ID when the page
// being parsed is a conversation permalink: every post rendered on
// /user/status/12345 shares that conversation.
func (e *Extractor) conversationGroupID() string {
	if e.pageURL == nil {
		return ""
	}
	m := statusIDRe.FindStringSubmatch(e.pageURL.Path)
	if m == nil {
		return ""
	}
	parts := strings.Split(strings.Trim(e.pageURL.Path, "/"), "/")
	if len(parts) < 1 {
		return ""
	}
	return parts[0] + "-" + m[1]
}
