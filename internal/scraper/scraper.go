// Package scraper drives a live X.com page and feeds snapshots of its
// document tree to the extraction engine. All chromedp work happens here;
// nothing below this package touches the browser.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/jonboulle/clockwork"

	"github.com/unspool/unspool/internal/browser"
	"github.com/unspool/unspool/internal/extract"
	"github.com/unspool/unspool/internal/thread"
	"github.com/unspool/unspool/internal/types"
)

// Page-level wait conditions and affordances. Kept next to the scraper
// because they describe live-page behavior, not field extraction.
const (
	feedContainer = `[data-testid="primaryColumn"]`
	postArticle   = `article[data-testid="tweet"]`
)

// showMoreButtons are the "load more" affordances a conversation page may
// render, most common variant first.
var showMoreButtons = []string{
	`[data-testid="cellInnerDiv"] button[role="button"]:has(span)`,
	`div[role="button"][data-testid="showMoreButton"]`,
}

// countArticlesJS measures how many posts are currently rendered.
const countArticlesJS = `document.querySelectorAll('article[data-testid="tweet"]').length`

// Scraper owns browser configuration for capture sessions.
type Scraper struct {
	headless  bool
	log       *slog.Logger
	clock     clockwork.Clock
	stabilize stabilizeOptions
	window    time.Duration
}

// New creates a scraper. window bounds thread sibling time distance; zero
// means the reconstruction default.
func New(log *slog.Logger, headless bool, window time.Duration) *Scraper {
	return &Scraper{
		headless:  headless,
		log:       log,
		clock:     clockwork.NewRealClock(),
		stabilize: defaultStabilize(),
		window:    window,
	}
}

// CaptureThread opens a post's conversation page and reconstructs the
// thread containing it.
func (s *Scraper) CaptureThread(ctx context.Context, cookies []*network.Cookie, statusURL string) (*types.ThreadData, error) {
	pageURL, pageHandle, seedID, err := parseStatusURL(statusURL)
	if err != nil {
		return nil, err
	}

	browserCtx, cancel, err := s.newSession(ctx, cookies, 3*time.Minute)
	if err != nil {
		return nil, err
	}
	defer cancel()

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL.String()),
		chromedp.WaitVisible(postArticle, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("failed to load post page: %w", err)
	}

	ext := extract.New(s.log, pageURL).WithClock(s.clock)

	// Seed parse first: a non-candidate seed skips the full sweep.
	records, err := s.discover(browserCtx, ext)
	if err != nil {
		return nil, err
	}
	seed, ok := findRecord(records, seedID, pageHandle)
	if !ok {
		return nil, fmt.Errorf("nothing extractable at %s", statusURL)
	}

	rec := thread.NewReconstructorWithWindow(s.log, s.window)
	disc := thread.DiscoverFunc(func(ctx context.Context) ([]types.Record, error) {
		// Surface hidden siblings once, then re-discover.
		s.expandConversation(browserCtx)
		return s.discover(browserCtx, ext)
	})
	return rec.Reconstruct(ctx, seed, disc)
}

// CaptureFeed scrolls the home feed collecting up to count records.
func (s *Scraper) CaptureFeed(ctx context.Context, cookies []*network.Cookie, count int) ([]types.Record, error) {
	browserCtx, cancel, err := s.newSession(ctx, cookies, 5*time.Minute)
	if err != nil {
		return nil, err
	}
	defer cancel()

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate("https://x.com/home"),
		chromedp.WaitVisible(feedContainer, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}

	homeURL, _ := url.Parse("https://x.com/home")
	ext := extract.New(s.log, homeURL).WithClock(s.clock)

	var posts []types.Record
	seen := make(map[string]bool)
	scrollAttempts := 0
	maxScrollAttempts := count/5 + 3 // roughly five posts enter view per scroll

	for len(posts) < count && scrollAttempts < maxScrollAttempts {
		records, err := s.discover(browserCtx, ext)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			if !seen[r.ID] {
				seen[r.ID] = true
				posts = append(posts, r)
			}
		}

		if err := chromedp.Run(browserCtx,
			chromedp.Evaluate(`window.scrollBy(0, window.innerHeight)`, nil),
		); err != nil {
			return nil, err
		}
		s.clock.Sleep(time.Duration(500+scrollAttempts*100) * time.Millisecond)
		scrollAttempts++
	}

	if len(posts) > count {
		posts = posts[:count]
	}
	return posts, nil
}

// discover snapshots the rendered document and extracts every post in it.
// Individual extraction failures drop the candidate, never the sweep.
func (s *Scraper) discover(browserCtx context.Context, ext *extract.Extractor) ([]types.Record, error) {
	doc, err := s.snapshot(browserCtx)
	if err != nil {
		return nil, err
	}
	return ext.ParseDocument(doc), nil
}

// snapshot captures the live tree as parsed HTML.
func (s *Scraper) snapshot(browserCtx context.Context) (*goquery.Document, error) {
	var html string
	if err := chromedp.Run(browserCtx,
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("failed to capture document: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse captured document: %w", err)
	}
	return doc, nil
}

// expandConversation clicks the first visible "show more" affordance, if
// any, then waits for the rendered post count to hold still. Best effort
// throughout: a conversation that refuses to expand is still worth
// extracting.
func (s *Scraper) expandConversation(browserCtx context.Context) {
	clicked := false
	for _, sel := range showMoreButtons {
		clickCtx, clickCancel := context.WithTimeout(browserCtx, 2*time.Second)
		err := chromedp.Run(clickCtx,
			chromedp.Click(sel, chromedp.ByQuery, chromedp.NodeVisible),
		)
		clickCancel()
		if err == nil {
			clicked = true
			break
		}
	}
	if !clicked {
		return
	}

	n := waitStable(browserCtx, s.clock, s.stabilize, func(ctx context.Context) (int, error) {
		var count int
		if err := chromedp.Run(ctx, chromedp.Evaluate(countArticlesJS, &count)); err != nil {
			return 0, err
		}
		return count, nil
	})
	s.log.Debug("conversation expanded", "rendered_posts", n)
}

// newSession builds a browser context with the shared stealth options and
// injected cookies.
func (s *Scraper) newSession(ctx context.Context, cookies []*network.Cookie, timeout time.Duration) (context.Context, context.CancelFunc, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, browser.Options(s.headless)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	browserCtx, timeoutCancel := context.WithTimeout(browserCtx, timeout)

	cancel := func() {
		timeoutCancel()
		browserCancel()
		allocCancel()
	}

	if err := injectCookies(browserCtx, cookies); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to inject cookies: %w", err)
	}
	return browserCtx, cancel, nil
}

// injectCookies sets session cookies before navigation.
func injectCookies(ctx context.Context, cookies []*network.Cookie) error {
	return chromedp.Run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			for _, c := range cookies {
				err := network.SetCookie(c.Name, c.Value).
					WithDomain(c.Domain).
					WithPath(c.Path).
					WithSecure(c.Secure).
					WithHTTPOnly(c.HTTPOnly).
					WithSameSite(c.SameSite).
					Do(ctx)
				if err != nil {
					return err
				}
			}
			return nil
		}),
	)
}

func parseStatusURL(raw string) (u *url.URL, handle, id string, err error) {
	u, err = url.Parse(raw)
	if err != nil {
		return nil, "", "", fmt.Errorf("invalid post URL %q: %w", raw, err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 3 || parts[1] != "status" {
		return nil, "", "", fmt.Errorf("not a post URL: %s", raw)
	}
	return u, parts[0], parts[2], nil
}

func findRecord(records []types.Record, id, handle string) (types.Record, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	// The permalink post is always rendered first; fall back to it when
	// the URL id was rewritten by a redirect. The fallback must still be
	// the page author's post, otherwise a permalink that failed
	// extraction would seed the thread from an arbitrary reply.
	if len(records) > 0 && strings.EqualFold(records[0].Author.Handle, handle) {
		return records[0], true
	}
	return types.Record{}, false
}
