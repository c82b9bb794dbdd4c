package scraper

import (
	"context"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/unspool/unspool/internal/extract"
	"github.com/unspool/unspool/internal/types"
)

// Subscription is a handle on a running feed watch. Unsubscribe stops the
// watch and blocks until the browser session is torn down.
type Subscription struct {
	stop chan struct{}
	done chan struct{}
}

// Unsubscribe ends the watch.
func (s *Subscription) Unsubscribe() {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	<-s.done
}

// Done reports watch termination, whether by Unsubscribe or context end.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// WatchFeed opens the home feed and invokes fn with each batch of newly
// rendered post records until the subscription or ctx ends. Extraction is
// cache-assisted, so repeated sweeps over unchanged posts are cheap; fn
// only ever sees a record once.
func (s *Scraper) WatchFeed(ctx context.Context, cookies []*network.Cookie, interval time.Duration, fn func([]types.Record)) (*Subscription, error) {
	browserCtx, cancel, err := s.newSession(ctx, cookies, 24*time.Hour)
	if err != nil {
		return nil, err
	}

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate("https://x.com/home"),
		chromedp.WaitVisible(feedContainer, chromedp.ByQuery),
	); err != nil {
		cancel()
		return nil, err
	}

	sub := &Subscription{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(sub.done)
		defer cancel()

		homeURL, _ := url.Parse("https://x.com/home")
		ext := extract.New(s.log, homeURL).WithClock(s.clock)
		seen := make(map[string]bool)

		for {
			records, err := s.discover(browserCtx, ext)
			if err != nil {
				s.log.Warn("feed sweep failed", "error", err)
			} else {
				var fresh []types.Record
				for _, r := range records {
					if !seen[r.ID] {
						seen[r.ID] = true
						fresh = append(fresh, r)
					}
				}
				if len(fresh) > 0 {
					s.log.Debug("feed produced new posts", "count", len(fresh))
					fn(fresh)
				}
			}

			select {
			case <-sub.stop:
				return
			case <-browserCtx.Done():
				return
			case <-s.clock.After(interval):
			}
		}
	}()

	return sub, nil
}
