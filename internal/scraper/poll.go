package scraper

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// stabilizeOptions bounds a wait for a host-side mutation to settle.
type stabilizeOptions struct {
	Interval  time.Duration // polling cadence
	Stability time.Duration // how long the value must hold still
	MaxWait   time.Duration // hard cap on the whole wait
}

func defaultStabilize() stabilizeOptions {
	return stabilizeOptions{
		Interval:  250 * time.Millisecond,
		Stability: 1 * time.Second,
		MaxWait:   8 * time.Second,
	}
}

// waitStable polls measure until its value is unchanged for opts.Stability,
// the context ends, or opts.MaxWait elapses. It returns the last observed
// value; expiry is not an error, the caller proceeds with whatever was
// discovered. Time flows through the injected clock so tests never sleep.
func waitStable(ctx context.Context, clock clockwork.Clock, opts stabilizeOptions, measure func(context.Context) (int, error)) int {
	deadline := clock.Now().Add(opts.MaxWait)

	last := -1
	stableSince := clock.Now()
	for {
		v, err := measure(ctx)
		if err == nil {
			if v != last {
				last = v
				stableSince = clock.Now()
			} else if clock.Since(stableSince) >= opts.Stability {
				return last
			}
		}

		if clock.Now().Add(opts.Interval).After(deadline) {
			return last
		}
		select {
		case <-ctx.Done():
			return last
		case <-clock.After(opts.Interval):
		}
	}
}
