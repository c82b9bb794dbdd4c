package scraper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

// runWaitStable drives waitStable on a fake clock, advancing it whenever
// the waiter blocks, and returns the final value.
func runWaitStable(t *testing.T, opts stabilizeOptions, measure func(context.Context) (int, error)) int {
	t.Helper()
	fc := clockwork.NewFakeClock()

	var (
		wg  sync.WaitGroup
		got int
	)
	wg.Add(1)
	done := make(chan struct{})
	go func() {
		defer wg.Done()
		defer close(done)
		got = waitStable(context.Background(), fc, opts, measure)
	}()

	// Advance past the poll interval whenever the waiter sleeps; stop
	// driving the clock once the waiter returns.
	driveCtx, stopDriving := context.WithCancel(context.Background())
	go func() {
		<-done
		stopDriving()
	}()
	for {
		if err := fc.BlockUntilContext(driveCtx, 1); err != nil {
			break
		}
		fc.Advance(opts.Interval)
	}

	wg.Wait()
	return got
}

func TestWaitStableReturnsOnceValueSettles(t *testing.T) {
	opts := stabilizeOptions{
		Interval:  100 * time.Millisecond,
		Stability: 300 * time.Millisecond,
		MaxWait:   10 * time.Second,
	}

	// Grows for three polls, then holds at 12.
	seq := []int{4, 8, 12, 12, 12, 12, 12, 12, 12}
	i := 0
	got := runWaitStable(t, opts, func(context.Context) (int, error) {
		v := seq[min(i, len(seq)-1)]
		i++
		return v, nil
	})
	assert.Equal(t, 12, got)
}

func TestWaitStableTimeoutReturnsLastObserved(t *testing.T) {
	opts := stabilizeOptions{
		Interval:  100 * time.Millisecond,
		Stability: 5 * time.Second,
		MaxWait:   time.Second,
	}

	// Never settles: grows every poll. Expiry must still hand back the
	// most recent count rather than failing.
	n := 0
	got := runWaitStable(t, opts, func(context.Context) (int, error) {
		n++
		return n, nil
	})
	assert.Equal(t, n, got)
}

func TestWaitStableToleratesMeasureErrors(t *testing.T) {
	opts := stabilizeOptions{
		Interval:  100 * time.Millisecond,
		Stability: 200 * time.Millisecond,
		MaxWait:   10 * time.Second,
	}

	i := 0
	got := runWaitStable(t, opts, func(context.Context) (int, error) {
		i++
		if i == 2 {
			return 0, errors.New("evaluate failed")
		}
		return 7, nil
	})
	assert.Equal(t, 7, got)
}

func TestWaitStableRespectsContextCancel(t *testing.T) {
	opts := stabilizeOptions{
		Interval:  100 * time.Millisecond,
		Stability: time.Minute,
		MaxWait:   time.Hour,
	}

	fc := clockwork.NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan int, 1)
	go func() {
		done <- waitStable(ctx, fc, opts, func(context.Context) (int, error) {
			return 3, nil
		})
	}()

	fc.BlockUntil(1)
	cancel()
	assert.Equal(t, 3, <-done)
}
