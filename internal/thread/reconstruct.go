package thread

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/unspool/unspool/internal/types"
)

// DefaultWindow bounds how far a sibling post may sit from the seed in
// time. Authors post threads in one sitting; a day of slack covers long
// ones without pulling in unrelated posts that happen to carry numbering.
const DefaultWindow = 24 * time.Hour

// maxPositionGap is how far apart explicit positions may be for two posts
// to count as neighbors when no stronger signal links them.
const maxPositionGap = 2

// Discoverer supplies every currently discoverable post record. The live
// implementation snapshots the rendered page; tests supply a fixed slice.
type Discoverer interface {
	Discover(ctx context.Context) ([]types.Record, error)
}

// DiscoverFunc adapts a function to the Discoverer interface.
type DiscoverFunc func(ctx context.Context) ([]types.Record, error)

// Discover implements Discoverer.
func (f DiscoverFunc) Discover(ctx context.Context) ([]types.Record, error) {
	return f(ctx)
}

// Reconstructor groups, orders, and completeness-checks thread records.
type Reconstructor struct {
	log    *slog.Logger
	window time.Duration
}

// NewReconstructor creates a Reconstructor with the default time window.
func NewReconstructor(log *slog.Logger) *Reconstructor {
	return &Reconstructor{log: log, window: DefaultWindow}
}

// NewReconstructorWithWindow creates a Reconstructor with a custom sibling
// time window.
func NewReconstructorWithWindow(log *slog.Logger, window time.Duration) *Reconstructor {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Reconstructor{log: log, window: window}
}

// Reconstruct builds the thread containing seed. When the seed shows no
// thread signal at all the discoverer is never consulted and a single-post
// thread is returned. Otherwise every discoverable record is filtered by
// authorship, time proximity, and thread signals, ordered, and assessed
// for completeness.
func (r *Reconstructor) Reconstruct(ctx context.Context, seed types.Record, disc Discoverer) (*types.ThreadData, error) {
	groupID := GroupID(seed)

	if !seed.IsThreadCandidate {
		return &types.ThreadData{
			GroupID:       groupID,
			Records:       []types.Record{seed},
			DeclaredCount: 1,
			Author:        seed.Author,
			StartedAt:     seed.Timestamp,
			IsComplete:    true,
		}, nil
	}

	candidates, err := disc.Discover(ctx)
	if err != nil {
		// A failed sweep degrades to a seed-only thread rather than
		// aborting: something extractable is better than nothing.
		r.log.Warn("thread discovery failed, keeping seed only", "seed", seed.ID, "error", err)
		candidates = nil
	}

	records := []types.Record{seed}
	seen := map[string]bool{seed.ID: true}
	for _, cand := range candidates {
		if seen[cand.ID] {
			continue
		}
		if !r.accepts(seed, cand) {
			continue
		}
		seen[cand.ID] = true
		records = append(records, cand)
	}

	orderRecords(records)

	td := &types.ThreadData{
		GroupID:       groupID,
		Records:       records,
		DeclaredCount: len(records),
		Author:        seed.Author,
		StartedAt:     earliestTimestamp(records),
		IsComplete:    assessComplete(records),
	}
	r.log.Debug("thread reconstructed",
		"group", td.GroupID, "records", len(td.Records), "complete", td.IsComplete)
	return td, nil
}

// accepts decides thread membership for one discovered record relative to
// the seed. Authorship and time proximity are hard requirements; beyond
// those, at least one linking signal must hold.
func (r *Reconstructor) accepts(seed, cand types.Record) bool {
	if cand.Author.Handle == "" || cand.Author.Handle != seed.Author.Handle {
		return false
	}
	if !cand.IsThreadCandidate {
		return false
	}
	delta := cand.Timestamp.Sub(seed.Timestamp)
	if delta < 0 {
		delta = -delta
	}
	if delta > r.window {
		return false
	}

	// Linking signals, strongest first.
	if seed.ThreadGroupID != "" && cand.ThreadGroupID == seed.ThreadGroupID {
		return true
	}
	if seed.HasPosition() && cand.HasPosition() {
		gap := cand.ThreadPosition - seed.ThreadPosition
		if gap < 0 {
			gap = -gap
		}
		if gap <= maxPositionGap {
			return true
		}
	}
	return HasContinuityMarker(cand.Content)
}

// orderRecords sorts by explicit position when every record declares one,
// otherwise by timestamp for the whole group. Mixing the two orderings
// within one group would silently interleave numbered and unnumbered
// posts, so partial numbering falls back wholesale.
func orderRecords(records []types.Record) {
	all := true
	for _, rec := range records {
		if !rec.HasPosition() {
			all = false
			break
		}
	}
	if all {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].ThreadPosition < records[j].ThreadPosition
		})
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
}

// assessComplete checks declared numbering for gaps. With fewer than two
// numbered records there is nothing to refute completeness, so the thread
// is reported complete by default.
func assessComplete(records []types.Record) bool {
	var positions []int
	for _, rec := range records {
		if rec.HasPosition() {
			positions = append(positions, rec.ThreadPosition)
		}
	}
	if len(positions) < 2 {
		return true
	}
	sort.Ints(positions)
	if positions[0] != 1 {
		return false
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] != positions[i-1]+1 {
			return false
		}
	}
	return true
}

func earliestTimestamp(records []types.Record) time.Time {
	earliest := records[0].Timestamp
	for _, rec := range records[1:] {
		if rec.Timestamp.Before(earliest) {
			earliest = rec.Timestamp
		}
	}
	return earliest
}

// GroupID derives a stable thread group identifier from the seed post.
func GroupID(seed types.Record) string {
	return fmt.Sprintf("%s-%s", seed.Author.Handle, seed.ID)
}
