package extract

import (
	"fmt"
	"time"

	"github.com/unspool/unspool/internal/thread"
	"github.com/unspool/unspool/internal/types"
)

// rawFields carries every field extractor's output into normalization.
// Absence is explicit: empty strings and the contentOK flag, never a
// half-built Record.
type rawFields struct {
	id        string
	author    types.Author
	content   string
	contentOK bool
	timestamp time.Time
	metrics   types.Metrics
	media     []types.MediaRef
	quoted    *types.QuotedPost
	groupID   string
}

// normalize assembles a validated Record, or nil when any required field
// is unresolvable. ID, author handle, author display name, and content
// must all be present; content may be the empty string but the container
// must have resolved.
func (e *Extractor) normalize(raw rawFields) *types.Record {
	var missing []string
	if raw.id == "" {
		missing = append(missing, "id")
	}
	if raw.author.Handle == "" {
		missing = append(missing, "author.handle")
	}
	if raw.author.DisplayName == "" {
		missing = append(missing, "author.display_name")
	}
	if !raw.contentOK {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		e.log.Warn("dropping unextractable post", "id", raw.id, "missing", missing)
		return nil
	}

	rec := &types.Record{
		ID:            raw.id,
		Author:        raw.author,
		Content:       raw.content,
		Timestamp:     raw.timestamp,
		Metrics:       raw.metrics,
		Media:         raw.media,
		ThreadGroupID: raw.groupID,
		SourceURL:     sourceURL(raw.author.Handle, raw.id),
		Quoted:        raw.quoted,
	}

	rec.IsThreadCandidate = thread.IsCandidate(rec.Content)
	if pos, total, ok := thread.ParsePosition(rec.Content); ok {
		rec.ThreadPosition = pos
		rec.ThreadTotal = total
	}

	return rec
}

// sourceURL builds a post's canonical address from handle and ID.
func sourceURL(handle, id string) string {
	return fmt.Sprintf("https://x.com/%s/status/%s", handle, id)
}
