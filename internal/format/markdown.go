package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/unspool/unspool/internal/types"
)

const timeLayout = "Jan 2, 2006 15:04 MST"

// ThreadMarkdown renders a thread as a single markdown document: header,
// posts in order, media links, and a completeness note when posts are
// known to be missing.
func ThreadMarkdown(td *types.ThreadData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Thread by %s (@%s)\n\n", td.Author.DisplayName, td.Author.Handle)
	fmt.Fprintf(&b, "%d post(s), started %s\n\n", len(td.Records), formatTime(td.StartedAt))
	if !td.IsComplete {
		b.WriteString("> Note: this thread appears incomplete; some posts could not be found.\n\n")
	}

	for i, rec := range td.Records {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		writeRecordMarkdown(&b, rec)
	}

	return b.String()
}

// RecordsMarkdown renders records as standalone markdown sections.
func RecordsMarkdown(records []types.Record) string {
	var b strings.Builder
	for i, rec := range records {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		writeRecordMarkdown(&b, rec)
	}
	return b.String()
}

func writeRecordMarkdown(b *strings.Builder, rec types.Record) {
	fmt.Fprintf(b, "**%s** [@%s](https://x.com/%s) · [%s](%s)\n\n",
		rec.Author.DisplayName, rec.Author.Handle, rec.Author.Handle,
		formatTime(rec.Timestamp), rec.SourceURL)

	if rec.Content != "" {
		b.WriteString(rec.Content)
		b.WriteString("\n")
	}

	for _, m := range rec.Media {
		switch m.Kind {
		case types.MediaImage:
			alt := m.AltText
			if alt == "" {
				alt = "image"
			}
			fmt.Fprintf(b, "\n![%s](%s)\n", alt, m.URL)
		default:
			fmt.Fprintf(b, "\n[%s](%s)\n", m.Kind, m.URL)
		}
	}

	if rec.Quoted != nil {
		b.WriteString("\n")
		fmt.Fprintf(b, "> **%s** @%s\n", rec.Quoted.Author.DisplayName, rec.Quoted.Author.Handle)
		for _, line := range strings.Split(rec.Quoted.Content, "\n") {
			fmt.Fprintf(b, "> %s\n", line)
		}
	}

	fmt.Fprintf(b, "\n%d replies · %d reposts · %d likes\n",
		rec.Metrics.Replies, rec.Metrics.Reposts, rec.Metrics.Likes)
}

// ThreadText renders a thread as plain text.
func ThreadText(td *types.ThreadData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thread by %s (@%s), %d post(s), started %s\n",
		td.Author.DisplayName, td.Author.Handle, len(td.Records), formatTime(td.StartedAt))
	if !td.IsComplete {
		b.WriteString("[incomplete: some posts could not be found]\n")
	}
	b.WriteString("\n")
	b.WriteString(RecordsText(td.Records))
	return b.String()
}

// RecordsText renders records as plain text blocks.
func RecordsText(records []types.Record) string {
	var b strings.Builder
	for i, rec := range records {
		if i > 0 {
			b.WriteString("\n----\n\n")
		}
		fmt.Fprintf(&b, "%s (@%s) · %s\n", rec.Author.DisplayName, rec.Author.Handle, formatTime(rec.Timestamp))
		if rec.Content != "" {
			b.WriteString(rec.Content)
			b.WriteString("\n")
		}
		for _, m := range rec.Media {
			fmt.Fprintf(&b, "[%s] %s\n", m.Kind, m.URL)
		}
		if rec.Quoted != nil {
			fmt.Fprintf(&b, "| quoting %s (@%s): %s\n",
				rec.Quoted.Author.DisplayName, rec.Quoted.Author.Handle, rec.Quoted.Content)
		}
		fmt.Fprintf(&b, "%s\n", rec.SourceURL)
	}
	return b.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "unknown time"
	}
	return t.Format(timeLayout)
}
