package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unspool/unspool/internal/types"
)

func sampleThread() *types.ThreadData {
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	author := types.Author{Handle: "ada_l", DisplayName: "Ada Lovelace"}
	return &types.ThreadData{
		GroupID: "ada_l-1",
		Records: []types.Record{
			{
				ID: "1", Author: author, Content: "1/2 engines, an introduction",
				Timestamp: at, SourceURL: "https://x.com/ada_l/status/1",
				Metrics: types.Metrics{Likes: 10, Reposts: 2, Replies: 1},
				Media: []types.MediaRef{
					{Kind: types.MediaImage, URL: "https://pbs.twimg.com/media/X?format=jpg&name=orig", AltText: "diagram"},
				},
			},
			{
				ID: "2", Author: author, Content: "2/2 and the conclusion",
				Timestamp: at.Add(time.Minute), SourceURL: "https://x.com/ada_l/status/2",
				Quoted: &types.QuotedPost{
					Author:  types.Author{Handle: "babbage", DisplayName: "Charles Babbage"},
					Content: "the machine is ready",
				},
			},
		},
		DeclaredCount: 2,
		Author:        author,
		StartedAt:     at,
		IsComplete:    true,
	}
}

func TestThreadMarkdown(t *testing.T) {
	out := ThreadMarkdown(sampleThread())

	assert.Contains(t, out, "# Thread by Ada Lovelace (@ada_l)")
	assert.Contains(t, out, "1/2 engines, an introduction")
	assert.Contains(t, out, "![diagram](https://pbs.twimg.com/media/X?format=jpg&name=orig)")
	assert.Contains(t, out, "> **Charles Babbage** @babbage")
	assert.Contains(t, out, "1 replies · 2 reposts · 10 likes")
	assert.NotContains(t, out, "incomplete")
}

func TestThreadMarkdownIncompleteNote(t *testing.T) {
	td := sampleThread()
	td.IsComplete = false
	assert.Contains(t, ThreadMarkdown(td), "appears incomplete")
}

func TestThreadText(t *testing.T) {
	out := ThreadText(sampleThread())
	assert.Contains(t, out, "Thread by Ada Lovelace (@ada_l), 2 post(s)")
	assert.Contains(t, out, "https://x.com/ada_l/status/2")
	assert.Contains(t, out, "quoting Charles Babbage")
}

func TestThreadHTMLEscapes(t *testing.T) {
	td := sampleThread()
	td.Records[0].Content = `<script>alert("x")</script>`

	out, err := ThreadHTML(td)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>alert")
	assert.Contains(t, out, "@ada_l")
}

func TestRenderThreadDispatch(t *testing.T) {
	td := sampleThread()
	for _, f := range []Format{Markdown, Text, HTML} {
		out, err := RenderThread(td, f)
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	}
	_, err := RenderThread(td, Format("pdf"))
	assert.Error(t, err)
}
