package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quotedFixture is a post quoting another post: the quote renders as a
// nested link-role container with its own author block and text node.
const quotedFixture = `
<article data-testid="tweet">
  <div data-testid="User-Name">
    <div dir="ltr"><span><span>Ada Lovelace</span></span></div>
    <a href="/ada_l" role="link"><span>@ada_l</span></a>
    <a href="/ada_l/status/1900001"><time datetime="2026-03-14T09:00:00.000Z">2h</time></a>
  </div>
  <div data-testid="tweetText" lang="en" dir="auto">look at this result</div>
  <div data-testid="tweetPhoto"><img src="https://pbs.twimg.com/media/Outer?name=small" alt="my chart"></div>
  <div role="link" tabindex="0">
    <div data-testid="User-Name">
      <div dir="ltr"><span><span>Charles Babbage</span></span></div>
      <a href="/babbage" role="link"><span>@babbage</span></a>
      <a href="/babbage/status/1999990"><time datetime="2026-03-13T18:00:00.000Z">1d</time></a>
    </div>
    <div data-testid="tweetText" lang="en" dir="auto">the machine is ready</div>
    <div data-testid="tweetPhoto"><img src="https://pbs.twimg.com/media/Inner?name=small" alt="their chart"></div>
  </div>
</article>`

func TestParseRecordWithQuotedPost(t *testing.T) {
	e := newTestExtractor(t, "")
	rec := e.ParseRecord(firstArticle(t, quotedFixture))
	require.NotNil(t, rec)

	// The outer post's own fields come from outside the quote container.
	assert.Equal(t, "1900001", rec.ID)
	assert.Equal(t, "ada_l", rec.Author.Handle)
	assert.Equal(t, "look at this result", rec.Content)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), rec.Timestamp)

	q := rec.Quoted
	require.NotNil(t, q)
	assert.Equal(t, "1999990", q.ID)
	assert.Equal(t, "babbage", q.Author.Handle)
	assert.Equal(t, "Charles Babbage", q.Author.DisplayName)
	assert.Equal(t, "the machine is ready", q.Content)
	assert.Equal(t, time.Date(2026, 3, 13, 18, 0, 0, 0, time.UTC), q.Timestamp)
	assert.Equal(t, "https://x.com/babbage/status/1999990", q.SourceURL)
}

func TestQuotedMediaStaysOutOfParentMedia(t *testing.T) {
	e := newTestExtractor(t, "")
	rec := e.ParseRecord(firstArticle(t, quotedFixture))
	require.NotNil(t, rec)
	require.NotNil(t, rec.Quoted)

	require.Len(t, rec.Media, 1)
	assert.Equal(t, "https://pbs.twimg.com/media/Outer?format=jpg&name=orig", rec.Media[0].URL)

	require.Len(t, rec.Quoted.Media, 1)
	assert.Equal(t, "https://pbs.twimg.com/media/Inner?format=jpg&name=orig", rec.Quoted.Media[0].URL)
}

func TestReplyContextIsNotAQuote(t *testing.T) {
	// Reply context renders author chrome inside a link-role container
	// but carries no text node of its own; it must not be mistaken for
	// an embedded quote.
	const fixture = `
	<article data-testid="tweet">
	  <div data-testid="User-Name">
	    <div dir="ltr"><span><span>Ada Lovelace</span></span></div>
	    <a href="/ada_l" role="link"><span>@ada_l</span></a>
	    <a href="/ada_l/status/1900002"><time datetime="2026-03-14T09:05:00.000Z">2h</time></a>
	  </div>
	  <div data-testid="tweetText" lang="en" dir="auto">replying to the post above</div>
	  <div role="link" tabindex="0">
	    <div data-testid="User-Name">
	      <div dir="ltr"><span><span>Charles Babbage</span></span></div>
	      <a href="/babbage" role="link"><span>@babbage</span></a>
	    </div>
	  </div>
	</article>`

	e := newTestExtractor(t, "")
	rec := e.ParseRecord(firstArticle(t, fixture))
	require.NotNil(t, rec)
	assert.Nil(t, rec.Quoted)
	assert.Equal(t, "ada_l", rec.Author.Handle)
	assert.Equal(t, "replying to the post above", rec.Content)
}
