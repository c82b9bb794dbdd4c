package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unspool/unspool/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveThreadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	author := types.Author{Handle: "ada_l", DisplayName: "Ada Lovelace"}
	td := &types.ThreadData{
		GroupID: "ada_l-1",
		Records: []types.Record{
			{
				ID: "1", Author: author, Content: "1/2 part one", Timestamp: at,
				ThreadPosition: 1, SourceURL: "https://x.com/ada_l/status/1",
				Media: []types.MediaRef{{Kind: types.MediaImage, URL: "https://pbs.twimg.com/media/A?format=jpg&name=orig"}},
			},
			{
				ID: "2", Author: author, Content: "2/2 part two", Timestamp: at.Add(time.Minute),
				ThreadPosition: 2, SourceURL: "https://x.com/ada_l/status/2",
			},
		},
		DeclaredCount: 2,
		Author:        author,
		StartedAt:     at,
		IsComplete:    true,
	}

	captureID, err := s.SaveThread(td, []string{"compilers", "history"}, "research")
	require.NoError(t, err)
	assert.NotEmpty(t, captureID)

	threads, err := s.ListThreads(10)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, "ada_l-1", threads[0].GroupID)
	assert.Equal(t, "ada_l", threads[0].AuthorHandle)
	assert.True(t, threads[0].IsComplete)
	assert.Equal(t, 2, threads[0].DeclaredCount)

	records, err := s.ThreadRecords("ada_l-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "2", records[1].ID)
	require.Len(t, records[0].Media, 1)
	assert.Equal(t, types.MediaImage, records[0].Media[0].Kind)
}

func TestSaveThreadTwiceUpdatesInPlace(t *testing.T) {
	s := openTestStore(t)

	author := types.Author{Handle: "ada_l", DisplayName: "Ada Lovelace"}
	td := &types.ThreadData{
		GroupID:       "ada_l-1",
		Records:       []types.Record{{ID: "1", Author: author, Content: "1/2 part one", ThreadPosition: 1}},
		DeclaredCount: 1,
		Author:        author,
		IsComplete:    false,
	}

	_, err := s.SaveThread(td, nil, "")
	require.NoError(t, err)

	// Second capture found the missing post.
	td.Records = append(td.Records, types.Record{ID: "2", Author: author, Content: "2/2 part two", ThreadPosition: 2})
	td.DeclaredCount = 2
	td.IsComplete = true
	_, err = s.SaveThread(td, nil, "")
	require.NoError(t, err)

	threads, err := s.ListThreads(10)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.True(t, threads[0].IsComplete)
	assert.Equal(t, 2, threads[0].DeclaredCount)

	records, err := s.ThreadRecords("ada_l-1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestSaveRecordsFeedCapture(t *testing.T) {
	s := openTestStore(t)

	records := []types.Record{
		{ID: "10", Author: types.Author{Handle: "grace", DisplayName: "Grace Hopper"}, Content: "nanoseconds"},
		{ID: "11", Author: types.Author{Handle: "grace", DisplayName: "Grace Hopper"}, Content: "more nanoseconds"},
	}
	captureID, err := s.SaveRecords(records, []string{"feed"}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, captureID)

	// Feed posts carry no group; they should not surface as threads.
	threads, err := s.ListThreads(10)
	require.NoError(t, err)
	assert.Empty(t, threads)
}
