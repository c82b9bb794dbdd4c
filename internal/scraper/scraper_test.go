package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unspool/unspool/internal/types"
)

func TestParseStatusURL(t *testing.T) {
	u, handle, id, err := parseStatusURL("https://x.com/ada_l/status/1890001")
	require.NoError(t, err)
	assert.Equal(t, "ada_l", handle)
	assert.Equal(t, "1890001", id)
	assert.Equal(t, "/ada_l/status/1890001", u.Path)

	_, handle, id, err = parseStatusURL("https://x.com/ada_l/status/1890001/photo/1")
	require.NoError(t, err)
	assert.Equal(t, "ada_l", handle)
	assert.Equal(t, "1890001", id)

	_, _, _, err = parseStatusURL("https://x.com/ada_l")
	assert.Error(t, err)

	_, _, _, err = parseStatusURL("https://x.com/home")
	assert.Error(t, err)
}

func TestFindRecord(t *testing.T) {
	records := []types.Record{
		{ID: "1", Author: types.Author{Handle: "ada_l"}},
		{ID: "2", Author: types.Author{Handle: "grace"}},
	}

	got, ok := findRecord(records, "2", "ada_l")
	require.True(t, ok)
	assert.Equal(t, "2", got.ID)

	// Unknown id falls back to the permalink post when it belongs to the
	// page author.
	got, ok = findRecord(records, "99", "ada_l")
	require.True(t, ok)
	assert.Equal(t, "1", got.ID)

	got, ok = findRecord(records, "99", "Ada_L")
	require.True(t, ok)
	assert.Equal(t, "1", got.ID)

	_, ok = findRecord(nil, "1", "ada_l")
	assert.False(t, ok)
}

func TestFindRecordRejectsWrongAuthorFallback(t *testing.T) {
	// The permalink post failed extraction; what rendered first is a
	// reply by someone else. That must not become the thread seed.
	records := []types.Record{
		{ID: "55", Author: types.Author{Handle: "grace"}},
		{ID: "56", Author: types.Author{Handle: "grace"}},
	}

	_, ok := findRecord(records, "1890001", "ada_l")
	assert.False(t, ok)
}
