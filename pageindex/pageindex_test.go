package pageindex

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dustin/go-wiktionary"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := Open(filepath.Join(t.TempDir(), "pages.db"))
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })
	return ix
}

var testLocations = []wiktionary.PageLocation{
	{Title: "casa", PageID: 3, Namespace: 0, Offset: 100, Length: 50},
	{Title: "casar", PageID: 4, Namespace: 0, Offset: 150, Length: 70},
	{Title: "Template:es-conj", PageID: 5, Namespace: 10, Offset: 220, Length: 30},
	{Title: "correr", PageID: 6, Namespace: 0, Offset: 250, Length: 90},
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	ix := testIndex(t)
	require.NoError(t, ix.Put(ctx, testLocations))

	l, err := ix.Lookup(ctx, "correr")
	require.NoError(t, err)
	assert.Equal(t, testLocations[3], l)

	_, err = ix.Lookup(ctx, "hablar")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestPutReplaces(t *testing.T) {
	ctx := context.Background()
	ix := testIndex(t)
	require.NoError(t, ix.Put(ctx, testLocations))

	moved := testLocations[0]
	moved.Offset = 9000
	require.NoError(t, ix.Put(ctx, []wiktionary.PageLocation{moved}))

	l, err := ix.Lookup(ctx, "casa")
	require.NoError(t, err)
	assert.Equal(t, int64(9000), l.Offset)

	st, err := ix.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(testLocations), st.Pages)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	ix := testIndex(t)
	require.NoError(t, ix.Put(ctx, testLocations))

	got, err := ix.Search(ctx, "cas%", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "casa", got[0].Title)
	assert.Equal(t, "casar", got[1].Title)

	got, err = ix.Search(ctx, "%", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = ix.Search(ctx, "zzz%", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	ix := testIndex(t)
	require.NoError(t, ix.Put(ctx, testLocations))
	require.NoError(t, ix.SetMeta(ctx, MetaDumpFile, "eswiktionary.xml"))
	require.NoError(t, ix.SetMeta(ctx, MetaDumpFile, "enwiktionary.xml"))

	st, err := ix.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, st.Pages)
	assert.Equal(t, 3, st.Entries)
	assert.Equal(t, int64(240), st.TotalBytes)
	assert.Equal(t, map[string]string{MetaDumpFile: "enwiktionary.xml"}, st.Meta)
}

func TestStatsEmpty(t *testing.T) {
	st, err := testIndex(t).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, st.Pages)
	assert.Empty(t, st.Meta)
}
