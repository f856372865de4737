package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"csnews/internal/models"
)

const testSource = "https://example.com/rss"

func testItems() []models.NewsItem {
	return []models.NewsItem{
		{
			Title:     "Compiler bug postmortem",
			Link:      "http://example.com/compiler",
			Source:    testSource,
			Published: time.Date(2023, 5, 3, 15, 4, 5, 0, time.UTC),
		},
		{
			Title:  "Undated entry",
			Link:   "http://example.com/undated",
			Source: testSource,
		},
	}
}

func countingFetch(items []models.NewsItem, err error, calls *int) FetchFunc {
	return func(ctx context.Context, source string) ([]models.NewsItem, error) {
		*calls++
		if err != nil {
			return nil, err
		}
		return items, nil
	}
}

func TestGet_ReadThrough(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	calls := 0
	fetch := countingFetch(testItems(), nil, &calls)

	// Miss: exactly one fetch, result stored.
	got, err := c.Get(context.Background(), testSource, fetch)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, testItems(), got)

	// Hit within the TTL: no network call, identical items.
	got, err = c.Get(context.Background(), testSource, fetch)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, testItems(), got)
}

func TestGet_ExpiryTriggersOneRefetch(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	calls := 0
	fetch := countingFetch(testItems(), nil, &calls)

	_, err = c.Get(context.Background(), testSource, fetch)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = c.Get(context.Background(), testSource, fetch)
	require.NoError(t, err)
	require.Equal(t, 2, calls)

	// The refreshed entry is current again at the shifted clock.
	_, err = c.Get(context.Background(), testSource, fetch)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestGet_StaleFallbackOnFetchFailure(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	calls := 0
	_, err = c.Get(context.Background(), testSource, countingFetch(testItems(), nil, &calls))
	require.NoError(t, err)

	c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	failing := countingFetch(nil, errors.New("connection refused"), &calls)
	got, err := c.Get(context.Background(), testSource, failing)
	require.NoError(t, err)
	require.Equal(t, testItems(), got)
}

func TestGet_MissAndFetchFailure(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	calls := 0
	fetchErr := errors.New("connection refused")
	_, err = c.Get(context.Background(), testSource, countingFetch(nil, fetchErr, &calls))
	require.ErrorIs(t, err, fetchErr)
}

func TestRefresh_BypassesFreshEntry(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	calls := 0
	fetch := countingFetch(testItems(), nil, &calls)

	_, err = c.Get(context.Background(), testSource, fetch)
	require.NoError(t, err)

	_, err = c.Refresh(context.Background(), testSource, fetch)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, time.Hour)
	require.NoError(t, err)

	calls := 0
	fetch := countingFetch(testItems(), nil, &calls)

	_, err = c.Get(context.Background(), testSource, fetch)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	require.NoError(t, c.Clear())

	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)

	_, err = c.Get(context.Background(), testSource, fetch)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}
