package storage_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"csnews/internal/models"
	"csnews/internal/storage"
)

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewStorage(dir)
	require.NoError(t, err)

	items := []models.NewsItem{
		{
			Title:     "Compiler bug postmortem",
			Link:      "http://example.com/compiler",
			Source:    "https://www.example.com/rss",
			Published: time.Date(2023, 5, 3, 15, 4, 5, 0, time.UTC),
		},
		{
			Title:  "Undated entry",
			Link:   "http://example.com/undated",
			Source: "https://feeds.example.org/index",
		},
	}

	path := filepath.Join(dir, "news.csv")
	require.NoError(t, store.ExportCSV(path, items))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, []string{"title", "link", "source", "published"}, records[0])
	require.Equal(t, []string{
		"Compiler bug postmortem",
		"http://example.com/compiler",
		"example.com",
		"2023-05-03 15:04:05",
	}, records[1])
	require.Equal(t, "", records[2][3], "undated items export an empty published column")
}

func TestSpreadsheetID_RoundTrip(t *testing.T) {
	store, err := storage.NewStorage(t.TempDir())
	require.NoError(t, err)

	// No export yet: empty ID, no error.
	id, err := store.LoadSpreadsheetID()
	require.NoError(t, err)
	require.Empty(t, id)

	require.NoError(t, store.SaveSpreadsheetID("abc123"))

	id, err = store.LoadSpreadsheetID()
	require.NoError(t, err)
	require.Equal(t, "abc123", id)
}
