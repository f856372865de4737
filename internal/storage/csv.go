package storage

import (
	"encoding/csv"
	"fmt"
	"os"

	"csnews/internal/models"
	"csnews/internal/ui"
)

// ExportCSV writes the items to a local CSV file. Unlike the Sheets export
// it needs no credentials.
func (s *Storage) ExportCSV(path string, items []models.NewsItem) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"title", "link", "source", "published"}); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, item := range items {
		published := ""
		if item.HasDate() {
			published = item.Published.Format("2006-01-02 15:04:05")
		}
		record := []string{item.Title, item.Link, ui.Domain(item.Source), published}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
