package storage

import (
	"os"
	"path/filepath"
)

// Storage handles exports and the small bits of state that go with them.
// All files live in the tool's data directory.
type Storage struct {
	dataDir string
}

func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return &Storage{dataDir: dataDir}, nil
}

func (s *Storage) credentialsPath() string {
	return filepath.Join(s.dataDir, "credentials.json")
}

func (s *Storage) spreadsheetPath() string {
	return filepath.Join(s.dataDir, "spreadsheet.json")
}
