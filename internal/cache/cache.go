package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"csnews/internal/logger"
	"csnews/internal/models"
)

// FetchFunc fetches items for one source from the network.
type FetchFunc func(ctx context.Context, source string) ([]models.NewsItem, error)

// Entry is the on-disk record for one source.
type Entry struct {
	Source    string            `json:"source"`
	FetchedAt time.Time         `json:"fetched_at"`
	Items     []models.NewsItem `json:"items"`
}

// Cache is a read-through file cache with one JSON file per source. The
// tool runs as a short-lived single process, so there is no locking.
type Cache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

func New(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating cache directory: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl, now: time.Now}, nil
}

// Get returns the cached items for source when the entry is younger than
// the TTL. On a miss or an expired entry it calls fetch exactly once and
// stores the result before returning it. If the fetch fails and an expired
// entry exists, the stale items are returned instead of the error.
func (c *Cache) Get(ctx context.Context, source string, fetch FetchFunc) ([]models.NewsItem, error) {
	log := logger.Log.WithField("url", source)

	entry, err := c.load(source)
	if err == nil && c.now().Sub(entry.FetchedAt) < c.ttl {
		log.WithField("age", c.now().Sub(entry.FetchedAt).String()).Debug("Cache hit")
		return entry.Items, nil
	}

	items, fetchErr := fetch(ctx, source)
	if fetchErr != nil {
		if err == nil {
			log.Warnf("Fetch failed, using stale cache entry: %v", fetchErr)
			return entry.Items, nil
		}
		return nil, fetchErr
	}

	if storeErr := c.store(source, items); storeErr != nil {
		// A write failure costs a refetch next run, nothing else.
		log.Warnf("Failed to write cache entry: %v", storeErr)
	}
	return items, nil
}

// Refresh fetches unconditionally and replaces the stored entry. Used by
// --refresh to force new data without waiting out the TTL.
func (c *Cache) Refresh(ctx context.Context, source string, fetch FetchFunc) ([]models.NewsItem, error) {
	items, err := fetch(ctx, source)
	if err != nil {
		return nil, err
	}
	if storeErr := c.store(source, items); storeErr != nil {
		logger.Log.WithField("url", source).Warnf("Failed to write cache entry: %v", storeErr)
	}
	return items, nil
}

// Clear removes every cache file.
func (c *Cache) Clear() error {
	paths, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("error removing cache entry: %w", err)
		}
	}
	return nil
}

func (c *Cache) load(source string) (*Entry, error) {
	data, err := os.ReadFile(c.path(source))
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("error parsing cache entry: %w", err)
	}
	return &entry, nil
}

func (c *Cache) store(source string, items []models.NewsItem) error {
	entry := Entry{
		Source:    source,
		FetchedAt: c.now(),
		Items:     items,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling cache entry: %w", err)
	}

	// Write to a temporary file first, then rename (atomic operation).
	path := c.path(source)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("error writing temporary cache entry: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("error saving cache entry: %w", err)
	}
	return nil
}

func (c *Cache) path(source string) string {
	sum := sha256.Sum256([]byte(source))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:16])+".json")
}
