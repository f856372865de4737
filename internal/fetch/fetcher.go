package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"csnews/internal/filter"
	"csnews/internal/logger"
	"csnews/internal/models"
)

// Fetcher downloads and parses one feed at a time. Sources are independent:
// a failure is reported per source and never aborts the remaining ones.
type Fetcher struct {
	parser *gofeed.Parser
}

func New(timeout time.Duration) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = "csnews"
	return &Fetcher{parser: parser}
}

// Fetch downloads the feed at url and returns its items, cleaned and tagged
// with the source URL. Items keep the zero time when the feed carries no
// parseable date.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]models.NewsItem, error) {
	feed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching feed %s: %w", url, err)
	}

	items := make([]models.NewsItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		items = append(items, models.NewsItem{
			Title:       entry.Title,
			Link:        entry.Link,
			Description: entry.Description,
			Source:      url,
			Published:   entryDate(entry),
		})
	}
	return filter.Normalize(items), nil
}

// Result pairs one source with its items or its failure.
type Result struct {
	Source string
	Items  []models.NewsItem
	Err    error
}

// FetchAll walks the sources sequentially through fetchOne, collecting a
// Result per source. fetchOne is where the cache wraps Fetch; passing
// (*Fetcher).Fetch directly skips caching.
func FetchAll(ctx context.Context, sources []string, fetchOne func(context.Context, string) ([]models.NewsItem, error)) []Result {
	results := make([]Result, 0, len(sources))
	for _, source := range sources {
		log := logger.Log.WithField("url", source)
		log.Debug("Fetching feed")

		items, err := fetchOne(ctx, source)
		if err != nil {
			log.Warnf("Skipping source: %v", err)
			results = append(results, Result{Source: source, Err: err})
			continue
		}

		log.WithField("items", len(items)).Debug("Fetched feed")
		results = append(results, Result{Source: source, Items: items})
	}
	return results
}

// Merge flattens results into one item list and reports how many sources
// succeeded.
func Merge(results []Result) (items []models.NewsItem, ok int) {
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		ok++
		items = append(items, res.Items...)
	}
	return items, ok
}

func entryDate(entry *gofeed.Item) time.Time {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed.UTC()
	}
	if entry.UpdatedParsed != nil {
		return entry.UpdatedParsed.UTC()
	}
	return time.Time{}
}
