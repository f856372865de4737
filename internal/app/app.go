// Package app assembles the pipeline: fetch, filter, dedupe, sort, limit.
package app

import (
	"context"
	"errors"
	"fmt"

	"csnews/internal/cache"
	"csnews/internal/config"
	"csnews/internal/fetch"
	"csnews/internal/filter"
	"csnews/internal/models"
)

// ErrAllSourcesFailed means not a single source produced items, cached or
// fresh. The CLI exits non-zero on it.
var ErrAllSourcesFailed = errors.New("all news sources failed")

// Options are the per-run knobs from the command line.
type Options struct {
	Limit   int
	Random  bool
	Refresh bool
	NoCache bool
}

type App struct {
	cfg     *config.Config
	fetcher *fetch.Fetcher
	cache   *cache.Cache
	matcher *filter.Matcher
}

func New(cfg *config.Config) (*App, error) {
	matcher, err := filter.NewMatcher(cfg.Keywords)
	if err != nil {
		return nil, err
	}

	fileCache, err := cache.New(cfg.CacheDir(), cfg.Settings.CacheTTL())
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:     cfg,
		fetcher: fetch.New(cfg.Settings.HTTPTimeout()),
		cache:   fileCache,
		matcher: matcher,
	}, nil
}

func (a *App) Config() *config.Config {
	return a.cfg
}

// Collect runs the pipeline and returns the items to render, newest first
// (or shuffled with opts.Random), at most opts.Limit of them.
func (a *App) Collect(ctx context.Context, opts Options) ([]models.NewsItem, error) {
	fetchOne := a.fetchFunc(opts)

	results := fetch.FetchAll(ctx, a.cfg.Feeds, fetchOne)
	items, ok := fetch.Merge(results)
	if ok == 0 && len(a.cfg.Feeds) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrAllSourcesFailed, firstError(results))
	}

	items = a.matcher.Apply(items)
	items = models.Dedupe(items)

	if opts.Random {
		models.Shuffle(items)
	} else {
		models.SortByPublished(items)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = a.cfg.Settings.DefaultLimit
	}
	return models.Limit(items, limit), nil
}

// ClearCache drops every cached source entry.
func (a *App) ClearCache() error {
	return a.cache.Clear()
}

func (a *App) fetchFunc(opts Options) cache.FetchFunc {
	switch {
	case opts.NoCache:
		return a.fetcher.Fetch
	case opts.Refresh:
		return func(ctx context.Context, source string) ([]models.NewsItem, error) {
			return a.cache.Refresh(ctx, source, a.fetcher.Fetch)
		}
	default:
		return func(ctx context.Context, source string) ([]models.NewsItem, error) {
			return a.cache.Get(ctx, source, a.fetcher.Fetch)
		}
	}
}

func firstError(results []fetch.Result) error {
	for _, res := range results {
		if res.Err != nil {
			return res.Err
		}
	}
	return errors.New("no sources configured")
}
