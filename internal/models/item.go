package models

import (
	"math/rand"
	"sort"
	"time"
)

// NewsItem is a single news article record.
type NewsItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	Published   time.Time `json:"published"`
}

// HasDate reports whether the item carries a usable publication date.
// Feeds without one get the zero time and render as "Recent".
func (n NewsItem) HasDate() bool {
	return !n.Published.IsZero()
}

// SortByPublished orders items newest first. Ties are broken by title and
// then link so the same set of items always renders in the same order.
func SortByPublished(items []NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Published.Equal(items[j].Published) {
			return items[i].Published.After(items[j].Published)
		}
		if items[i].Title != items[j].Title {
			return items[i].Title < items[j].Title
		}
		return items[i].Link < items[j].Link
	})
}

// Shuffle randomizes item order in place.
func Shuffle(items []NewsItem) {
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// Dedupe collapses items sharing a link, keeping the first occurrence.
func Dedupe(items []NewsItem) []NewsItem {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if item.Link != "" && seen[item.Link] {
			continue
		}
		seen[item.Link] = true
		out = append(out, item)
	}
	return out
}

// Limit returns at most n items, or all of them when n <= 0.
func Limit(items []NewsItem, n int) []NewsItem {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}
