package filter

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"csnews/internal/models"
)

const maxDescriptionRunes = 200

var (
	stripPolicy = bluemonday.StrictPolicy()
	whitespace  = regexp.MustCompile(`\s+`)
)

// Matcher selects items whose title or description mentions one of the
// configured keywords as a whole word, case-insensitively.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles one pattern per keyword. An empty keyword list
// matches everything.
func NewMatcher(keywords []string) (*Matcher, error) {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(strings.ToLower(k)) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("error compiling keyword %q: %w", k, err)
		}
		patterns = append(patterns, re)
	}
	return &Matcher{patterns: patterns}, nil
}

// Match reports whether the item mentions any keyword.
func (m *Matcher) Match(item models.NewsItem) bool {
	if len(m.patterns) == 0 {
		return true
	}
	text := item.Title + " " + item.Description
	for _, re := range m.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Apply returns the items that match, preserving order.
func (m *Matcher) Apply(items []models.NewsItem) []models.NewsItem {
	var out []models.NewsItem
	for _, item := range items {
		if m.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

// CleanDescription strips HTML markup, decodes entities, collapses
// whitespace and truncates to a terminal-friendly length.
func CleanDescription(raw string) string {
	if raw == "" {
		return ""
	}
	text := html.UnescapeString(stripPolicy.Sanitize(raw))
	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))

	runes := []rune(text)
	if len(runes) > maxDescriptionRunes {
		return string(runes[:maxDescriptionRunes]) + "..."
	}
	return text
}

// Normalize drops untitled items and cleans descriptions in place.
func Normalize(items []models.NewsItem) []models.NewsItem {
	out := items[:0]
	for _, item := range items {
		item.Title = strings.TrimSpace(item.Title)
		if item.Title == "" {
			continue
		}
		item.Link = strings.TrimSpace(item.Link)
		item.Description = CleanDescription(item.Description)
		out = append(out, item)
	}
	return out
}
