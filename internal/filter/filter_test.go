package filter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"csnews/internal/filter"
	"csnews/internal/models"
)

func TestMatcher_WholeWords(t *testing.T) {
	m, err := filter.NewMatcher([]string{"ai", "machine learning"})
	require.NoError(t, err)

	testCases := []struct {
		name  string
		title string
		desc  string
		want  bool
	}{
		{"keyword in title", "AI beats humans at chess", "", true},
		{"case insensitive", "new Machine Learning results", "", true},
		{"keyword in description", "Quarterly report", "driven by ai adoption", true},
		{"substring does not match", "Chairman said the maintainer declined", "", false},
		{"no keywords", "Celebrity gossip roundup", "nothing technical", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := m.Match(models.NewsItem{Title: tc.title, Description: tc.desc})
			require.Equal(t, tc.want, got)
		})
	}
}

func TestMatcher_EmptyKeywordListMatchesAll(t *testing.T) {
	m, err := filter.NewMatcher(nil)
	require.NoError(t, err)
	require.True(t, m.Match(models.NewsItem{Title: "anything"}))
}

func TestMatcher_Apply(t *testing.T) {
	m, err := filter.NewMatcher([]string{"compiler"})
	require.NoError(t, err)

	items := []models.NewsItem{
		{Title: "A new compiler backend"},
		{Title: "Stock markets rally"},
		{Title: "Compiler bug postmortem"},
	}

	out := m.Apply(items)
	require.Len(t, out, 2)
	require.Equal(t, "A new compiler backend", out[0].Title)
	require.Equal(t, "Compiler bug postmortem", out[1].Title)
}

func TestCleanDescription(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{"strips tags", "<p>Hello <b>world</b></p>", "Hello world"},
		{"decodes entities", "Ben &amp; Jerry&#39;s", "Ben & Jerry's"},
		{"collapses whitespace", "a\n\n  b\tc", "a b c"},
		{"empty stays empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, filter.CleanDescription(tc.raw))
		})
	}
}

func TestCleanDescription_Truncates(t *testing.T) {
	raw := ""
	for i := 0; i < 50; i++ {
		raw += "abcdefghij"
	}

	got := filter.CleanDescription(raw)
	require.Len(t, []rune(got), 203)
	require.Equal(t, "...", got[len(got)-3:])
}

func TestNormalize_DropsUntitledAndCleans(t *testing.T) {
	items := []models.NewsItem{
		{Title: "  ", Link: "http://a/1"},
		{Title: "Kept", Link: " http://a/2 ", Description: "<i>styled</i> text"},
	}

	out := filter.Normalize(items)
	require.Len(t, out, 1)
	require.Equal(t, "Kept", out[0].Title)
	require.Equal(t, "http://a/2", out[0].Link)
	require.Equal(t, "styled text", out[0].Description)
}
