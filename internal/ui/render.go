package ui

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"csnews/internal/models"
)

const dateFormat = "2006-01-02 15:04"

// Renderer writes the news listing. In plain mode all styling and OSC 8
// hyperlinks are dropped so output stays pipeable.
type Renderer struct {
	out   io.Writer
	plain bool
}

func NewRenderer(out io.Writer, plain bool) *Renderer {
	return &Renderer{out: out, plain: plain}
}

func (r *Renderer) Header(title string) {
	fmt.Fprintf(r.out, "\n%s\n\n", r.style(HeaderStyle, "  === "+title+" ==="))
}

// Items prints the listing in the order given; sorting is the caller's job.
func (r *Renderer) Items(items []models.NewsItem) {
	for _, item := range items {
		r.item(item)
	}
}

func (r *Renderer) Empty() {
	fmt.Fprintln(r.out, r.style(WarningStyle, "No relevant news found at this time."))
}

func (r *Renderer) item(item models.NewsItem) {
	date := "Recent"
	if item.HasDate() {
		date = item.Published.Format(dateFormat)
	}

	fmt.Fprintf(r.out, "%s\n", r.style(TitleStyle, "• "+item.Title))
	fmt.Fprintf(r.out, "  %s%s%s\n",
		r.style(SourceStyle, Domain(item.Source)),
		r.style(DimStyle, " | "),
		r.style(DateStyle, date))
	if item.Description != "" {
		fmt.Fprintf(r.out, "  %s\n", r.style(TextStyle, item.Description))
	}
	fmt.Fprintf(r.out, "  %s %s\n", r.style(DimStyle, "Read more:"), r.link(item.Link))
	fmt.Fprintf(r.out, "%s\n", r.style(DimStyle, strings.Repeat("-", 60)))
}

func (r *Renderer) link(target string) string {
	if r.plain || target == "" {
		return target
	}
	return LinkStyle.Render(termenv.Hyperlink(target, target))
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return s.Render(text)
}

// Domain extracts a short host name for display, without the www. prefix.
func Domain(source string) string {
	u, err := url.Parse(source)
	if err != nil || u.Host == "" {
		return source
	}
	return strings.TrimPrefix(u.Host, "www.")
}
