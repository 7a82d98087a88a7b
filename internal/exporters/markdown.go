package exporters

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mrlokans/hikam/internal/entities"
)

// UncategorizedHeading titles the section for quotes without a category.
const UncategorizedHeading = "بدون تصنيف"

type MarkdownExporter struct {
	Title string
	// Now stamps the front matter; tests pin it.
	Now func() time.Time
}

func NewMarkdownExporter(title string) *MarkdownExporter {
	if title == "" {
		title = "حكم"
	}
	return &MarkdownExporter{Title: title, Now: time.Now}
}

func (e *MarkdownExporter) Extension() string   { return ".md" }
func (e *MarkdownExporter) ContentType() string { return "text/markdown; charset=utf-8" }

// Export writes front matter followed by one section per category in
// sorted order. Quotes keep their input order inside a section.
func (e *MarkdownExporter) Export(w io.Writer, quotes []entities.Quote) (ExportResult, error) {
	out := bufio.NewWriter(w)
	out.WriteString(GenerateMarkdown(e.Title, e.Now(), quotes))
	if err := out.Flush(); err != nil {
		return ExportResult{}, err
	}
	return ExportResult{QuotesExported: len(quotes), Categories: countCategories(quotes)}, nil
}

// GenerateMarkdown renders quotes grouped by category.
func GenerateMarkdown(title string, now time.Time, quotes []entities.Quote) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: quotes\n")
	fmt.Fprintf(&builder, "created_at: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&builder, "title: \"%s\"\n", strings.ReplaceAll(title, "\"", "\\\""))
	fmt.Fprintf(&builder, "quotes: %d\n", len(quotes))
	fmt.Fprintf(&builder, "---\n\n")
	fmt.Fprintf(&builder, "# %s\n\n", title)

	groups := make(map[string][]entities.Quote)
	for _, q := range quotes {
		groups[q.Category] = append(groups[q.Category], q)
	}
	categories := make([]string, 0, len(groups))
	for category := range groups {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		heading := category
		if heading == "" {
			heading = UncategorizedHeading
		}
		fmt.Fprintf(&builder, "## %s\n\n", heading)
		for _, q := range groups[category] {
			fmt.Fprintf(&builder, "> %s\n", strings.ReplaceAll(strings.TrimSpace(q.Text), "\n", "\n> "))
			if q.Source != "" {
				fmt.Fprintf(&builder, ">\n> *%s*\n", q.Source)
			}
			if q.IsFavorite {
				fmt.Fprintf(&builder, "\n★\n")
			}
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
