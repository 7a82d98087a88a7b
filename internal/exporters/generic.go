package exporters

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrlokans/hikam/internal/entities"
)

// QuoteExporter writes a quote collection in one output format.
type QuoteExporter interface {
	Export(w io.Writer, quotes []entities.Quote) (ExportResult, error)
	Extension() string
	ContentType() string
}

type ExportResult struct {
	QuotesExported int `json:"quotes_exported"`
	Categories     int `json:"categories"`
}

const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ForFormat returns the exporter for a format name. An empty name selects
// Markdown.
func ForFormat(format, title string) (QuoteExporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatMarkdown, "md":
		return NewMarkdownExporter(title), nil
	case FormatJSON:
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

func countCategories(quotes []entities.Quote) int {
	seen := make(map[string]struct{}, len(quotes))
	for _, q := range quotes {
		seen[q.Category] = struct{}{}
	}
	return len(seen)
}
