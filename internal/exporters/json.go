package exporters

import (
	"encoding/json"
	"io"

	"github.com/mrlokans/hikam/internal/entities"
)

// ExportedQuote keeps the import field names so an export can be imported
// again as is.
type ExportedQuote struct {
	Text       string `json:"text"`
	Source     string `json:"source,omitempty"`
	Category   string `json:"category"`
	IsFavorite bool   `json:"is_favorite,omitempty"`
}

type JSONExporter struct{}

func (e *JSONExporter) Extension() string   { return ".json" }
func (e *JSONExporter) ContentType() string { return "application/json; charset=utf-8" }

func (e *JSONExporter) Export(w io.Writer, quotes []entities.Quote) (ExportResult, error) {
	out := make([]ExportedQuote, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, ExportedQuote{
			Text:       q.Text,
			Source:     q.Source,
			Category:   q.Category,
			IsFavorite: q.IsFavorite,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return ExportResult{}, err
	}
	return ExportResult{QuotesExported: len(quotes), Categories: countCategories(quotes)}, nil
}
