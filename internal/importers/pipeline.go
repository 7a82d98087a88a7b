package importers

import (
	"context"
	"strings"

	"github.com/mrlokans/hikam/internal/services"
)

// RawQuote is a quote from any import source before validation.
type RawQuote struct {
	Text     string
	Source   string
	Category string
}

// Source describes where a batch of quotes came from.
type Source struct {
	Name     string
	FilePath string
}

// Converter turns source-specific records into RawQuotes.
type Converter interface {
	Convert() ([]RawQuote, Source)
}

// QuoteImporter stores a batch of quotes for a user.
type QuoteImporter interface {
	ImportQuotes(ctx context.Context, userID uint, inputs []services.QuoteInput) (services.ImportResult, error)
}

// Pipeline handles the common import workflow: convert, fill defaults, save.
type Pipeline struct {
	importer QuoteImporter
}

func NewPipeline(importer QuoteImporter) *Pipeline {
	return &Pipeline{importer: importer}
}

// Import converts and saves the quotes of converter for userID. Quotes
// without a source are attributed to the batch source name.
func (p *Pipeline) Import(ctx context.Context, userID uint, converter Converter) (services.ImportResult, error) {
	raw, source := converter.Convert()
	if len(raw) == 0 {
		return services.ImportResult{}, nil
	}

	inputs := make([]services.QuoteInput, 0, len(raw))
	for _, q := range raw {
		in := services.QuoteInput{
			Text:     q.Text,
			Source:   strings.TrimSpace(q.Source),
			Category: q.Category,
		}
		if in.Source == "" {
			in.Source = source.Name
		}
		inputs = append(inputs, in)
	}

	return p.importer.ImportQuotes(ctx, userID, inputs)
}
