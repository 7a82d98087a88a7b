package importers

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/hikam/internal/arabic"
	"github.com/mrlokans/hikam/internal/services"
)

var ErrUnsupportedFormat = errors.New("unsupported import format")

// JSONQuote is one element of a JSON import file.
type JSONQuote struct {
	Text     string `json:"text"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

type JSONConverter struct {
	Quotes []JSONQuote
	Name   string
}

// ParseJSON reads an array of quotes.
func ParseJSON(r io.Reader, name string) (*JSONConverter, error) {
	var quotes []JSONQuote
	if err := json.NewDecoder(r).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("invalid JSON quotes: %w", err)
	}
	return &JSONConverter{Quotes: quotes, Name: name}, nil
}

func (c *JSONConverter) Convert() ([]RawQuote, Source) {
	out := make([]RawQuote, 0, len(c.Quotes))
	for _, q := range c.Quotes {
		out = append(out, RawQuote{Text: q.Text, Source: q.Source, Category: q.Category})
	}
	return out, Source{Name: c.Name}
}

// CSVConverter reads text,source,category rows. A first row whose first
// cell is "text" is treated as a header.
type CSVConverter struct {
	Rows [][]string
	Name string
}

func ParseCSV(r io.Reader, name string) (*CSVConverter, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV quotes: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "text") {
		rows = rows[1:]
	}
	return &CSVConverter{Rows: rows, Name: name}, nil
}

func (c *CSVConverter) Convert() ([]RawQuote, Source) {
	out := make([]RawQuote, 0, len(c.Rows))
	for _, row := range c.Rows {
		if len(row) == 0 {
			continue
		}
		q := RawQuote{Text: row[0]}
		if len(row) > 1 {
			q.Source = row[1]
		}
		if len(row) > 2 {
			q.Category = row[2]
		}
		out = append(out, q)
	}
	return out, Source{Name: c.Name}
}

// TextConverter splits plain text into quotes at blank lines. Paragraphs
// without Arabic letters are dropped.
type TextConverter struct {
	Text string
	Name string
}

func (c *TextConverter) Convert() ([]RawQuote, Source) {
	var out []RawQuote
	for _, para := range strings.Split(strings.ReplaceAll(c.Text, "\r\n", "\n"), "\n\n") {
		para = strings.TrimSpace(para)
		if len(arabic.ExtractWords(para)) == 0 {
			continue
		}
		out = append(out, RawQuote{Text: strings.Join(strings.Fields(para), " ")})
	}
	return out, Source{Name: c.Name}
}

// ConverterForFile reads path and returns the converter for its extension.
// The file name without extension becomes the source name.
func ConverterForFile(path string) (Converter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(bytes.NewReader(data), name)
	case ".csv":
		return ParseCSV(bytes.NewReader(data), name)
	case ".txt":
		return &TextConverter{Text: string(data), Name: name}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, base)
	}
}

// Supported reports whether path has an importable extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".csv", ".txt":
		return true
	}
	return false
}

// ImportFile imports one file for userID.
func (p *Pipeline) ImportFile(ctx context.Context, userID uint, path string) (services.ImportResult, error) {
	converter, err := ConverterForFile(path)
	if err != nil {
		return services.ImportResult{}, err
	}
	return p.Import(ctx, userID, converter)
}
