package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mrlokans/hikam/internal/arabic"
	"github.com/mrlokans/hikam/internal/entities"
)

// ImportService bulk-loads quotes for a user. Blank texts and texts the user
// already has are skipped; the index is rebuilt once per batch.
type ImportService struct {
	quotes *QuoteService
}

func NewImportService(quotes *QuoteService) *ImportService {
	return &ImportService{quotes: quotes}
}

func (s *ImportService) ImportQuotes(ctx context.Context, userID uint, inputs []QuoteInput) (ImportResult, error) {
	var result ImportResult
	seen := make(map[string]struct{}, len(inputs))

	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		text := strings.TrimSpace(in.Text)
		key := arabic.Normalize(text)
		if key == "" {
			result.Skipped++
			continue
		}
		if _, dup := seen[key]; dup {
			result.Skipped++
			continue
		}
		seen[key] = struct{}{}

		exists, err := s.quotes.quotes.ExistsWithText(userID, text)
		if err != nil {
			return result, fmt.Errorf("failed to check for duplicate quote: %w", err)
		}
		if exists {
			result.Skipped++
			continue
		}

		quote := &entities.Quote{
			UserID:   userID,
			Text:     text,
			Source:   strings.TrimSpace(in.Source),
			Category: strings.TrimSpace(in.Category),
		}
		if err := s.quotes.quotes.Create(quote); err != nil {
			log.Printf("[IMPORT] Failed to save quote for user %d: %v", userID, err)
			result.Failed++
			continue
		}
		result.Imported++
	}

	if result.Imported > 0 {
		s.quotes.changed(ctx, userID)
	}
	return result, nil
}
