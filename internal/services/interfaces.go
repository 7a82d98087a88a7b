package services

import (
	"context"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/hikam/internal/database/quotes"
	"github.com/mrlokans/hikam/internal/entities"
)

// QuoteStore persists the user's quote collection.
type QuoteStore interface {
	Create(quote *entities.Quote) error
	Get(id string, userID uint) (*entities.Quote, error)
	Update(quote *entities.Quote) error
	Delete(id string, userID uint) error
	ListForUser(userID uint, filter quotes.Filter) ([]entities.Quote, error)
	ExistsWithText(userID uint, text string) (bool, error)
	Categories(userID uint) ([]string, error)
	GetScheduledFor(userID uint, day time.Time) (*entities.Quote, error)
	SetScheduledDate(id string, userID uint, day time.Time) (*entities.Quote, error)
	NextUnscheduled(userID uint) (*entities.Quote, error)
	UserIDs() ([]uint, error)
}

// FavouriteStore flips and lists favourite quotes.
type FavouriteStore interface {
	SetQuoteFavourite(quoteID string, userID uint, isFavourite bool) error
	GetFavouriteQuotes(userID uint, limit, offset int) ([]entities.Quote, int64, error)
	GetFavouriteCount(userID uint) (int64, error)
}

// RecentSearchStore keeps each user's recent queries, most recent first.
type RecentSearchStore interface {
	Add(userID uint, query string) ([]string, error)
	List(userID uint) ([]string, error)
	Clear(userID uint) error
}

// EventTracker accepts analytics events without blocking.
type EventTracker interface {
	Track(event entities.AnalyticsEvent) bool
}

// TaskEnqueuer hands work to the background task queue.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, tasks ...backlite.Task) ([]string, error)
}

// QuoteInput carries the user-editable fields of a quote.
type QuoteInput struct {
	Text     string `json:"text"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}
