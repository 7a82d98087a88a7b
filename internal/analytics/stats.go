package analytics

import (
	"fmt"
	"time"

	analyticsdb "github.com/mrlokans/hikam/internal/database/analytics"
	"github.com/mrlokans/hikam/internal/entities"
)

const (
	activityDays  = 7
	topQuoteCount = 5
)

// StatsStore is the read side of the event repository.
type StatsStore interface {
	CountByType(userID uint, since time.Time) (map[entities.AnalyticsEventType]int64, error)
	TopQuotes(userID uint, eventType entities.AnalyticsEventType, limit int) ([]analyticsdb.QuoteCount, error)
	EventsSince(userID uint, since time.Time) ([]entities.AnalyticsEvent, error)
}

type QuoteCounter interface {
	CountForUser(userID uint) (int64, error)
}

type FavouriteCounter interface {
	GetFavouriteCount(userID uint) (int64, error)
}

type DayActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Stats struct {
	TotalQuotes int64                                 `json:"total_quotes"`
	Favourites  int64                                 `json:"favourites"`
	EventCounts map[entities.AnalyticsEventType]int64 `json:"event_counts"`
	MostViewed  []analyticsdb.QuoteCount              `json:"most_viewed"`
	LastWeek    []DayActivity                         `json:"last_week"`
}

type Service struct {
	events     StatsStore
	quotes     QuoteCounter
	favourites FavouriteCounter
	now        func() time.Time
}

func NewService(events StatsStore, quotes QuoteCounter, favourites FavouriteCounter) *Service {
	return &Service{
		events:     events,
		quotes:     quotes,
		favourites: favourites,
		now:        time.Now,
	}
}

// Stats aggregates the user's collection and activity.
func (s *Service) Stats(userID uint) (*Stats, error) {
	total, err := s.quotes.CountForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}
	favourites, err := s.favourites.GetFavouriteCount(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count favourites: %w", err)
	}
	counts, err := s.events.CountByType(userID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	top, err := s.events.TopQuotes(userID, entities.AnalyticsEventView, topQuoteCount)
	if err != nil {
		return nil, fmt.Errorf("failed to rank quotes: %w", err)
	}

	week, err := s.lastWeek(userID)
	if err != nil {
		return nil, err
	}

	if top == nil {
		top = []analyticsdb.QuoteCount{}
	}
	return &Stats{
		TotalQuotes: total,
		Favourites:  favourites,
		EventCounts: counts,
		MostViewed:  top,
		LastWeek:    week,
	}, nil
}

// lastWeek buckets events per local calendar day, oldest day first, including empty days.
func (s *Service) lastWeek(userID uint) ([]DayActivity, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -(activityDays - 1))

	events, err := s.events.EventsSince(userID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent events: %w", err)
	}

	days := make([]DayActivity, activityDays)
	index := make(map[string]int, activityDays)
	for i := range days {
		date := start.AddDate(0, 0, i).Format(time.DateOnly)
		days[i] = DayActivity{Date: date}
		index[date] = i
	}
	for _, e := range events {
		if i, ok := index[e.CreatedAt.In(now.Location()).Format(time.DateOnly)]; ok {
			days[i].Count++
		}
	}
	return days, nil
}
