package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/hikam/internal/cache"
	"github.com/mrlokans/hikam/internal/database/quotes"
	"github.com/mrlokans/hikam/internal/entities"
	"github.com/mrlokans/hikam/internal/search"
)

// ErrNoQuotes is returned when a user has nothing to schedule.
var ErrNoQuotes = errors.New("user has no quotes")

// QuoteServiceDeps lists the collaborators of a QuoteService. Cache, Recent,
// Events and Tasks are optional.
type QuoteServiceDeps struct {
	Quotes     QuoteStore
	Favourites FavouriteStore
	Registry   *search.Registry
	Cache      *cache.Cache
	Recent     RecentSearchStore
	Events     EventTracker
	Tasks      TaskEnqueuer
	Search     search.Options
}

// QuoteService ties the quote repositories to the per-user search indexes.
// Every write invalidates the user's cached lists and schedules a rebuild of
// their index; the written entity is returned without waiting for it.
type QuoteService struct {
	quotes     QuoteStore
	favourites FavouriteStore
	registry   *search.Registry
	cache      *cache.Cache
	recent     RecentSearchStore
	events     EventTracker
	tasks      TaskEnqueuer
	defaults   search.Options

	now func() time.Time
}

func NewQuoteService(deps QuoteServiceDeps) *QuoteService {
	registry := deps.Registry
	if registry == nil {
		registry = search.NewRegistry(search.BindingConfig{})
	}
	defaults := deps.Search
	if defaults == (search.Options{}) {
		defaults = search.DefaultOptions()
	}
	return &QuoteService{
		quotes:     deps.Quotes,
		favourites: deps.Favourites,
		registry:   registry,
		cache:      deps.Cache,
		recent:     deps.Recent,
		events:     deps.Events,
		tasks:      deps.Tasks,
		defaults:   defaults,
		now:        time.Now,
	}
}

// SetTaskEnqueuer routes index rebuilds through the background queue.
// The queue's rebuild processor usually points back at this service, so it is
// attached after construction.
func (s *QuoteService) SetTaskEnqueuer(t TaskEnqueuer) {
	s.tasks = t
}

// Registry exposes the per-user search bindings.
func (s *QuoteService) Registry() *search.Registry {
	return s.registry
}

// List returns the user's quotes, newest first, served from cache when possible.
func (s *QuoteService) List(userID uint, filter quotes.Filter) ([]entities.Quote, error) {
	key := cache.UserKey(userID, "list", filter.Category, strconv.FormatBool(filter.FavoritesOnly))
	if s.cache != nil {
		var cached []entities.Quote
		found, err := s.cache.Get(key, &cached)
		if err != nil {
			log.Printf("[QUOTES] Cache read failed for %s: %v", key, err)
		} else if found {
			return cached, nil
		}
	}

	list, err := s.quotes.ListForUser(userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(key, list); err != nil {
			log.Printf("[QUOTES] Cache write failed for %s: %v", key, err)
		}
	}
	return list, nil
}

func (s *QuoteService) Get(userID uint, id string) (*entities.Quote, error) {
	return s.quotes.Get(id, userID)
}

func (s *QuoteService) Categories(userID uint) ([]string, error) {
	return s.quotes.Categories(userID)
}

func (s *QuoteService) Create(ctx context.Context, userID uint, input QuoteInput) (*entities.Quote, error) {
	quote := &entities.Quote{
		UserID:   userID,
		Text:     strings.TrimSpace(input.Text),
		Source:   strings.TrimSpace(input.Source),
		Category: strings.TrimSpace(input.Category),
	}
	if err := s.quotes.Create(quote); err != nil {
		return nil, err
	}
	s.changed(ctx, userID)
	return quote, nil
}

func (s *QuoteService) Update(ctx context.Context, userID uint, id string, input QuoteInput) (*entities.Quote, error) {
	quote, err := s.quotes.Get(id, userID)
	if err != nil {
		return nil, err
	}
	quote.Text = strings.TrimSpace(input.Text)
	quote.Source = strings.TrimSpace(input.Source)
	quote.Category = strings.TrimSpace(input.Category)
	if err := s.quotes.Update(quote); err != nil {
		return nil, err
	}
	s.changed(ctx, userID)
	return quote, nil
}

func (s *QuoteService) Delete(ctx context.Context, userID uint, id string) error {
	if err := s.quotes.Delete(id, userID); err != nil {
		return err
	}
	s.changed(ctx, userID)
	return nil
}

// SetFavourite marks or unmarks a quote and records the matching event.
func (s *QuoteService) SetFavourite(ctx context.Context, userID uint, id string, favourite bool) (*entities.Quote, error) {
	if err := s.favourites.SetQuoteFavourite(id, userID, favourite); err != nil {
		return nil, err
	}
	quote, err := s.quotes.Get(id, userID)
	if err != nil {
		return nil, err
	}

	eventType := entities.AnalyticsEventFavorite
	if !favourite {
		eventType = entities.AnalyticsEventUnfavorite
	}
	s.track(entities.AnalyticsEvent{UserID: userID, Type: eventType, QuoteID: id})
	s.changed(ctx, userID)
	return quote, nil
}

func (s *QuoteService) ToggleFavourite(ctx context.Context, userID uint, id string) (*entities.Quote, error) {
	quote, err := s.quotes.Get(id, userID)
	if err != nil {
		return nil, err
	}
	return s.SetFavourite(ctx, userID, id, !quote.IsFavorite)
}

func (s *QuoteService) Favourites(userID uint, limit, offset int) ([]entities.Quote, int64, error) {
	return s.favourites.GetFavouriteQuotes(userID, limit, offset)
}

func (s *QuoteService) FavouriteCount(userID uint) (int64, error) {
	return s.favourites.GetFavouriteCount(userID)
}

// Schedule pins a quote to a calendar day.
func (s *QuoteService) Schedule(userID uint, id string, day time.Time) (*entities.Quote, error) {
	quote, err := s.quotes.SetScheduledDate(id, userID, day)
	if err != nil {
		return nil, err
	}
	s.invalidate(userID)
	return quote, nil
}

// Today returns the quote of the day, assigning one if none is scheduled.
func (s *QuoteService) Today(userID uint) (*entities.Quote, error) {
	quote, _, err := s.EnsureToday(userID)
	return quote, err
}

// EnsureToday reports whether it had to assign today's quote. The least
// recently scheduled quote is chosen.
func (s *QuoteService) EnsureToday(userID uint) (*entities.Quote, bool, error) {
	day := quotes.DayStart(s.now())

	quote, err := s.quotes.GetScheduledFor(userID, day)
	if err == nil {
		return quote, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to load today's quote: %w", err)
	}

	next, err := s.quotes.NextUnscheduled(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, ErrNoQuotes
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to pick today's quote: %w", err)
	}

	quote, err = s.Schedule(userID, next.ID, day)
	if err != nil {
		return nil, false, err
	}
	return quote, true, nil
}

func (s *QuoteService) UserIDs() ([]uint, error) {
	return s.quotes.UserIDs()
}

func (s *QuoteService) changed(ctx context.Context, userID uint) {
	s.invalidate(userID)
	if err := s.RefreshIndex(ctx, userID); err != nil {
		log.Printf("[QUOTES] Failed to schedule index rebuild for user %d: %v", userID, err)
	}
}

func (s *QuoteService) invalidate(userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(userID); err != nil {
		log.Printf("[QUOTES] Failed to invalidate cache for user %d: %v", userID, err)
	}
}

func (s *QuoteService) track(event entities.AnalyticsEvent) {
	if s.events == nil {
		return
	}
	s.events.Track(event)
}
