package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mrlokans/hikam/internal/database/quotes"
	"github.com/mrlokans/hikam/internal/entities"
	"github.com/mrlokans/hikam/internal/search"
	"github.com/mrlokans/hikam/internal/tasks"
)

// SearchRequest is one query against a user's index. Zero Limit and nil
// MinScore use the service defaults; nil match flags leave both modes on.
type SearchRequest struct {
	Query    string
	Limit    int
	MinScore *int
	Exact    *bool
	Semantic *bool
}

// SearchResponse is empty with Indexing set while the index is being built.
type SearchResponse struct {
	Query    string          `json:"query"`
	State    string          `json:"state"`
	Indexing bool            `json:"indexing"`
	Ready    bool            `json:"ready"`
	Total    int             `json:"total"`
	Results  []search.Result `json:"results"`
}

// IndexStatus describes a user's search index.
type IndexStatus struct {
	State     string `json:"state"`
	Indexing  bool   `json:"indexing"`
	Ready     bool   `json:"ready"`
	Quotes    int    `json:"quotes"`
	Terms     int    `json:"terms"`
	LastError string `json:"last_error,omitempty"`
}

func (s *QuoteService) options(req SearchRequest) search.Options {
	opts := s.defaults
	if req.Limit > 0 {
		opts.MaxResults = req.Limit
	}
	if req.MinScore != nil && *req.MinScore >= 0 {
		opts.MinScore = *req.MinScore
	}
	if req.Exact != nil {
		opts.IncludeExact = *req.Exact
	}
	if req.Semantic != nil {
		opts.IncludeSemantic = *req.Semantic
	}
	return opts
}

// Search ranks the user's quotes against the query. Non-blank queries are
// remembered as recent searches and tracked as analytics events.
func (s *QuoteService) Search(ctx context.Context, userID uint, req SearchRequest) (*SearchResponse, error) {
	binding, err := s.binding(ctx, userID)
	if err != nil {
		return nil, err
	}

	query := strings.TrimSpace(req.Query)
	resp := &SearchResponse{
		Query:    query,
		State:    binding.State().String(),
		Indexing: binding.IsIndexing(),
		Ready:    binding.IsReady(),
		Results:  []search.Result{},
	}
	if query == "" {
		return resp, nil
	}

	if s.recent != nil {
		if _, err := s.recent.Add(userID, query); err != nil {
			log.Printf("[SEARCH] Failed to remember query for user %d: %v", userID, err)
		}
	}
	s.track(entities.AnalyticsEvent{UserID: userID, Type: entities.AnalyticsEventSearch, Query: query})

	resp.Results = binding.SearchScored(query, s.options(req))
	resp.Total = len(resp.Results)
	return resp, nil
}

// Suggestions completes prefix from the user's indexed terms.
func (s *QuoteService) Suggestions(ctx context.Context, userID uint, prefix string, limit int) ([]string, error) {
	binding, err := s.binding(ctx, userID)
	if err != nil {
		return nil, err
	}
	return binding.Suggestions(prefix, limit), nil
}

func (s *QuoteService) SearchStatus(ctx context.Context, userID uint) (*IndexStatus, error) {
	binding, err := s.binding(ctx, userID)
	if err != nil {
		return nil, err
	}
	status := &IndexStatus{
		State:    binding.State().String(),
		Indexing: binding.IsIndexing(),
		Ready:    binding.IsReady(),
		Quotes:   binding.Len(),
		Terms:    binding.Terms(),
	}
	if ierr := binding.LastError(); ierr != nil {
		status.LastError = ierr.Error()
	}
	return status, nil
}

func (s *QuoteService) RecentSearches(userID uint) ([]string, error) {
	if s.recent == nil {
		return []string{}, nil
	}
	return s.recent.List(userID)
}

func (s *QuoteService) ClearRecentSearches(userID uint) error {
	if s.recent == nil {
		return nil
	}
	return s.recent.Clear(userID)
}

// RefreshIndex schedules a rebuild of the user's index, through the task
// queue when one is attached.
func (s *QuoteService) RefreshIndex(ctx context.Context, userID uint) error {
	if s.tasks != nil {
		if _, err := s.tasks.Enqueue(ctx, tasks.RebuildSearchIndexTask{UserID: userID}); err != nil {
			return err
		}
		return nil
	}

	list, err := s.quotes.ListForUser(userID, quotes.Filter{})
	if err != nil {
		return fmt.Errorf("failed to load quotes for user %d: %w", userID, err)
	}
	s.registry.For(userID).Rebuild(list)
	return nil
}

// RefreshIndexNow rebuilds the user's index before returning.
func (s *QuoteService) RefreshIndexNow(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	list, err := s.quotes.ListForUser(userID, quotes.Filter{})
	if err != nil {
		return fmt.Errorf("failed to load quotes for user %d: %w", userID, err)
	}
	return s.registry.For(userID).RebuildNow(list)
}

// WarmIndexes builds the index of every user that has quotes.
func (s *QuoteService) WarmIndexes(ctx context.Context) (int, error) {
	ids, err := s.quotes.UserIDs()
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}
	warmed := 0
	for _, id := range ids {
		if err := s.RefreshIndexNow(ctx, id); err != nil {
			log.Printf("[SEARCH] Failed to build index for user %d: %v", id, err)
			continue
		}
		warmed++
	}
	return warmed, nil
}

// binding returns the user's binding, loading their quotes into it on first use.
func (s *QuoteService) binding(ctx context.Context, userID uint) (*search.Binding, error) {
	binding := s.registry.For(userID)
	if binding.Primed() {
		return binding, nil
	}
	list, err := s.quotes.ListForUser(userID, quotes.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load quotes for user %d: %w", userID, err)
	}
	binding.Rebuild(list)
	return binding, nil
}
