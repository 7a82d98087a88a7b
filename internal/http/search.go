package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hikam/internal/search"
	"github.com/mrlokans/hikam/internal/services"
)

const defaultSuggestions = 10

type SearchController struct {
	service *services.QuoteService
}

func NewSearchController(service *services.QuoteService) *SearchController {
	return &SearchController{service: service}
}

// Search handles GET /api/search?q=&limit=&min_score=&exact=&semantic=
// While the index is building the response has "indexing": true and no results.
// min_score=0 returns every candidate, including those that scored zero.
func (sc *SearchController) Search(c *gin.Context) {
	limit, ok := parseIntQuery(c, "limit", 0, 1, search.DefaultMaxResults*10)
	if !ok {
		return
	}
	minScore, ok := parseOptionalIntQuery(c, "min_score", 0, 1000)
	if !ok {
		return
	}
	exact, ok := parseBoolQuery(c, "exact")
	if !ok {
		return
	}
	semantic, ok := parseBoolQuery(c, "semantic")
	if !ok {
		return
	}

	resp, err := sc.service.Search(c.Request.Context(), GetUserID(c), services.SearchRequest{
		Query:    c.Query("q"),
		Limit:    limit,
		MinScore: minScore,
		Exact:    exact,
		Semantic: semantic,
	})
	if err != nil {
		respondInternalError(c, err, "search")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Suggest handles GET /api/search/suggest?prefix=&max=
func (sc *SearchController) Suggest(c *gin.Context) {
	limit, ok := parseIntQuery(c, "max", defaultSuggestions, 1, 100)
	if !ok {
		return
	}
	suggestions, err := sc.service.Suggestions(c.Request.Context(), GetUserID(c), c.Query("prefix"), limit)
	if err != nil {
		respondInternalError(c, err, "suggestions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// Status handles GET /api/search/status
func (sc *SearchController) Status(c *gin.Context) {
	status, err := sc.service.SearchStatus(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "search status")
		return
	}
	c.JSON(http.StatusOK, status)
}

// Reindex handles POST /api/search/reindex
func (sc *SearchController) Reindex(c *gin.Context) {
	if err := sc.service.RefreshIndex(c.Request.Context(), GetUserID(c)); err != nil {
		respondInternalError(c, err, "reindex")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "reindex scheduled"})
}

// Recent handles GET /api/search/recent
func (sc *SearchController) Recent(c *gin.Context) {
	recent, err := sc.service.RecentSearches(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "recent searches")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recent": recent})
}

// ClearRecent handles DELETE /api/search/recent
func (sc *SearchController) ClearRecent(c *gin.Context) {
	if err := sc.service.ClearRecentSearches(GetUserID(c)); err != nil {
		respondInternalError(c, err, "clear recent searches")
		return
	}
	c.Status(http.StatusNoContent)
}
