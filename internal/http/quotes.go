package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hikam/internal/database/quotes"
	"github.com/mrlokans/hikam/internal/exporters"
	"github.com/mrlokans/hikam/internal/services"
)

type QuotesController struct {
	service  *services.QuoteService
	importer *services.ImportService
}

func NewQuotesController(service *services.QuoteService, importer *services.ImportService) *QuotesController {
	return &QuotesController{service: service, importer: importer}
}

// List handles GET /api/quotes?category=&favorites=
func (qc *QuotesController) List(c *gin.Context) {
	favourites, ok := parseBoolQuery(c, "favorites")
	if !ok {
		return
	}
	filter := quotes.Filter{Category: c.Query("category")}
	if favourites != nil {
		filter.FavoritesOnly = *favourites
	}

	list, err := qc.service.List(GetUserID(c), filter)
	if err != nil {
		respondInternalError(c, err, "list quotes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": list, "total": len(list)})
}

// Get handles GET /api/quotes/:id
func (qc *QuotesController) Get(c *gin.Context) {
	quote, err := qc.service.Get(GetUserID(c), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "quote", "get quote")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Create handles POST /api/quotes
func (qc *QuotesController) Create(c *gin.Context) {
	var input services.QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	quote, err := qc.service.Create(c.Request.Context(), GetUserID(c), input)
	if err != nil {
		respondStoreError(c, err, "quote", "create quote")
		return
	}
	c.JSON(http.StatusCreated, quote)
}

// Update handles PUT /api/quotes/:id
func (qc *QuotesController) Update(c *gin.Context) {
	var input services.QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	quote, err := qc.service.Update(c.Request.Context(), GetUserID(c), c.Param("id"), input)
	if err != nil {
		respondStoreError(c, err, "quote", "update quote")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Delete handles DELETE /api/quotes/:id
func (qc *QuotesController) Delete(c *gin.Context) {
	if err := qc.service.Delete(c.Request.Context(), GetUserID(c), c.Param("id")); err != nil {
		respondStoreError(c, err, "quote", "delete quote")
		return
	}
	c.Status(http.StatusNoContent)
}

// Categories handles GET /api/quotes/categories
func (qc *QuotesController) Categories(c *gin.Context) {
	categories, err := qc.service.Categories(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list categories")
		return
	}
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Today handles GET /api/quotes/today
func (qc *QuotesController) Today(c *gin.Context) {
	quote, err := qc.service.Today(GetUserID(c))
	if errors.Is(err, services.ErrNoQuotes) {
		respondNotFound(c, "quote")
		return
	}
	if err != nil {
		respondInternalError(c, err, "today's quote")
		return
	}
	c.JSON(http.StatusOK, quote)
}

type scheduleRequest struct {
	Date string `json:"date" binding:"required"`
}

// Schedule handles PUT /api/quotes/:id/schedule with {"date": "2006-01-02"}
func (qc *QuotesController) Schedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "date is required")
		return
	}
	day, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		respondBadRequest(c, "date must be YYYY-MM-DD")
		return
	}
	quote, err := qc.service.Schedule(GetUserID(c), c.Param("id"), day)
	if err != nil {
		respondStoreError(c, err, "quote", "schedule quote")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Import handles POST /api/quotes/import with a JSON array of quotes.
func (qc *QuotesController) Import(c *gin.Context) {
	var inputs []services.QuoteInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		respondBadRequest(c, "expected a JSON array of quotes")
		return
	}
	result, err := qc.importer.ImportQuotes(c.Request.Context(), GetUserID(c), inputs)
	if err != nil {
		respondInternalError(c, err, "import quotes")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Export handles GET /api/quotes/export?format=markdown|json&category=&favorites=
func (qc *QuotesController) Export(c *gin.Context) {
	favourites, ok := parseBoolQuery(c, "favorites")
	if !ok {
		return
	}
	filter := quotes.Filter{Category: c.Query("category")}
	if favourites != nil {
		filter.FavoritesOnly = *favourites
	}

	exporter, err := exporters.ForFormat(c.Query("format"), c.Query("title"))
	if err != nil {
		respondBadRequest(c, "format must be markdown or json")
		return
	}

	list, err := qc.service.List(GetUserID(c), filter)
	if err != nil {
		respondInternalError(c, err, "export quotes")
		return
	}

	filename := exporters.FileName("hikam", time.Now(), exporter)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", exporter.ContentType())
	c.Status(http.StatusOK)
	if _, err := exporter.Export(c.Writer, list); err != nil {
		_ = c.Error(err)
	}
}
