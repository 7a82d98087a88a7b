package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/hikam/internal/auth"
	"github.com/mrlokans/hikam/internal/database/quotes"
	"github.com/mrlokans/hikam/internal/database/reading"
)

// GetUserID returns the caller resolved by the auth middleware.
func GetUserID(c *gin.Context) uint {
	return auth.GetUserID(c)
}

// ErrorResponse is the body of every API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// PaginatedResponse wraps one page of results.
type PaginatedResponse struct {
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs err and hides it from the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondStoreError maps repository errors to status codes.
func respondStoreError(c *gin.Context, err error, resource, context string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondNotFound(c, resource)
	case errors.Is(err, quotes.ErrEmptyText):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "empty_text"})
	case errors.Is(err, reading.ErrPageOutOfRange):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "page_out_of_range"})
	default:
		respondInternalError(c, err, context)
	}
}

// parseIDParam extracts an unsigned integer path parameter, answering 400 when invalid.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseIntQuery returns fallback when the parameter is absent and answers
// 400 when it is present but not an integer in [lo, hi].
func parseIntQuery(c *gin.Context, name string, fallback, lo, hi int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return n, true
}

// parseOptionalIntQuery returns nil when the parameter is absent.
func parseOptionalIntQuery(c *gin.Context, name string, lo, hi int) (*int, bool) {
	if strings.TrimSpace(c.Query(name)) == "" {
		return nil, true
	}
	n, ok := parseIntQuery(c, name, 0, lo, hi)
	if !ok {
		return nil, false
	}
	return &n, true
}

// parseBoolQuery returns nil when the parameter is absent.
func parseBoolQuery(c *gin.Context, name string) (*bool, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		respondBadRequest(c, "invalid "+name)
		return nil, false
	}
	return &v, true
}
