package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hikam/internal/services"
)

type FavouritesController struct {
	service *services.QuoteService
}

func NewFavouritesController(service *services.QuoteService) *FavouritesController {
	return &FavouritesController{service: service}
}

// AddFavourite handles POST /api/quotes/:id/favourite
func (fc *FavouritesController) AddFavourite(c *gin.Context) {
	fc.set(c, true)
}

// RemoveFavourite handles DELETE /api/quotes/:id/favourite
func (fc *FavouritesController) RemoveFavourite(c *gin.Context) {
	fc.set(c, false)
}

// ToggleFavourite handles POST /api/quotes/:id/favourite/toggle
func (fc *FavouritesController) ToggleFavourite(c *gin.Context) {
	quote, err := fc.service.ToggleFavourite(c.Request.Context(), GetUserID(c), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "quote", "toggle favourite")
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (fc *FavouritesController) set(c *gin.Context, favourite bool) {
	quote, err := fc.service.SetFavourite(c.Request.Context(), GetUserID(c), c.Param("id"), favourite)
	if err != nil {
		respondStoreError(c, err, "quote", "set favourite")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// List handles GET /api/favourites?limit=&offset=
func (fc *FavouritesController) List(c *gin.Context) {
	limit, ok := parseIntQuery(c, "limit", 50, 1, 500)
	if !ok {
		return
	}
	offset, ok := parseIntQuery(c, "offset", 0, 0, 1<<30)
	if !ok {
		return
	}

	list, total, err := fc.service.Favourites(GetUserID(c), limit, offset)
	if err != nil {
		respondInternalError(c, err, "list favourites")
		return
	}
	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    list,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(list)) < total,
	})
}

// Count handles GET /api/favourites/count
func (fc *FavouritesController) Count(c *gin.Context) {
	count, err := fc.service.FavouriteCount(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "count favourites")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
