package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hikam/internal/entities"
)

// ReadingStore serves books page by page and bookmarks reading progress.
type ReadingStore interface {
	ListBooks(kind entities.BookKind) ([]entities.Book, error)
	GetBook(id uint) (*entities.Book, error)
	GetPage(bookID uint, number int) (*entities.BookPage, error)
	SaveProgress(userID, bookID uint, page int) (*entities.ReadingProgress, error)
	GetProgress(userID, bookID uint) (*entities.ReadingProgress, error)
}

// EventTracker accepts analytics events without blocking.
type EventTracker interface {
	Track(event entities.AnalyticsEvent) bool
}

type BooksController struct {
	store  ReadingStore
	events EventTracker
}

func NewBooksController(store ReadingStore, events EventTracker) *BooksController {
	return &BooksController{store: store, events: events}
}

// List handles GET /api/books?kind=
func (bc *BooksController) List(c *gin.Context) {
	kind := entities.BookKind(c.Query("kind"))
	switch kind {
	case "", entities.BookKindBook, entities.BookKindDevotional:
	default:
		respondBadRequest(c, "invalid kind")
		return
	}

	books, err := bc.store.ListBooks(kind)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}

// Get handles GET /api/books/:id
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := bc.store.GetBook(id)
	if err != nil {
		respondStoreError(c, err, "book", "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Page handles GET /api/books/:id/pages/:page
func (bc *BooksController) Page(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	number, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		respondBadRequest(c, "invalid page")
		return
	}

	page, err := bc.store.GetPage(id, number)
	if err != nil {
		respondStoreError(c, err, "book", "get page")
		return
	}
	if bc.events != nil {
		bc.events.Track(entities.AnalyticsEvent{
			UserID: GetUserID(c),
			Type:   entities.AnalyticsEventRead,
			BookID: id,
			Page:   number,
		})
	}
	c.JSON(http.StatusOK, page)
}

// GetProgress handles GET /api/books/:id/progress
func (bc *BooksController) GetProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	progress, err := bc.store.GetProgress(GetUserID(c), id)
	if err != nil {
		respondStoreError(c, err, "reading progress", "get progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}

type progressRequest struct {
	Page int `json:"page" binding:"required"`
}

// SaveProgress handles PUT /api/books/:id/progress with {"page": n}
func (bc *BooksController) SaveProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "page is required")
		return
	}
	progress, err := bc.store.SaveProgress(GetUserID(c), id, req.Page)
	if err != nil {
		respondStoreError(c, err, "book", "save progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}
