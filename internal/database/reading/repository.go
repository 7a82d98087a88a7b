// Package reading provides database operations for books, their pages and
// per-user reading progress.
//
// # Usage
//
//	repo := reading.NewRepository(db)
//	page, err := repo.GetPage(bookID, 1)
//	err = repo.SaveProgress(userID, bookID, 2)
package reading

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/hikam/internal/entities"
)

var ErrPageOutOfRange = errors.New("page out of range")

// Repository handles all reading database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reading repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook stores a book with its pages. Pages without a number are
// numbered in slice order starting at 1.
func (r *Repository) CreateBook(book *entities.Book) error {
	for i := range book.Pages {
		if book.Pages[i].Number == 0 {
			book.Pages[i].Number = i + 1
		}
	}
	if err := r.db.Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	book.PageCount = len(book.Pages)
	return nil
}

// ListBooks returns all books without page content, optionally of one kind.
func (r *Repository) ListBooks(kind entities.BookKind) ([]entities.Book, error) {
	var books []entities.Book
	query := r.db.Order("title ASC")
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if err := query.Find(&books).Error; err != nil {
		return nil, err
	}

	counts, err := r.pageCounts()
	if err != nil {
		return nil, err
	}
	for i := range books {
		books[i].PageCount = counts[books[i].ID]
	}
	return books, nil
}

// GetBook returns a book without page content.
func (r *Repository) GetBook(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	count, err := r.PageCount(id)
	if err != nil {
		return nil, err
	}
	book.PageCount = count
	return &book, nil
}

// GetPage returns page number (1-based) of a book.
func (r *Repository) GetPage(bookID uint, number int) (*entities.BookPage, error) {
	if number < 1 {
		return nil, ErrPageOutOfRange
	}
	var page entities.BookPage
	err := r.db.Where("book_id = ? AND number = ?", bookID, number).First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if _, bookErr := r.GetBook(bookID); bookErr != nil {
			return nil, bookErr
		}
		return nil, ErrPageOutOfRange
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *Repository) PageCount(bookID uint) (int, error) {
	var count int64
	err := r.db.Model(&entities.BookPage{}).Where("book_id = ?", bookID).Count(&count).Error
	return int(count), err
}

type pageCountRow struct {
	BookID uint
	Count  int
}

func (r *Repository) pageCounts() (map[uint]int, error) {
	var rows []pageCountRow
	err := r.db.Model(&entities.BookPage{}).
		Select("book_id, COUNT(*) as count").
		Group("book_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.BookID] = row.Count
	}
	return counts, nil
}

// SaveProgress bookmarks page of a book for the user.
func (r *Repository) SaveProgress(userID, bookID uint, page int) (*entities.ReadingProgress, error) {
	count, err := r.PageCount(bookID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if _, err := r.GetBook(bookID); err != nil {
			return nil, err
		}
	}
	if page < 1 || page > count {
		return nil, ErrPageOutOfRange
	}

	progress := &entities.ReadingProgress{
		UserID:    userID,
		BookID:    bookID,
		Page:      page,
		UpdatedAt: time.Now(),
	}
	err = r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"page", "updated_at"}),
	}).Create(progress).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save reading progress: %w", err)
	}
	return r.GetProgress(userID, bookID)
}

// GetProgress returns the user's position in a book or gorm.ErrRecordNotFound.
func (r *Repository) GetProgress(userID, bookID uint) (*entities.ReadingProgress, error) {
	var progress entities.ReadingProgress
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
