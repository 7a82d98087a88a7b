// Package quotes provides database operations for the user's quote collection.
//
// # Usage
//
//	repo := quotes.NewRepository(db)
//	list, err := repo.ListForUser(userID, quotes.Filter{FavoritesOnly: true})
package quotes

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/hikam/internal/entities"
)

var ErrEmptyText = errors.New("quote text is required")

// Filter narrows ListForUser. Zero values match everything.
type Filter struct {
	Category      string
	FavoritesOnly bool
}

// Repository handles all quote database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new quotes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new quote. The ID is generated when empty.
func (r *Repository) Create(quote *entities.Quote) error {
	if strings.TrimSpace(quote.Text) == "" {
		return ErrEmptyText
	}
	return r.db.Create(quote).Error
}

// Get returns the user's quote or gorm.ErrRecordNotFound.
func (r *Repository) Get(id string, userID uint) (*entities.Quote, error) {
	var quote entities.Quote
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// Update saves the editable fields of a quote owned by quote.UserID.
func (r *Repository) Update(quote *entities.Quote) error {
	if strings.TrimSpace(quote.Text) == "" {
		return ErrEmptyText
	}
	result := r.db.Model(&entities.Quote{}).
		Where("id = ? AND user_id = ?", quote.ID, quote.UserID).
		Updates(map[string]any{
			"text":        quote.Text,
			"source":      quote.Source,
			"category":    quote.Category,
			"is_favorite": quote.IsFavorite,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft-deletes the user's quote.
func (r *Repository) Delete(id string, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Quote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForUser returns the user's quotes, newest first.
func (r *Repository) ListForUser(userID uint, filter Filter) ([]entities.Quote, error) {
	var quotes []entities.Quote
	query := r.db.Where("user_id = ?", userID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.FavoritesOnly {
		query = query.Where("is_favorite = ?", true)
	}
	err := query.Order("created_at DESC, id ASC").Find(&quotes).Error
	return quotes, err
}

// ExistsWithText reports whether the user already has a quote with this exact text.
func (r *Repository) ExistsWithText(userID uint, text string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Quote{}).
		Where("user_id = ? AND text = ?", userID, text).
		Count(&count).Error
	return count > 0, err
}

// Categories returns the user's distinct non-empty categories, sorted.
func (r *Repository) Categories(userID uint) ([]string, error) {
	var categories []string
	err := r.db.Model(&entities.Quote{}).
		Where("user_id = ? AND category <> ''", userID).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *Repository) CountForUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Quote{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// GetScheduledFor returns the quote scheduled for the calendar day of day.
func (r *Repository) GetScheduledFor(userID uint, day time.Time) (*entities.Quote, error) {
	start := DayStart(day)
	var quote entities.Quote
	err := r.db.Where("user_id = ? AND scheduled_date >= ? AND scheduled_date < ?",
		userID, start, start.AddDate(0, 0, 1)).
		Order("updated_at DESC").
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// SetScheduledDate schedules the user's quote for the calendar day of day.
func (r *Repository) SetScheduledDate(id string, userID uint, day time.Time) (*entities.Quote, error) {
	start := DayStart(day)
	result := r.db.Model(&entities.Quote{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("scheduled_date", start)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.Get(id, userID)
}

// NextUnscheduled returns the quote that was never scheduled, or scheduled
// longest ago. Ties go to the oldest quote.
func (r *Repository) NextUnscheduled(userID uint) (*entities.Quote, error) {
	var quote entities.Quote
	err := r.db.Where("user_id = ?", userID).
		Order("scheduled_date IS NOT NULL, scheduled_date ASC, created_at ASC, id ASC").
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// UserIDs returns every user that owns at least one quote.
func (r *Repository) UserIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entities.Quote{}).
		Distinct("user_id").
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

// DayStart truncates t to midnight UTC of its calendar day.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
