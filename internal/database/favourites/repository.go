// Package favourites provides database operations for favourite quote management.
//
// This package implements the FavouritesStore interface defined in internal/http/favourites.go.
//
// # Usage
//
//	repo := favourites.NewRepository(db)
//	quotes, total, err := repo.GetFavouriteQuotes(userID, 20, 0)
package favourites

import (
	"gorm.io/gorm"

	"github.com/mrlokans/hikam/internal/entities"
)

// Repository handles all favourites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SetQuoteFavourite updates the favourite status of the user's quote.
func (r *Repository) SetQuoteFavourite(quoteID string, userID uint, isFavourite bool) error {
	result := r.db.Model(&entities.Quote{}).
		Where("id = ? AND user_id = ?", quoteID, userID).
		Update("is_favorite", isFavourite)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetFavouriteQuotes returns the user's favourite quotes with pagination,
// most recently changed first. Returns the quotes, total count, and any error.
func (r *Repository) GetFavouriteQuotes(userID uint, limit, offset int) ([]entities.Quote, int64, error) {
	var quotes []entities.Quote
	var total int64

	base := func() *gorm.DB {
		return r.db.Model(&entities.Quote{}).Where("is_favorite = ? AND user_id = ?", true, userID)
	}

	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base().Order("updated_at DESC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&quotes).Error
	return quotes, total, err
}

// GetFavouriteCount returns the number of favourite quotes of the user.
func (r *Repository) GetFavouriteCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Quote{}).
		Where("is_favorite = ? AND user_id = ?", true, userID).
		Count(&count).Error
	return count, err
}
