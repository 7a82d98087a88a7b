// Package users provides database lookups for user accounts.
//
// Account creation and credentials live in internal/auth; this package serves
// the callers that only need to resolve a user.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.Resolve("reader")
package users

import (
	"strconv"

	"gorm.io/gorm"

	"github.com/mrlokans/hikam/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (r *Repository) GetUserByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Resolve accepts either a numeric ID or a username.
func (r *Repository) Resolve(ref string) (*entities.User, error) {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return r.GetUserByID(uint(id))
	}
	return r.GetUserByUsername(ref)
}
