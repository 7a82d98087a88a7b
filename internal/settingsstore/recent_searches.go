package settingsstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/hikam/internal/arabic"
	"github.com/mrlokans/hikam/internal/entities"
)

const DefaultMaxRecentSearches = 10

// RecentSearches keeps each user's latest queries, most recent first.
// Queries that normalize to the same form count as one entry.
type RecentSearches struct {
	db  SettingsDB
	max int
}

func NewRecentSearches(db SettingsDB, limit int) *RecentSearches {
	if limit <= 0 {
		limit = DefaultMaxRecentSearches
	}
	return &RecentSearches{db: db, max: limit}
}

func RecentSearchesKey(userID uint) string {
	return fmt.Sprintf("%s%d", entities.SettingKeyRecentSearchesPrefix, userID)
}

// List returns the user's recent searches. A corrupt entry reads as empty.
func (r *RecentSearches) List(userID uint) ([]string, error) {
	setting, err := r.db.GetSetting(RecentSearchesKey(userID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var list []string
	if err := json.Unmarshal([]byte(setting.Value), &list); err != nil || list == nil {
		return []string{}, nil
	}
	return list, nil
}

// Add records query as the most recent search and returns the updated list.
// Blank queries are ignored.
func (r *RecentSearches) Add(userID uint, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	current, err := r.List(userID)
	if err != nil {
		return nil, err
	}
	key := arabic.Normalize(query)
	if key == "" {
		return current, nil
	}

	updated := make([]string, 0, r.max)
	updated = append(updated, query)
	for _, existing := range current {
		if len(updated) == r.max {
			break
		}
		if arabic.Normalize(existing) == key {
			continue
		}
		updated = append(updated, existing)
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return nil, err
	}
	if err := r.db.SetSetting(RecentSearchesKey(userID), string(data)); err != nil {
		return nil, fmt.Errorf("failed to save recent searches: %w", err)
	}
	return updated, nil
}

func (r *RecentSearches) Clear(userID uint) error {
	err := r.db.DeleteSetting(RecentSearchesKey(userID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
