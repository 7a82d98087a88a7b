package analytics

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/hikam/internal/entities"
)

const saveBatchSize = 100

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveEvents stores a batch of events in one transaction.
func (r *Repository) SaveEvents(events []entities.AnalyticsEvent) error {
	if len(events) == 0 {
		return nil
	}
	now := time.Now()
	for i := range events {
		if events[i].CreatedAt.IsZero() {
			events[i].CreatedAt = now
		}
	}
	return r.db.CreateInBatches(events, saveBatchSize).Error
}

// CountByType returns the user's event counts per type since the given time.
// A zero since counts everything.
func (r *Repository) CountByType(userID uint, since time.Time) (map[entities.AnalyticsEventType]int64, error) {
	type typeCount struct {
		Type  entities.AnalyticsEventType
		Count int64
	}
	var rows []typeCount

	query := r.db.Model(&entities.AnalyticsEvent{}).
		Select("type, COUNT(*) as count").
		Where("user_id = ?", userID)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	if err := query.Group("type").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[entities.AnalyticsEventType]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}

// QuoteCount is the number of events of one type recorded for a quote.
type QuoteCount struct {
	QuoteID string `json:"quote_id"`
	Count   int64  `json:"count"`
}

// TopQuotes returns the quotes with the most events of eventType, busiest first.
func (r *Repository) TopQuotes(userID uint, eventType entities.AnalyticsEventType, limit int) ([]QuoteCount, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []QuoteCount
	err := r.db.Model(&entities.AnalyticsEvent{}).
		Select("quote_id, COUNT(*) as count").
		Where("user_id = ? AND type = ? AND quote_id <> ''", userID, eventType).
		Group("quote_id").
		Order("count DESC, quote_id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// EventsSince retrieves the user's events since a specific time, oldest first.
func (r *Repository) EventsSince(userID uint, since time.Time) ([]entities.AnalyticsEvent, error) {
	var events []entities.AnalyticsEvent
	err := r.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC, id ASC").
		Find(&events).Error
	return events, err
}

// DeleteOldEvents removes events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(olderThan time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", olderThan).Delete(&entities.AnalyticsEvent{})
	return result.RowsAffected, result.Error
}
