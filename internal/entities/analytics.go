package entities

import "time"

type AnalyticsEventType string

const (
	AnalyticsEventView       AnalyticsEventType = "view"
	AnalyticsEventFavorite   AnalyticsEventType = "favorite"
	AnalyticsEventUnfavorite AnalyticsEventType = "unfavorite"
	AnalyticsEventSearch     AnalyticsEventType = "search"
	AnalyticsEventShare      AnalyticsEventType = "share"
	AnalyticsEventRead       AnalyticsEventType = "read"
)

// ValidAnalyticsEventTypes lists the event types accepted from clients.
var ValidAnalyticsEventTypes = map[AnalyticsEventType]bool{
	AnalyticsEventView:       true,
	AnalyticsEventFavorite:   true,
	AnalyticsEventUnfavorite: true,
	AnalyticsEventSearch:     true,
	AnalyticsEventShare:      true,
	AnalyticsEventRead:       true,
}

type AnalyticsEvent struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	UserID    uint               `gorm:"index" json:"user_id"`
	Type      AnalyticsEventType `gorm:"index;size:20" json:"type"`
	QuoteID   string             `gorm:"index;size:36" json:"quote_id,omitempty"`
	BookID    uint               `json:"book_id,omitempty"`
	Page      int                `json:"page,omitempty"`
	Query     string             `gorm:"size:256" json:"query,omitempty"`
	CreatedAt time.Time          `gorm:"index" json:"created_at"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
