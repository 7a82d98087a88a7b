package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Recent searches are stored per user under this prefix followed by the user ID.
	SettingKeyRecentSearchesPrefix = "hikam.recent_searches."

	// Quote of the day settings
	SettingKeyDailyQuoteEnabled     = "daily_quote_enabled"
	SettingKeyDailyQuoteSchedule    = "daily_quote_schedule"
	SettingKeyDailyQuoteLastAt      = "daily_quote_last_at"
	SettingKeyDailyQuoteLastStatus  = "daily_quote_last_status"
	SettingKeyDailyQuoteLastMessage = "daily_quote_last_message"
)
