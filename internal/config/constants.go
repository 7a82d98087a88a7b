package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./hikam.db"

	// DefaultDailyQuoteSchedule assigns the quote of the day at 06:00
	DefaultDailyQuoteSchedule = "0 6 * * *"
)
