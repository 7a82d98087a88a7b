package http

import (
	"context"

	"github.com/mrlokans/hikam/internal/auth"
	"github.com/mrlokans/hikam/internal/database"
	"github.com/mrlokans/hikam/internal/services"
)

// RouterConfig carries the dependencies of NewRouter. Optional parts are
// left nil and their routes are not mounted.
type RouterConfig struct {
	// Core dependencies
	Quotes   *services.QuoteService
	Importer *services.ImportService
	Database *database.Database
	Reading  ReadingStore

	// Analytics
	Events EventTracker
	Stats  StatsProvider

	// Quote of the day
	DailyQuoteSettings DailyQuoteSettings
	Scheduler          DailyQuoteRunner
	// SchedulerContext bounds scheduler restarts triggered from settings.
	SchedulerContext context.Context

	// Task queue (optional)
	Tasks TaskStatusReader

	// Authentication
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	RateLimiter    *auth.RateLimiter

	// DemoMode rejects most writes
	DemoMode bool

	// Application info
	Version string
}
