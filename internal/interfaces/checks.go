package interfaces

import (
	"github.com/mrlokans/hikam/internal/analytics"
	analyticsdb "github.com/mrlokans/hikam/internal/database/analytics"
	"github.com/mrlokans/hikam/internal/database/favourites"
	"github.com/mrlokans/hikam/internal/database/quotes"
	"github.com/mrlokans/hikam/internal/database/reading"
	"github.com/mrlokans/hikam/internal/database/settings"
	"github.com/mrlokans/hikam/internal/demo"
	"github.com/mrlokans/hikam/internal/http"
	"github.com/mrlokans/hikam/internal/importers"
	"github.com/mrlokans/hikam/internal/scheduler"
	"github.com/mrlokans/hikam/internal/services"
	"github.com/mrlokans/hikam/internal/settingsstore"
	"github.com/mrlokans/hikam/internal/tasks"
)

// Compile-time interface checks.
// These ensure that implementations satisfy their interfaces.
// If an implementation is missing a method, compilation will fail here.

// Data access
var _ services.QuoteStore = (*quotes.Repository)(nil)
var _ services.FavouriteStore = (*favourites.Repository)(nil)
var _ services.RecentSearchStore = (*settingsstore.RecentSearches)(nil)
var _ settingsstore.SettingsDB = (*settings.Repository)(nil)
var _ http.ReadingStore = (*reading.Repository)(nil)
var _ demo.BookCreator = (*reading.Repository)(nil)

// Analytics
var _ analytics.EventStore = (*analyticsdb.Repository)(nil)
var _ analytics.StatsStore = (*analyticsdb.Repository)(nil)
var _ analytics.QuoteCounter = (*quotes.Repository)(nil)
var _ analytics.FavouriteCounter = (*favourites.Repository)(nil)
var _ services.EventTracker = (*analytics.Queue)(nil)
var _ http.EventTracker = (*analytics.Queue)(nil)
var _ http.StatsProvider = (*analytics.Service)(nil)

// Background work
var _ services.TaskEnqueuer = (*tasks.Client)(nil)
var _ http.TaskStatusReader = (*tasks.Client)(nil)
var _ tasks.IndexRebuilder = (*services.QuoteService)(nil)
var _ tasks.AnalyticsEventCleaner = (*analyticsdb.Repository)(nil)

// Quote of the day
var _ scheduler.QuoteAssigner = (*services.QuoteService)(nil)
var _ scheduler.ScheduleSettings = (*settingsstore.SettingsStore)(nil)
var _ http.DailyQuoteSettings = (*settingsstore.SettingsStore)(nil)
var _ http.DailyQuoteRunner = (*scheduler.DailyQuoteScheduler)(nil)

// Import
var _ importers.Converter = (*importers.JSONConverter)(nil)
var _ importers.Converter = (*importers.CSVConverter)(nil)
var _ importers.Converter = (*importers.TextConverter)(nil)
var _ importers.QuoteImporter = (*services.ImportService)(nil)
var _ demo.QuoteImporter = (*services.ImportService)(nil)
