package entrypoint

import (
	"context"
	"fmt"
	"log"

	"github.com/mrlokans/hikam/internal/analytics"
	"github.com/mrlokans/hikam/internal/cache"
	"github.com/mrlokans/hikam/internal/config"
	"github.com/mrlokans/hikam/internal/database"
	analyticsdb "github.com/mrlokans/hikam/internal/database/analytics"
	"github.com/mrlokans/hikam/internal/database/favourites"
	"github.com/mrlokans/hikam/internal/database/quotes"
	"github.com/mrlokans/hikam/internal/database/reading"
	"github.com/mrlokans/hikam/internal/database/settings"
	"github.com/mrlokans/hikam/internal/database/users"
	"github.com/mrlokans/hikam/internal/importers"
	"github.com/mrlokans/hikam/internal/search"
	"github.com/mrlokans/hikam/internal/services"
	"github.com/mrlokans/hikam/internal/settingsstore"
)

// App holds the components shared by the server and the CLI commands.
// Background workers (task queue, scheduler, watcher) are started by Run only.
type App struct {
	Config *config.Config

	DB        *database.Database
	Quotes    *services.QuoteService
	Importer  *services.ImportService
	Pipeline  *importers.Pipeline
	Reading   *reading.Repository
	Users     *users.Repository
	Settings  *settingsstore.SettingsStore
	Analytics *analyticsdb.Repository
	Stats     *analytics.Service
	// Events is nil when analytics are disabled.
	Events *analytics.Queue

	quoteRepo *quotes.Repository
	registry  *search.Registry
	cache     *cache.Cache
}

// NewApp opens the database and builds the services on top of it.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	quoteCache, err := cache.New(cfg.Cache.TTL)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	app := &App{
		Config:    cfg,
		DB:        db,
		Reading:   reading.NewRepository(db.DB),
		Users:     users.NewRepository(db.DB),
		Analytics: analyticsdb.NewRepository(db.DB),
		quoteRepo: quotes.NewRepository(db.DB),
		registry:  search.NewRegistry(search.BindingConfigFromConfig(cfg.Search)),
		cache:     quoteCache,
	}

	settingsRepo := settings.NewRepository(db.DB)
	app.Settings = settingsstore.New(settingsRepo)
	favouriteRepo := favourites.NewRepository(db.DB)

	deps := services.QuoteServiceDeps{
		Quotes:     app.quoteRepo,
		Favourites: favouriteRepo,
		Registry:   app.registry,
		Cache:      quoteCache,
		Recent:     settingsstore.NewRecentSearches(settingsRepo, cfg.History.MaxRecent),
		Search:     search.OptionsFromConfig(cfg.Search),
	}
	if cfg.Analytics.Enabled {
		app.Events = analytics.NewQueue(app.Analytics, analytics.QueueConfig{
			BatchSize:     cfg.Analytics.BatchSize,
			BufferSize:    cfg.Analytics.BufferSize,
			FlushInterval: cfg.Analytics.FlushInterval,
		})
		deps.Events = app.Events
	}

	app.Quotes = services.NewQuoteService(deps)
	app.Importer = services.NewImportService(app.Quotes)
	app.Pipeline = importers.NewPipeline(app.Importer)
	app.Stats = analytics.NewService(app.Analytics, app.quoteRepo, favouriteRepo)

	return app, nil
}

// ResolveUser maps a username or numeric ID to a user ID. An empty ref is
// the default user of unauthenticated mode.
func (a *App) ResolveUser(ref string) (uint, error) {
	if ref == "" || ref == "0" {
		return 0, nil
	}
	user, err := a.Users.Resolve(ref)
	if err != nil {
		return 0, fmt.Errorf("unknown user %q: %w", ref, err)
	}
	return user.ID, nil
}

// WarmIndexes builds the search index of every user up front.
func (a *App) WarmIndexes(ctx context.Context) {
	warmed, err := a.Quotes.WarmIndexes(ctx)
	if err != nil {
		log.Printf("[SEARCH] Failed to warm indexes: %v", err)
		return
	}
	log.Printf("[SEARCH] Built indexes for %d user(s)", warmed)
}

// Close flushes pending analytics and releases every resource.
func (a *App) Close() error {
	if a.Events != nil {
		a.Events.Close()
		log.Printf("[ANALYTICS] Queue closed: saved=%d dropped=%d failed=%d",
			a.Events.Saved(), a.Events.Dropped(), a.Events.Failed())
	}
	a.registry.Close()
	if err := a.cache.Close(); err != nil {
		log.Printf("Error closing cache: %v", err)
	}
	return a.DB.Close()
}
