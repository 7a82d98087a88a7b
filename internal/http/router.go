package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hikam/internal/auth"
	"github.com/mrlokans/hikam/internal/demo"
	"github.com/mrlokans/hikam/internal/entities"
)

// NewRouter creates the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(auth.SecurityHeaders())

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.LoadAndSave())
	}

	// The middleware injects the default user itself when auth is off.
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	demoMiddleware := demo.NewMiddleware(cfg.DemoMode)
	if demoMiddleware.IsEnabled() {
		router.Use(demoMiddleware.InjectContext())
		router.Use(demoMiddleware.Handler())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	if w, ok := cfg.Tasks.(WorkerStatus); ok {
		health.WithWorker(w)
	}
	if q, ok := cfg.Events.(QueueCounters); ok {
		health.WithEventQueue(q)
	}
	router.GET("/health", health.Status)
	router.GET("/ping", Ping)

	api := router.Group("/api")

	if cfg.AuthService != nil && cfg.AuthService.Enabled() {
		authController := auth.NewController(cfg.AuthService, cfg.SessionManager, cfg.RateLimiter)
		authController.RegisterRoutes(api.Group("/auth"))
	}

	requireEditor := func(c *gin.Context) { c.Next() }
	requireAdmin := requireEditor
	if cfg.AuthMiddleware != nil {
		requireEditor = cfg.AuthMiddleware.RequireRole(entities.UserRoleAdmin, entities.UserRoleEditor)
		requireAdmin = cfg.AuthMiddleware.RequireRole(entities.UserRoleAdmin)
	}

	if cfg.Quotes != nil {
		quotes := NewQuotesController(cfg.Quotes, cfg.Importer)
		api.GET("/quotes", quotes.List)
		api.GET("/quotes/categories", quotes.Categories)
		api.GET("/quotes/today", quotes.Today)
		api.GET("/quotes/export", quotes.Export)
		api.GET("/quotes/:id", quotes.Get)
		api.POST("/quotes", requireEditor, quotes.Create)
		api.PUT("/quotes/:id", requireEditor, quotes.Update)
		api.DELETE("/quotes/:id", requireEditor, quotes.Delete)
		api.PUT("/quotes/:id/schedule", requireEditor, quotes.Schedule)
		if cfg.Importer != nil {
			api.POST("/quotes/import", requireEditor, quotes.Import)
		}

		favourites := NewFavouritesController(cfg.Quotes)
		api.POST("/quotes/:id/favourite", favourites.AddFavourite)
		api.DELETE("/quotes/:id/favourite", favourites.RemoveFavourite)
		api.POST("/quotes/:id/favourite/toggle", favourites.ToggleFavourite)
		api.GET("/favourites", favourites.List)
		api.GET("/favourites/count", favourites.Count)

		searchController := NewSearchController(cfg.Quotes)
		api.GET("/search", searchController.Search)
		api.GET("/search/suggest", searchController.Suggest)
		api.GET("/search/status", searchController.Status)
		api.POST("/search/reindex", searchController.Reindex)
		api.GET("/search/recent", searchController.Recent)
		api.DELETE("/search/recent", searchController.ClearRecent)
	}

	if cfg.Reading != nil {
		books := NewBooksController(cfg.Reading, cfg.Events)
		api.GET("/books", books.List)
		api.GET("/books/:id", books.Get)
		api.GET("/books/:id/pages/:page", books.Page)
		api.GET("/books/:id/progress", books.GetProgress)
		api.PUT("/books/:id/progress", books.SaveProgress)
	}

	if cfg.Events != nil && cfg.Stats != nil {
		analyticsController := NewAnalyticsController(cfg.Events, cfg.Stats)
		api.POST("/analytics/events", analyticsController.Track)
		api.GET("/analytics/stats", analyticsController.Stats)
	}

	if cfg.DailyQuoteSettings != nil {
		ctx := cfg.SchedulerContext
		if ctx == nil {
			ctx = context.Background()
		}
		settings := NewSettingsController(ctx, cfg.DailyQuoteSettings, cfg.Scheduler)
		api.GET("/settings/daily-quote", settings.GetDailyQuote)
		api.PUT("/settings/daily-quote", requireAdmin, settings.UpdateDailyQuote)
		api.DELETE("/settings/daily-quote", requireAdmin, settings.ResetDailyQuote)
		api.POST("/settings/daily-quote/run", requireAdmin, settings.RunDailyQuote)
	}

	if cfg.Tasks != nil {
		tasksController := NewTasksController(cfg.Tasks)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}
