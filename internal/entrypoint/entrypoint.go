package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/hikam/internal/auth"
	"github.com/mrlokans/hikam/internal/config"
	http_controllers "github.com/mrlokans/hikam/internal/http"
	"github.com/mrlokans/hikam/internal/importers"
	"github.com/mrlokans/hikam/internal/scheduler"
	"github.com/mrlokans/hikam/internal/tasks"
)

// analyticsCleanupSchedule runs the retention cleanup daily at 03:30.
const analyticsCleanupSchedule = "30 3 * * *"

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -2 is SIGINT, plain kill is SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background workers before the listener
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Hikam v%s", version)

	app, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.FromConfig(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewRebuildSearchIndexQueue(app.Quotes),
			tasks.NewCleanupAnalyticsEventsQueue(app.Analytics),
		)
		go taskClient.Start(bgCtx)
		app.Quotes.SetTaskEnqueuer(taskClient)
	}

	if cfg.Demo.Enabled {
		log.Printf("Demo mode enabled - write operations will be blocked")
	}

	app.WarmIndexes(bgCtx)

	dailyQuotes := scheduler.NewDailyQuoteScheduler(app.Quotes, app.Settings)
	if err := dailyQuotes.Start(bgCtx); err != nil {
		log.Printf("Daily quote scheduler: failed to start: %v", err)
	}

	maintenance := startMaintenance(app, taskClient)

	if cfg.Import.WatchDir != "" {
		watcher := importers.NewWatcher(app.Pipeline, importers.WatcherConfig{
			Dir:            cfg.Import.WatchDir,
			UserID:         cfg.Import.UserID,
			ImportExisting: true,
		})
		go func() {
			if err := watcher.Run(bgCtx); err != nil {
				log.Printf("[IMPORT] Watcher stopped: %v", err)
			}
		}()
	}

	routerCfg := http_controllers.RouterConfig{
		Quotes:             app.Quotes,
		Importer:           app.Importer,
		Database:           app.DB,
		Reading:            app.Reading,
		Stats:              app.Stats,
		DailyQuoteSettings: app.Settings,
		Scheduler:          dailyQuotes,
		SchedulerContext:   bgCtx,
		DemoMode:           cfg.Demo.Enabled,
		Version:            version,
	}
	if app.Events != nil {
		routerCfg.Events = app.Events
	}
	if taskClient != nil {
		routerCfg.Tasks = taskClient
	}

	if err := configureAuth(app, &routerCfg); err != nil {
		log.Fatalf("%v", err)
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		<-maintenance.Stop().Done()
		dailyQuotes.Stop()
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		if routerCfg.RateLimiter != nil {
			routerCfg.RateLimiter.Stop()
		}
		bgCancel()
	}

	Serve(router, cfg, onShutdown)
}

// configureAuth wires local accounts and sessions when AUTH_MODE=local.
func configureAuth(app *App, routerCfg *http_controllers.RouterConfig) error {
	cfg := app.Config.Auth
	if cfg.Mode != config.AuthModeLocal {
		log.Printf("Authentication mode: none (no authentication required)")
		routerCfg.AuthMiddleware = auth.NewMiddleware(nil, nil, cfg)
		return nil
	}
	log.Printf("Authentication mode: local")

	authService := auth.NewService(app.DB.DB, cfg)

	sqlDB, err := app.DB.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get SQL DB for sessions: %w", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize session manager: %w", err)
	}

	routerCfg.AuthService = authService
	routerCfg.SessionManager = sessionManager
	routerCfg.AuthMiddleware = auth.NewMiddleware(authService, sessionManager, cfg)
	routerCfg.RateLimiter = auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts: cfg.MaxLoginAttempts,
		Lockout:     cfg.LockoutDuration,
	})

	if hasUsers, _ := authService.HasUsers(); !hasUsers {
		log.Printf("[AUTH] No users found. POST /api/auth/register to create the administrator account.")
	}
	return nil
}

// startMaintenance schedules the daily analytics retention cleanup, through
// the task queue when there is one.
func startMaintenance(app *App, taskClient *tasks.Client) *cron.Cron {
	c := cron.New()
	retention := app.Config.Analytics.RetentionDays
	if retention <= 0 {
		retention = tasks.DefaultAnalyticsRetentionDays
	}

	_, err := c.AddFunc(analyticsCleanupSchedule, func() {
		if taskClient != nil {
			task := tasks.CleanupAnalyticsEventsTask{RetentionDays: retention}
			if _, err := taskClient.Enqueue(context.Background(), task); err != nil {
				log.Printf("[ANALYTICS] Failed to enqueue cleanup: %v", err)
			}
			return
		}
		cutoff := time.Now().UTC().AddDate(0, 0, -retention)
		deleted, err := app.Analytics.DeleteOldEvents(cutoff)
		if err != nil {
			log.Printf("[ANALYTICS] Cleanup failed: %v", err)
			return
		}
		log.Printf("[ANALYTICS] Deleted %d event(s) older than %d days", deleted, retention)
	})
	if err != nil {
		log.Printf("[ANALYTICS] Failed to schedule cleanup: %v", err)
	}
	c.Start()
	return c
}
