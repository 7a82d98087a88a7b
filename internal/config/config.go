package config

import (
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // No authentication required (default)
	AuthModeLocal AuthMode = "local" // Local user database with sessions
)

type (
	Config struct {
		HTTP
		Global
		Database
		Search
		History
		Cache
		Tasks
		Schedule
		Analytics
		Auth
		Import
		Demo
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Search struct {
		MaxResults   int
		MinScore     int
		RebuildDelay time.Duration // Deferral before an index build starts

		// Ranking weights, see search.DefaultWeights
		ExactWeight     int
		AffixWeight     int
		SynonymWeight   int
		ShortBonus      int
		VeryShortBonus  int
		ShortLength     int
		VeryShortLength int
	}
	History struct {
		MaxRecent int // Recent searches kept per user
	}
	Cache struct {
		TTL time.Duration // Lifetime of cached quote lists
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration // Stuck tasks return to the queue after this
		CleanupInterval time.Duration
	}
	Schedule struct {
		Enabled bool
		Cron    string // Cron format: "0 6 * * *" = daily at 06:00
	}
	Analytics struct {
		Enabled       bool
		BatchSize     int
		BufferSize    int
		FlushInterval time.Duration
		RetentionDays int // Days to keep analytics events (default: 90)
	}
	Auth struct {
		Mode            AuthMode
		SessionLifetime time.Duration
		TokenExpiry     time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS

		MaxLoginAttempts int           // Max failed attempts before lockout (default: 5)
		LockoutDuration  time.Duration // How long to lock out (default: 30m)
	}
	Import struct {
		WatchDir string // Directory watched for *.json quote files, empty disables
		UserID   uint   // Owner of quotes imported from the watch directory
	}
	Demo struct {
		Enabled bool // Read-only mode: writes other than favourites and reading progress are rejected
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Search defaults
	v.SetDefault("search_max_results", 50)
	v.SetDefault("search_min_score", 1)
	v.SetDefault("search_rebuild_delay", "50ms")
	v.SetDefault("search_exact_weight", 10)
	v.SetDefault("search_affix_weight", 5)
	v.SetDefault("search_synonym_weight", 7)
	v.SetDefault("search_short_bonus", 2)
	v.SetDefault("search_very_short_bonus", 3)
	v.SetDefault("search_short_length", 100)
	v.SetDefault("search_very_short_length", 50)
	v.SetDefault("search_history_size", 10)

	v.SetDefault("cache_ttl", "5m")

	// Quote of the day
	v.SetDefault("daily_quote_enabled", true)
	v.SetDefault("daily_quote_schedule", DefaultDailyQuoteSchedule)

	// Analytics defaults
	v.SetDefault("analytics_enabled", true)
	v.SetDefault("analytics_batch_size", 20)
	v.SetDefault("analytics_buffer_size", 256)
	v.SetDefault("analytics_flush_interval", "10s")
	v.SetDefault("analytics_retention_days", 90)

	// Auth defaults
	v.SetDefault("auth_mode", "none")
	v.SetDefault("auth_session_lifetime", "24h") // 24 hours
	v.SetDefault("auth_token_expiry", "720h")    // 30 days
	v.SetDefault("auth_bcrypt_cost", 12)         // bcrypt cost factor
	v.SetDefault("auth_secure_cookies", true)    // HTTPS-only cookies
	v.SetDefault("auth_max_login_attempts", 5)   // Max failed attempts
	v.SetDefault("auth_lockout_duration", "30m") // Lockout duration

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	v.SetDefault("import_watch_dir", "")
	v.SetDefault("import_user_id", 0)
	v.SetDefault("demo_mode", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Search: Search{
			MaxResults:      v.GetInt("SEARCH_MAX_RESULTS"),
			MinScore:        v.GetInt("SEARCH_MIN_SCORE"),
			RebuildDelay:    v.GetDuration("SEARCH_REBUILD_DELAY"),
			ExactWeight:     v.GetInt("SEARCH_EXACT_WEIGHT"),
			AffixWeight:     v.GetInt("SEARCH_AFFIX_WEIGHT"),
			SynonymWeight:   v.GetInt("SEARCH_SYNONYM_WEIGHT"),
			ShortBonus:      v.GetInt("SEARCH_SHORT_BONUS"),
			VeryShortBonus:  v.GetInt("SEARCH_VERY_SHORT_BONUS"),
			ShortLength:     v.GetInt("SEARCH_SHORT_LENGTH"),
			VeryShortLength: v.GetInt("SEARCH_VERY_SHORT_LENGTH"),
		},
		History: History{
			MaxRecent: v.GetInt("SEARCH_HISTORY_SIZE"),
		},
		Cache: Cache{
			TTL: v.GetDuration("CACHE_TTL"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Schedule: Schedule{
			Enabled: v.GetBool("DAILY_QUOTE_ENABLED"),
			Cron:    v.GetString("DAILY_QUOTE_SCHEDULE"),
		},
		Analytics: Analytics{
			Enabled:       v.GetBool("ANALYTICS_ENABLED"),
			BatchSize:     v.GetInt("ANALYTICS_BATCH_SIZE"),
			BufferSize:    v.GetInt("ANALYTICS_BUFFER_SIZE"),
			FlushInterval: v.GetDuration("ANALYTICS_FLUSH_INTERVAL"),
			RetentionDays: v.GetInt("ANALYTICS_RETENTION_DAYS"),
		},
		Auth: Auth{
			Mode:             AuthMode(v.GetString("AUTH_MODE")),
			SessionLifetime:  v.GetDuration("AUTH_SESSION_LIFETIME"),
			TokenExpiry:      v.GetDuration("AUTH_TOKEN_EXPIRY"),
			BcryptCost:       v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:    v.GetBool("AUTH_SECURE_COOKIES"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Import: Import{
			WatchDir: v.GetString("IMPORT_WATCH_DIR"),
			UserID:   v.GetUint("IMPORT_USER_ID"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
	}
}
