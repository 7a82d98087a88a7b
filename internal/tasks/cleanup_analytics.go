package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// DefaultAnalyticsRetentionDays applies when a task carries no retention.
const DefaultAnalyticsRetentionDays = 90

// AnalyticsEventCleaner deletes analytics events recorded before a cutoff.
type AnalyticsEventCleaner interface {
	DeleteOldEvents(olderThan time.Time) (int64, error)
}

// CleanupAnalyticsEventsTask removes analytics events past the retention window.
type CleanupAnalyticsEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for analytics cleanup tasks.
func (t CleanupAnalyticsEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_analytics_events",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupAnalyticsEventsProcessor creates a processor function for CleanupAnalyticsEventsTask.
func CleanupAnalyticsEventsProcessor(cleaner AnalyticsEventCleaner) backlite.QueueProcessor[CleanupAnalyticsEventsTask] {
	return func(ctx context.Context, task CleanupAnalyticsEventsTask) error {
		if cleaner == nil {
			return fmt.Errorf("analytics event cleaner not configured")
		}

		days := task.RetentionDays
		if days <= 0 {
			days = DefaultAnalyticsRetentionDays
		}
		cutoff := time.Now().UTC().AddDate(0, 0, -days)

		deleted, err := cleaner.DeleteOldEvents(cutoff)
		if err != nil {
			return fmt.Errorf("cleanup analytics events: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d analytics events older than %d days", deleted, days)
		return nil
	}
}

// NewCleanupAnalyticsEventsQueue creates a backlite queue for analytics cleanup tasks.
func NewCleanupAnalyticsEventsQueue(cleaner AnalyticsEventCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupAnalyticsEventsProcessor(cleaner))
}
