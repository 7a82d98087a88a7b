package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// IndexRebuilder rebuilds a user's search index synchronously.
type IndexRebuilder interface {
	RefreshIndexNow(ctx context.Context, userID uint) error
}

// RebuildSearchIndexTask reloads one user's quotes and rebuilds their index.
type RebuildSearchIndexTask struct {
	UserID uint `json:"user_id"`
}

// Config returns the queue configuration for index rebuild tasks.
func (t RebuildSearchIndexTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "rebuild_search_index",
		MaxAttempts: 3,
		Backoff:     10 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   6 * time.Hour,
			OnlyFailed: true,
		},
	}
}

// RebuildSearchIndexProcessor creates a processor function for RebuildSearchIndexTask.
func RebuildSearchIndexProcessor(rebuilder IndexRebuilder) backlite.QueueProcessor[RebuildSearchIndexTask] {
	return func(ctx context.Context, task RebuildSearchIndexTask) error {
		if rebuilder == nil {
			return fmt.Errorf("index rebuilder not configured")
		}

		start := time.Now()
		if err := rebuilder.RefreshIndexNow(ctx, task.UserID); err != nil {
			return fmt.Errorf("rebuild search index for user %d: %w", task.UserID, err)
		}

		log.Printf("[TASK] Rebuilt search index for user %d in %s", task.UserID, time.Since(start).Round(time.Millisecond))
		return nil
	}
}

// NewRebuildSearchIndexQueue creates a backlite queue for index rebuild tasks.
func NewRebuildSearchIndexQueue(rebuilder IndexRebuilder) backlite.Queue {
	return backlite.NewQueue(RebuildSearchIndexProcessor(rebuilder))
}
