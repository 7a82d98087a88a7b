// Package scheduler runs the periodic quote-of-the-day assignment on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/hikam/internal/entities"
	"github.com/mrlokans/hikam/internal/settingsstore"
)

// QuoteAssigner picks the quote of the day for a user.
type QuoteAssigner interface {
	UserIDs() ([]uint, error)
	EnsureToday(userID uint) (*entities.Quote, bool, error)
}

// ScheduleSettings supplies the schedule and records run outcomes.
type ScheduleSettings interface {
	GetDailyQuoteConfig() settingsstore.DailyQuoteConfig
	SetDailyQuoteStatus(status, message string) error
}

// RunResult summarises one pass over all users.
type RunResult struct {
	Users    int
	Assigned int
	Failed   int
}

// DailyQuoteScheduler assigns each user's quote of the day on a cron schedule.
// Delivering the quote is limited to a log line.
type DailyQuoteScheduler struct {
	quotes   QuoteAssigner
	settings ScheduleSettings

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	runMu      sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewDailyQuoteScheduler(quotes QuoteAssigner, settings ScheduleSettings) *DailyQuoteScheduler {
	return &DailyQuoteScheduler{
		quotes:   quotes,
		settings: settings,
	}
}

// Start begins the scheduler if scheduling is enabled
func (s *DailyQuoteScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	config := s.settings.GetDailyQuoteConfig()
	if !config.Enabled {
		log.Printf("Daily quote scheduler: disabled")
		return nil
	}

	if err := settingsstore.ValidateCronSchedule(config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", config.Schedule, err)
	}

	// a fresh cron per start keeps Reschedule from stacking entries
	s.cron = cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)))
	entryID, err := s.cron.AddFunc(config.Schedule, func() {
		s.Run()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule daily quote job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := settingsstore.GetNextRunTime(config.Schedule)
	log.Printf("Daily quote scheduler: started with schedule '%s' (%s). Next run: %v",
		config.Schedule,
		settingsstore.GetCronDescription(config.Schedule),
		nextRun)

	started := s.cron
	go func() {
		<-cancelCtx.Done()
		s.stop(started)
	}()

	return nil
}

// Stop waits for a running assignment to finish.
func (s *DailyQuoteScheduler) Stop() {
	s.stop(nil)
}

// stop ignores a stale cron left over from an earlier Start when only is set.
func (s *DailyQuoteScheduler) stop(only *cron.Cron) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning || (only != nil && only != s.cron) {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Daily quote scheduler: stopped")
}

// Reschedule restarts the scheduler with the current settings.
func (s *DailyQuoteScheduler) Reschedule(ctx context.Context) error {
	s.Stop()
	return s.Start(ctx)
}

// RunNow triggers an immediate assignment in the background.
func (s *DailyQuoteScheduler) RunNow() error {
	go s.Run()
	return nil
}

func (s *DailyQuoteScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next assignment will occur
func (s *DailyQuoteScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// Run makes sure every user with quotes has one scheduled for today and
// records the outcome. Overlapping runs are serialised.
func (s *DailyQuoteScheduler) Run() RunResult {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	startTime := time.Now()
	var result RunResult

	userIDs, err := s.quotes.UserIDs()
	if err != nil {
		errMsg := fmt.Sprintf("Failed to list users: %v", err)
		log.Printf("Daily quote: %s", errMsg)
		_ = s.settings.SetDailyQuoteStatus("failed", errMsg)
		return result
	}
	result.Users = len(userIDs)

	var failures []error
	for _, userID := range userIDs {
		quote, assigned, err := s.quotes.EnsureToday(userID)
		if err != nil {
			log.Printf("Daily quote: user %d: %v", userID, err)
			failures = append(failures, err)
			result.Failed++
			continue
		}
		if assigned {
			result.Assigned++
			log.Printf("Daily quote: user %d: %q", userID, quote.Text)
		}
	}

	msg := fmt.Sprintf("Assigned %d quotes for %d users in %v",
		result.Assigned, result.Users, time.Since(startTime).Round(time.Millisecond))
	status := "success"
	if len(failures) > 0 {
		status = "failed"
		msg = fmt.Sprintf("%s; %d failed: %v", msg, result.Failed, errors.Join(failures...))
	}
	log.Printf("Daily quote: %s", msg)
	_ = s.settings.SetDailyQuoteStatus(status, msg)
	return result
}
