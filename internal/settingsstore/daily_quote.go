package settingsstore

import (
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/hikam/internal/config"
	"github.com/mrlokans/hikam/internal/entities"
)

// DailyQuoteConfig represents the effective configuration for the quote of the day
type DailyQuoteConfig struct {
	Enabled  bool   `json:"enabled"`
	Schedule string `json:"schedule"`
}

// DailyQuoteConfigInfo includes source information for each field
type DailyQuoteConfigInfo struct {
	Enabled       bool   `json:"enabled"`
	EnabledSource string `json:"enabled_source"` // "database", "environment", "default"

	Schedule            string     `json:"schedule"`
	ScheduleSource      string     `json:"schedule_source"`
	ScheduleDescription string     `json:"schedule_description"`
	NextRunAt           *time.Time `json:"next_run_at,omitempty"`
}

// DailyQuoteStatus represents the outcome of the last scheduling run
type DailyQuoteStatus struct {
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	Status    string     `json:"status,omitempty"`  // "success", "failed", ""
	Message   string     `json:"message,omitempty"` // Error message or summary
}

// GetDailyQuoteEnabled returns whether scheduling is enabled (database > env > default)
func (s *SettingsStore) GetDailyQuoteEnabled() bool {
	value, _ := s.lookup(entities.SettingKeyDailyQuoteEnabled, "DAILY_QUOTE_ENABLED", "true")
	return parseBool(value)
}

func (s *SettingsStore) SetDailyQuoteEnabled(enabled bool) error {
	return s.db.SetSetting(entities.SettingKeyDailyQuoteEnabled, strconv.FormatBool(enabled))
}

// GetDailyQuoteSchedule returns the cron schedule (database > env > default)
func (s *SettingsStore) GetDailyQuoteSchedule() string {
	value, _ := s.lookup(entities.SettingKeyDailyQuoteSchedule, "DAILY_QUOTE_SCHEDULE", config.DefaultDailyQuoteSchedule)
	return value
}

// SetDailyQuoteSchedule validates and saves the schedule to database
func (s *SettingsStore) SetDailyQuoteSchedule(schedule string) error {
	if err := ValidateCronSchedule(schedule); err != nil {
		return err
	}
	return s.db.SetSetting(entities.SettingKeyDailyQuoteSchedule, schedule)
}

func (s *SettingsStore) GetDailyQuoteConfig() DailyQuoteConfig {
	return DailyQuoteConfig{
		Enabled:  s.GetDailyQuoteEnabled(),
		Schedule: s.GetDailyQuoteSchedule(),
	}
}

// GetDailyQuoteConfigInfo returns the configuration with source information
func (s *SettingsStore) GetDailyQuoteConfigInfo() DailyQuoteConfigInfo {
	enabled, enabledSource := s.lookup(entities.SettingKeyDailyQuoteEnabled, "DAILY_QUOTE_ENABLED", "true")
	schedule, scheduleSource := s.lookup(entities.SettingKeyDailyQuoteSchedule, "DAILY_QUOTE_SCHEDULE", config.DefaultDailyQuoteSchedule)

	info := DailyQuoteConfigInfo{
		Enabled:             parseBool(enabled),
		EnabledSource:       enabledSource,
		Schedule:            schedule,
		ScheduleSource:      scheduleSource,
		ScheduleDescription: GetCronDescription(schedule),
	}
	if next, err := GetNextRunTime(schedule); err == nil {
		info.NextRunAt = next
	}
	return info
}

// GetDailyQuoteStatus returns the last scheduling status
func (s *SettingsStore) GetDailyQuoteStatus() DailyQuoteStatus {
	status := DailyQuoteStatus{}

	if setting, err := s.db.GetSetting(entities.SettingKeyDailyQuoteLastAt); err == nil && setting.Value != "" {
		if ts, err := time.Parse(time.RFC3339, setting.Value); err == nil {
			status.LastRunAt = &ts
		}
	}
	if setting, err := s.db.GetSetting(entities.SettingKeyDailyQuoteLastStatus); err == nil {
		status.Status = setting.Value
	}
	if setting, err := s.db.GetSetting(entities.SettingKeyDailyQuoteLastMessage); err == nil {
		status.Message = setting.Value
	}

	return status
}

// SetDailyQuoteStatus records the outcome of a scheduling run
func (s *SettingsStore) SetDailyQuoteStatus(status, message string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	if err := s.db.SetSetting(entities.SettingKeyDailyQuoteLastAt, now); err != nil {
		return err
	}
	if err := s.db.SetSetting(entities.SettingKeyDailyQuoteLastStatus, status); err != nil {
		return err
	}
	return s.db.SetSetting(entities.SettingKeyDailyQuoteLastMessage, message)
}

// ClearDailyQuoteSettings clears all database overrides, reverting to env/default
func (s *SettingsStore) ClearDailyQuoteSettings() error {
	return s.deleteKeys(
		entities.SettingKeyDailyQuoteEnabled,
		entities.SettingKeyDailyQuoteSchedule,
	)
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule validates a cron schedule string
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule
func GetCronDescription(schedule string) string {
	switch schedule {
	case "0 6 * * *":
		return "Daily at 06:00"
	case "0 0 * * *":
		return "Daily at midnight"
	case "0 5 * * 5":
		return "Weekly on Friday at 05:00"
	case "0 */12 * * *":
		return "Every 12 hours"
	case "0 * * * *":
		return "Every hour at :00"
	default:
		return "Custom schedule: " + schedule
	}
}

// GetNextRunTime calculates when the next run will happen based on the schedule
func GetNextRunTime(schedule string) (*time.Time, error) {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}
