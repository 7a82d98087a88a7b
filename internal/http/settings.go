package http

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hikam/internal/settingsstore"
)

// DailyQuoteSettings is the persistent quote of the day configuration.
type DailyQuoteSettings interface {
	GetDailyQuoteConfigInfo() settingsstore.DailyQuoteConfigInfo
	GetDailyQuoteStatus() settingsstore.DailyQuoteStatus
	SetDailyQuoteEnabled(enabled bool) error
	SetDailyQuoteSchedule(schedule string) error
	ClearDailyQuoteSettings() error
}

// DailyQuoteRunner is the scheduler the settings drive.
type DailyQuoteRunner interface {
	Reschedule(ctx context.Context) error
	RunNow() error
	IsRunning() bool
	GetNextRunTime() *time.Time
}

type SettingsController struct {
	settings  DailyQuoteSettings
	scheduler DailyQuoteRunner
	// schedulerCtx outlives the request that reschedules.
	schedulerCtx context.Context
}

func NewSettingsController(ctx context.Context, settings DailyQuoteSettings, scheduler DailyQuoteRunner) *SettingsController {
	return &SettingsController{settings: settings, scheduler: scheduler, schedulerCtx: ctx}
}

type dailyQuoteResponse struct {
	settingsstore.DailyQuoteConfigInfo
	Running bool                           `json:"running"`
	NextRun *time.Time                     `json:"next_run,omitempty"`
	Last    settingsstore.DailyQuoteStatus `json:"last"`
}

func (sc *SettingsController) respondDailyQuote(c *gin.Context) {
	resp := dailyQuoteResponse{
		DailyQuoteConfigInfo: sc.settings.GetDailyQuoteConfigInfo(),
		Last:                 sc.settings.GetDailyQuoteStatus(),
	}
	if sc.scheduler != nil {
		resp.Running = sc.scheduler.IsRunning()
		resp.NextRun = sc.scheduler.GetNextRunTime()
	}
	c.JSON(http.StatusOK, resp)
}

// GetDailyQuote handles GET /api/settings/daily-quote
func (sc *SettingsController) GetDailyQuote(c *gin.Context) {
	sc.respondDailyQuote(c)
}

type dailyQuoteRequest struct {
	Enabled  *bool   `json:"enabled"`
	Schedule *string `json:"schedule"`
}

// UpdateDailyQuote handles PUT /api/settings/daily-quote. Omitted fields
// keep their value; the scheduler is restarted with the result.
func (sc *SettingsController) UpdateDailyQuote(c *gin.Context) {
	var req dailyQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if req.Schedule != nil {
		if err := sc.settings.SetDailyQuoteSchedule(strings.TrimSpace(*req.Schedule)); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cron schedule: " + err.Error(), Code: "invalid_schedule"})
			return
		}
	}
	if req.Enabled != nil {
		if err := sc.settings.SetDailyQuoteEnabled(*req.Enabled); err != nil {
			respondInternalError(c, err, "save daily quote enabled")
			return
		}
	}

	sc.reschedule()
	sc.respondDailyQuote(c)
}

// ResetDailyQuote handles DELETE /api/settings/daily-quote, reverting to
// environment and default values.
func (sc *SettingsController) ResetDailyQuote(c *gin.Context) {
	if err := sc.settings.ClearDailyQuoteSettings(); err != nil {
		respondInternalError(c, err, "reset daily quote settings")
		return
	}
	sc.reschedule()
	sc.respondDailyQuote(c)
}

// RunDailyQuote handles POST /api/settings/daily-quote/run
func (sc *SettingsController) RunDailyQuote(c *gin.Context) {
	if sc.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "scheduler not configured"})
		return
	}
	if err := sc.scheduler.RunNow(); err != nil {
		respondInternalError(c, err, "run daily quote")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "daily quote run started"})
}

func (sc *SettingsController) reschedule() {
	if sc.scheduler == nil {
		return
	}
	if err := sc.scheduler.Reschedule(sc.schedulerCtx); err != nil {
		log.Printf("Daily quote scheduler: reschedule failed: %v", err)
	}
}
