package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hikam/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
	Stats   *database.Stats   `json:"stats,omitempty"`
}

// WorkerStatus reports whether a background worker has been started.
type WorkerStatus interface {
	Running() bool
}

// QueueCounters exposes the analytics queue totals.
type QueueCounters interface {
	Saved() int64
	Dropped() int64
	Failed() int64
}

type HealthController struct {
	db      *database.Database
	version string
	worker  WorkerStatus
	events  QueueCounters
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// WithWorker adds the task worker to the reported checks.
func (h *HealthController) WithWorker(w WorkerStatus) *HealthController {
	h.worker = w
	return h
}

// WithEventQueue adds analytics queue counters to the reported checks.
func (h *HealthController) WithEventQueue(q QueueCounters) *HealthController {
	h.events = q
	return h
}

// Status handles GET /health
func (h *HealthController) Status(c *gin.Context) {
	checks := map[string]string{}
	status := "healthy"
	var stats *database.Stats

	if h.db == nil {
		checks["database"] = "not configured"
	} else if sqlDB, err := h.db.DB.DB(); err != nil {
		checks["database"] = "error: " + err.Error()
		status = "unhealthy"
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		checks["database"] = "error: " + err.Error()
		status = "unhealthy"
	} else {
		checks["database"] = "ok"
		if s, err := h.db.GetStats(); err == nil {
			stats = &s
		}
	}

	// Workers and queues are informational; they never fail the check.
	if h.worker != nil {
		if h.worker.Running() {
			checks["tasks"] = "running"
		} else {
			checks["tasks"] = "stopped"
		}
	}
	if h.events != nil {
		checks["analytics"] = fmt.Sprintf("saved=%d dropped=%d failed=%d",
			h.events.Saved(), h.events.Dropped(), h.events.Failed())
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, HealthResponse{
		Status:  status,
		Time:    time.Now().UTC().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
		Stats:   stats,
	})
}

// Ping handles GET /ping
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
