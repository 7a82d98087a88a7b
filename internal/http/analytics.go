package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hikam/internal/analytics"
	"github.com/mrlokans/hikam/internal/entities"
)

// StatsProvider aggregates a user's activity.
type StatsProvider interface {
	Stats(userID uint) (*analytics.Stats, error)
}

type AnalyticsController struct {
	events EventTracker
	stats  StatsProvider
}

func NewAnalyticsController(events EventTracker, stats StatsProvider) *AnalyticsController {
	return &AnalyticsController{events: events, stats: stats}
}

type eventRequest struct {
	Type    entities.AnalyticsEventType `json:"type" binding:"required"`
	QuoteID string                      `json:"quote_id"`
	BookID  uint                        `json:"book_id"`
	Page    int                         `json:"page"`
}

// Track handles POST /api/analytics/events. Events are queued, so the
// response is 202 whether or not the event is eventually stored.
func (ac *AnalyticsController) Track(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "type is required")
		return
	}
	if !entities.ValidAnalyticsEventTypes[req.Type] {
		respondBadRequest(c, "unknown event type")
		return
	}

	queued := ac.events.Track(entities.AnalyticsEvent{
		UserID:  GetUserID(c),
		Type:    req.Type,
		QuoteID: req.QuoteID,
		BookID:  req.BookID,
		Page:    req.Page,
	})
	c.JSON(http.StatusAccepted, gin.H{"queued": queued})
}

// Stats handles GET /api/analytics/stats
func (ac *AnalyticsController) Stats(c *gin.Context) {
	stats, err := ac.stats.Stats(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "analytics stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
