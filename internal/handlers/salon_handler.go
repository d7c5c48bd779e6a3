package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
)

// SalonHandler exposes the single salon's calendar configuration.
type SalonHandler struct {
	schedule           *domain.Schedule
	clock              timezone.Clock
	pendingExpiryHours int
}

func NewSalonHandler(
	schedule *domain.Schedule,
	clock timezone.Clock,
	pendingExpiryHours int,
) *SalonHandler {
	return &SalonHandler{
		schedule:           schedule,
		clock:              clock,
		pendingExpiryHours: pendingExpiryHours,
	}
}

// GET /api/schedule
func (h *SalonHandler) Schedule(c *gin.Context) {
	now := h.clock.Now()

	c.JSON(http.StatusOK, gin.H{
		"timezone":             now.Location().String(),
		"today":                now.Format(timezone.DateLayout),
		"now":                  now.Format(timezone.TimeLayout),
		"slots":                h.schedule.Slots(),
		"pending_expiry_hours": h.pendingExpiryHours,
	})
}
