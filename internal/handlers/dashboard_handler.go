package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agendly-app/agendly-api/internal/httperr"
	"github.com/agendly-app/agendly-api/internal/middleware"
	usecase "github.com/agendly-app/agendly-api/internal/usecase/booking"
)

type DashboardHandler struct {
	liveUC *usecase.LiveStatus
}

func NewDashboardHandler(liveUC *usecase.LiveStatus) *DashboardHandler {
	return &DashboardHandler{liveUC: liveUC}
}

// LiveStatus answers "who is free right now". Each call recomputes from
// current records; a booking committed a second ago is already reflected.
func (h *DashboardHandler) LiveStatus(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var at time.Time
	if atStr := c.Query("at"); atStr != "" {
		parsed, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "at must be RFC3339.")
			return
		}
		at = parsed
	}

	statuses, err := h.liveUC.Execute(c.Request.Context(), businessID, at)
	if err != nil {
		httperr.Internal(c, "live_status_failed", "Could not compute live status.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"professionals": statuses})
}
