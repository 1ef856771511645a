package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendly-app/agendly-api/internal/middleware"
	"github.com/agendly-app/agendly-api/internal/models"
)

type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

type ScheduleDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayConfig `json:"days" binding:"required"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	professionalID := userIDVal.(uint)

	var days []models.WeeklySchedule
	if err := h.db.
		Where("professional_id = ?", professionalID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_schedule"})
		return
	}

	c.JSON(http.StatusOK, days)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	professionalID := userIDVal.(uint)

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	for _, d := range req.Days {
		if !d.Active {
			continue
		}
		if !validHoursWindow(d.StartTime, d.EndTime) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_schedule_window",
				"weekday": d.Weekday,
			})
			return
		}
		if (d.BreakStart == "") != (d.BreakEnd == "") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "incomplete_break_window",
				"weekday": d.Weekday,
			})
			return
		}
		if d.BreakStart != "" && !validHoursWindow(d.BreakStart, d.BreakEnd) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_break_window",
				"weekday": d.Weekday,
			})
			return
		}
	}

	if err := h.db.Where("professional_id = ?", professionalID).Delete(&models.WeeklySchedule{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_existing_schedule"})
		return
	}

	var toCreate []models.WeeklySchedule
	for _, d := range req.Days {
		day := models.WeeklySchedule{
			ProfessionalID: professionalID,
			Weekday:        d.Weekday,
			Active:         d.Active,
			StartTime:      d.StartTime,
			EndTime:        d.EndTime,
			BreakStart:     d.BreakStart,
			BreakEnd:       d.BreakEnd,
		}
		toCreate = append(toCreate, day)
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_schedule"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
