package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendly-app/agendly-api/internal/domain/schedule"
	"github.com/agendly-app/agendly-api/internal/httperr"
	"github.com/agendly-app/agendly-api/internal/middleware"
	"github.com/agendly-app/agendly-api/internal/models"
	"github.com/agendly-app/agendly-api/internal/timezone"
)

type BusinessHandler struct {
	db *gorm.DB
}

func NewBusinessHandler(db *gorm.DB) *BusinessHandler {
	return &BusinessHandler{db: db}
}

type UpdateBusinessConfigRequest struct {
	MinAdvanceMinutes   *int    `json:"min_advance_minutes"`
	SlotIntervalMinutes *int    `json:"slot_interval_minutes"`
	Timezone            *string `json:"timezone"`
}

func (h *BusinessHandler) GetMeBusiness(c *gin.Context) {
	businessIDVal, _ := c.Get(middleware.ContextBusinessID)
	businessID := businessIDVal.(uint)

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_not_found", "Business not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_business", "Could not load business data.")
		return
	}

	c.JSON(http.StatusOK, biz)
}

func (h *BusinessHandler) UpdateMeBusiness(c *gin.Context) {
	businessIDVal, _ := c.Get(middleware.ContextBusinessID)
	businessID := businessIDVal.(uint)

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_not_found", "Business not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_business", "Could not load business data.")
		return
	}

	var req UpdateBusinessConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Minimum advance must be zero or positive (minutes).")
			return
		}
		biz.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if req.SlotIntervalMinutes != nil {
		if *req.SlotIntervalMinutes <= 0 {
			httperr.BadRequest(c, "invalid_slot_interval", "Slot interval must be a positive number of minutes.")
			return
		}
		biz.SlotIntervalMinutes = *req.SlotIntervalMinutes
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown IANA timezone.")
			return
		}
		biz.Timezone = *req.Timezone
	}

	if err := h.db.Save(&biz).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Could not save business settings.")
		return
	}

	c.JSON(http.StatusOK, biz)
}

// --------- Business hours ---------

type BusinessHoursEntry struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	Closed    bool   `json:"closed"`
}

type PutBusinessHoursRequest struct {
	Hours []BusinessHoursEntry `json:"hours" binding:"required"`
}

func (h *BusinessHandler) GetBusinessHours(c *gin.Context) {
	businessIDVal, _ := c.Get(middleware.ContextBusinessID)
	businessID := businessIDVal.(uint)

	var rows []models.BusinessHours
	if err := h.db.
		Where("business_id = ?", businessID).
		Order("weekday asc").
		Find(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_get_hours", "Could not load business hours.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"hours": rows})
}

// PutBusinessHours replaces the whole weekly grid in one call.
func (h *BusinessHandler) PutBusinessHours(c *gin.Context) {
	businessIDVal, _ := c.Get(middleware.ContextBusinessID)
	businessID := businessIDVal.(uint)

	var req PutBusinessHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	seen := make(map[int]bool, len(req.Hours))
	for _, entry := range req.Hours {
		if entry.Weekday < 0 || entry.Weekday > 6 {
			httperr.BadRequest(c, "invalid_weekday", "Weekday must be between 0 (Sunday) and 6 (Saturday).")
			return
		}
		if seen[entry.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Each weekday may appear only once.")
			return
		}
		seen[entry.Weekday] = true

		if entry.Closed {
			continue
		}
		if !validHoursWindow(entry.OpenTime, entry.CloseTime) {
			httperr.BadRequest(c, "invalid_hours_window", "Open time must come before close time (HH:MM).")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("business_id = ?", businessID).
			Delete(&models.BusinessHours{}).Error; err != nil {
			return err
		}

		for _, entry := range req.Hours {
			row := models.BusinessHours{
				BusinessID: businessID,
				Weekday:    entry.Weekday,
				OpenTime:   entry.OpenTime,
				CloseTime:  entry.CloseTime,
				Closed:     entry.Closed,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_hours", "Could not save business hours.")
		return
	}

	var rows []models.BusinessHours
	h.db.Where("business_id = ?", businessID).Order("weekday asc").Find(&rows)

	sort.Slice(rows, func(i, j int) bool { return rows[i].Weekday < rows[j].Weekday })
	c.JSON(http.StatusOK, gin.H{"hours": rows})
}

func validHoursWindow(open, close string) bool {
	ref := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	start, err := schedule.TimeOnDate(ref, open)
	if err != nil {
		return false
	}
	end, err := schedule.TimeOnDate(ref, close)
	if err != nil {
		return false
	}
	return start.Before(end)
}
