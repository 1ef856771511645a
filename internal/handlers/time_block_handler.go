package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendly-app/agendly-api/internal/middleware"
	"github.com/agendly-app/agendly-api/internal/models"
)

type TimeBlockHandler struct {
	db *gorm.DB
}

func NewTimeBlockHandler(db *gorm.DB) *TimeBlockHandler {
	return &TimeBlockHandler{db: db}
}

// --------- Requests ---------

type CreateTimeBlockRequest struct {
	ProfessionalID *uint  `json:"professional_id"`
	StartDate      string `json:"start_date" binding:"required"` // "2006-01-02"
	StartTime      string `json:"start_time"`                    // "15:04", empty = 00:00
	EndDate        string `json:"end_date" binding:"required"`
	EndTime        string `json:"end_time"` // empty = end of day
	Reason         string `json:"reason"`
	Type           string `json:"type"` // vacation | holiday | maintenance | event
}

var validBlockTypes = map[string]bool{
	"vacation":    true,
	"holiday":     true,
	"maintenance": true,
	"event":       true,
}

// --------- Handlers ---------

func (h *TimeBlockHandler) List(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	q := h.db.Where("business_id = ?", businessID)

	if pid := c.Query("professional_id"); pid != "" {
		q = q.Where("professional_id = ?", pid)
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("end_time > ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("start_time < ?", to)
	}

	var blocks []models.TimeBlock
	if err := q.Order("start_time ASC").Find(&blocks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_time_blocks"})
		return
	}

	c.JSON(http.StatusOK, blocks)
}

func (h *TimeBlockHandler) Create(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateTimeBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Type != "" && !validBlockTypes[req.Type] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_block_type"})
		return
	}

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_business"})
		return
	}

	if req.ProfessionalID != nil {
		var count int64
		h.db.Model(&models.User{}).
			Where("id = ? AND business_id = ?", *req.ProfessionalID, businessID).
			Count(&count)
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "professional_not_found"})
			return
		}
	}

	start, end, err := resolveBlockRange(&biz, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date_or_time"})
		return
	}
	if !end.After(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_block_range"})
		return
	}

	block := models.TimeBlock{
		BusinessID:     businessID,
		ProfessionalID: req.ProfessionalID,
		StartTime:      start,
		EndTime:        end,
		Reason:         req.Reason,
		Type:           req.Type,
	}

	if err := h.db.Create(&block).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_time_block"})
		return
	}

	writeAudit(h.db, businessID, &userID, "time_block_created", "time_block", &block.ID, gin.H{
		"start": block.StartTime,
		"end":   block.EndTime,
		"type":  block.Type,
	})

	c.JSON(http.StatusCreated, block)
}

func (h *TimeBlockHandler) Delete(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	idStr := c.Param("id")
	id64, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_block_id"})
		return
	}
	id := uint(id64)

	var block models.TimeBlock
	if err := h.db.
		Where("id = ? AND business_id = ?", id, businessID).
		First(&block).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "time_block_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_time_block"})
		return
	}

	if err := h.db.Delete(&block).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_time_block"})
		return
	}

	writeAudit(h.db, businessID, &userID, "time_block_deleted", "time_block", &block.ID, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// resolveBlockRange expands the date/time pair into absolute bounds in the
// business timezone. Empty times stretch the block to cover the whole day.
func resolveBlockRange(biz *models.Business, req CreateTimeBlockRequest) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if req.StartTime != "" {
		start, err = parseDateTimeForBusiness(biz, req.StartDate, req.StartTime)
	} else {
		start, err = parseDateForBusiness(biz, req.StartDate)
	}
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if req.EndTime != "" {
		end, err = parseDateTimeForBusiness(biz, req.EndDate, req.EndTime)
	} else {
		end, err = parseDateForBusiness(biz, req.EndDate)
		if err == nil {
			end = end.AddDate(0, 0, 1)
		}
	}
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}
