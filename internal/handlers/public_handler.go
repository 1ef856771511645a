package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendly-app/agendly-api/internal/audit"
	domain "github.com/agendly-app/agendly-api/internal/domain/booking"
	"github.com/agendly-app/agendly-api/internal/domain/schedule"
	"github.com/agendly-app/agendly-api/internal/httperr"
	infraRepo "github.com/agendly-app/agendly-api/internal/infra/repository"
	"github.com/agendly-app/agendly-api/internal/models"
	"github.com/agendly-app/agendly-api/internal/timezone"
	usecase "github.com/agendly-app/agendly-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPublicHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *PublicHandler {
	return &PublicHandler{
		db:    db,
		audit: dispatcher,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	ClientEmail    string `json:"client_email"`
	ProfessionalID uint   `json:"professional_id"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:mm
	Notes          string `json:"notes"`
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) businessBySlug(c *gin.Context) (*models.Business, bool) {
	slug := c.Param("slug")

	var biz models.Business
	if err := h.db.Where("slug = ?", slug).First(&biz).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return nil, false
	}
	return &biz, true
}

// resolveProfessional picks the requested professional, or falls back to the
// owner for single-professional businesses.
func (h *PublicHandler) resolveProfessional(
	c *gin.Context,
	biz *models.Business,
	professionalID uint,
) (*models.User, bool) {

	q := h.db.Where("business_id = ? AND active = true", biz.ID)
	if professionalID != 0 {
		q = q.Where("id = ?", professionalID)
	} else {
		q = q.Where("role = ?", "owner")
	}

	var pro models.User
	if err := q.First(&pro).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Professional not found.")
		return nil, false
	}
	return &pro, true
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	biz, ok := h.businessBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("business_id = ? AND active = true", biz.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business": biz,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// PROFESSIONALS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	biz, ok := h.businessBySlug(c)
	if !ok {
		return
	}

	var pros []models.User
	if err := h.db.
		Select("id", "name", "role").
		Where("business_id = ? AND active = true", biz.ID).
		Order("id ASC").
		Find(&pros).Error; err != nil {

		httperr.Internal(c, "failed_to_list_professionals", "Could not list professionals.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"professionals": pros})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	biz, ok := h.businessBySlug(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")
	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_parameters", "date and service_id are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id must be numeric.")
		return
	}

	var professionalID uint
	if pidStr := c.Query("professional_id"); pidStr != "" {
		pid, err := strconv.ParseUint(pidStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_professional_id", "professional_id must be numeric.")
			return
		}
		professionalID = uint(pid)
	}

	pro, ok := h.resolveProfessional(c, biz, professionalID)
	if !ok {
		return
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(biz.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "date must be YYYY-MM-DD.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := usecase.NewGetAvailability(repo)

	slots, err := uc.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BusinessID:     biz.ID,
			ProfessionalID: pro.ID,
			ServiceID:      uint(serviceID),
			Date:           date,
		},
	)
	if err != nil {
		if closed, ok := schedule.AsClosed(err); ok {
			c.JSON(http.StatusOK, gin.H{
				"date":   dateStr,
				"slots":  []domain.TimeSlot{},
				"reason": string(closed.Reason),
			})
			return
		}
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	biz, ok := h.businessBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	pro, ok := h.resolveProfessional(c, biz, req.ProfessionalID)
	if !ok {
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := usecase.NewCreateAppointment(repo, h.audit)

	ap, err := uc.Execute(
		c.Request.Context(),
		usecase.CreateAppointmentInput{
			BusinessID:     biz.ID,
			ProfessionalID: pro.ID,
			ClientName:     req.ClientName,
			ClientPhone:    req.ClientPhone,
			ClientEmail:    req.ClientEmail,
			ServiceID:      req.ServiceID,
			Date:           req.Date,
			Time:           req.Time,
			Notes:          req.Notes,
		},
	)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}
