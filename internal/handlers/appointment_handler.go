package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/agendly-app/agendly-api/internal/domain/booking"
	"github.com/agendly-app/agendly-api/internal/domain/schedule"
	"github.com/agendly-app/agendly-api/internal/httperr"
	"github.com/agendly-app/agendly-api/internal/httpresp"
	"github.com/agendly-app/agendly-api/internal/middleware"
	usecase "github.com/agendly-app/agendly-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *usecase.CreateAppointment
	availabilityUC *usecase.GetAvailability
	byDateUC       *usecase.ListAppointmentsByDate
	byMonthUC      *usecase.ListAppointmentsByMonth
	confirmUC      *usecase.ConfirmAppointment
	cancelUC       *usecase.CancelAppointment
	checkInUC      *usecase.CheckInAppointment
	completeUC     *usecase.CompleteAppointment
	noShowUC       *usecase.NoShowAppointment
}

func NewAppointmentHandler(
	createUC *usecase.CreateAppointment,
	availabilityUC *usecase.GetAvailability,
	byDateUC *usecase.ListAppointmentsByDate,
	byMonthUC *usecase.ListAppointmentsByMonth,
	confirmUC *usecase.ConfirmAppointment,
	cancelUC *usecase.CancelAppointment,
	checkInUC *usecase.CheckInAppointment,
	completeUC *usecase.CompleteAppointment,
	noShowUC *usecase.NoShowAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		availabilityUC: availabilityUC,
		byDateUC:       byDateUC,
		byMonthUC:      byMonthUC,
		confirmUC:      confirmUC,
		cancelUC:       cancelUC,
		checkInUC:      checkInUC,
		completeUC:     completeUC,
		noShowUC:       noShowUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
	PaymentLink bool   `json:"payment_link"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

// writeBookingError translates use-case errors into the HTTP contract.
// time_conflict is a 409 because the range was taken between display and
// commit; the caller should re-request availability.
func writeBookingError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		switch be.Code {
		case "time_conflict":
			httperr.Conflict(c, be.Code, "The requested time is no longer available.")
		case "misconfigured_schedule":
			httperr.UnprocessableEntity(c, be.Code, "The schedule for this professional is misconfigured.")
		case "service_not_found", "professional_not_found", "appointment_not_found":
			httperr.NotFound(c, be.Code, "Record not found.")
		case "invalid_state":
			httperr.Conflict(c, be.Code, "The appointment does not allow this transition.")
		default:
			httperr.BadRequest(c, be.Code, "The request cannot be fulfilled.")
		}
		return
	}

	if _, ok := schedule.AsClosed(err); ok {
		httperr.BadRequest(c, "outside_working_hours", "The professional is not available at that time.")
		return
	}
	if schedule.IsConfiguration(err) {
		httperr.UnprocessableEntity(c, "misconfigured_schedule", "The schedule for this professional is misconfigured.")
		return
	}

	httperr.Internal(c, "internal_error", "Unexpected error.")
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		BusinessID:     businessID,
		ProfessionalID: professionalID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
		PaymentLink:    req.PaymentLink,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) GetAvailability(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")
	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_parameters", "date and service_id are required.")
		return
	}

	serviceID64, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id must be numeric.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "date must be YYYY-MM-DD.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		BusinessID:     businessID,
		ProfessionalID: professionalID,
		ServiceID:      uint(serviceID64),
		Date:           date,
	})
	if err != nil {
		if closed, ok := schedule.AsClosed(err); ok {
			c.JSON(http.StatusOK, gin.H{
				"slots":  []domain.TimeSlot{},
				"reason": string(closed.Reason),
			})
			return
		}
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ======================================================
// LISTS
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "date must be YYYY-MM-DD.")
		return
	}

	list, err := h.byDateUC.Execute(c.Request.Context(), professionalID, businessID, date)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_date_or_time", "year and month are required.")
		return
	}

	list, err := h.byMonthUC.Execute(c.Request.Context(), professionalID, businessID, year, month)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, func(businessID, professionalID, id uint) (any, error) {
		return h.confirmUC.Execute(c.Request.Context(), businessID, professionalID, id)
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(businessID, professionalID, id uint) (any, error) {
		return h.cancelUC.Execute(c.Request.Context(), businessID, professionalID, id)
	})
}

func (h *AppointmentHandler) CheckIn(c *gin.Context) {
	h.transition(c, func(businessID, professionalID, id uint) (any, error) {
		return h.checkInUC.Execute(c.Request.Context(), businessID, professionalID, id)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(businessID, professionalID, id uint) (any, error) {
		return h.completeUC.Execute(c.Request.Context(), businessID, professionalID, id)
	})
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.transition(c, func(businessID, professionalID, id uint) (any, error) {
		return h.noShowUC.Execute(c.Request.Context(), businessID, professionalID, id)
	})
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	run func(businessID, professionalID, id uint) (any, error),
) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Appointment id must be numeric.")
		return
	}

	ap, err := run(businessID, professionalID, uint(id64))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
