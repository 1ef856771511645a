package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/agendly-app/agendly-api/internal/audit"
	"github.com/agendly-app/agendly-api/internal/config"
	"github.com/agendly-app/agendly-api/internal/handlers"
	infraRepo "github.com/agendly-app/agendly-api/internal/infra/repository"
	"github.com/agendly-app/agendly-api/internal/middleware"
	ucBooking "github.com/agendly-app/agendly-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, rdb *redis.Client) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	createAppointmentUC := ucBooking.NewCreateAppointment(
		bookingRepo,
		auditDispatcher,
	)

	getAvailabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	confirmAppointmentUC := ucBooking.NewConfirmAppointment(bookingRepo, auditDispatcher)
	cancelAppointmentUC := ucBooking.NewCancelAppointment(bookingRepo, auditDispatcher)
	checkInAppointmentUC := ucBooking.NewCheckInAppointment(bookingRepo, auditDispatcher)
	completeAppointmentUC := ucBooking.NewCompleteAppointment(bookingRepo, auditDispatcher)
	noShowAppointmentUC := ucBooking.NewNoShowAppointment(bookingRepo, auditDispatcher)

	listAppointmentsByDateUC := ucBooking.NewListAppointmentsByDate(bookingRepo)
	listAppointmentsByMonthUC := ucBooking.NewListAppointmentsByMonth(bookingRepo)

	liveStatusUC := ucBooking.NewLiveStatus(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	businessHandler := handlers.NewBusinessHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)
	timeBlockHandler := handlers.NewTimeBlockHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		getAvailabilityUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		checkInAppointmentUC,
		completeAppointmentUC,
		noShowAppointmentUC,
	)

	dashboardHandler := handlers.NewDashboardHandler(liveStatusUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, auditDispatcher)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		if rdb != nil {
			limiter := middleware.NewRateLimiter(
				rdb,
				cfg.RateLimitPerMinute,
				time.Minute,
				"public",
			)
			publicAPI.Use(limiter.Middleware())
		}
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/professionals", publicHandler.ListProfessionals)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/business", businessHandler.GetMeBusiness)
			secured.PATCH("/me/business", businessHandler.UpdateMeBusiness)
			secured.GET("/me/business/hours", businessHandler.GetBusinessHours)
			secured.PUT("/me/business/hours", businessHandler.PutBusinessHours)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/schedule", scheduleHandler.Get)
			secured.PUT("/me/schedule", scheduleHandler.Update)

			secured.GET("/me/time-blocks", timeBlockHandler.List)
			secured.POST("/me/time-blocks", timeBlockHandler.Create)
			secured.DELETE("/me/time-blocks/:id", timeBlockHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/availability", appointmentHandler.GetAvailability)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/check-in", appointmentHandler.CheckIn)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)

			secured.GET("/me/dashboard/live", dashboardHandler.LiveStatus)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
