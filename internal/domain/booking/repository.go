package booking

import (
	"context"
	"time"

	"github.com/agendly-app/agendly-api/internal/models"
)

type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetBusinessHours(
		ctx context.Context,
		businessID uint,
	) ([]models.BusinessHours, error)

	// -------- Professional --------
	GetProfessional(
		ctx context.Context,
		businessID uint,
		professionalID uint,
	) (*models.User, error)

	ListActiveProfessionals(
		ctx context.Context,
		businessID uint,
	) ([]models.User, error)

	// GetWeeklySchedule returns (nil, nil) when no row exists for the weekday;
	// the resolver treats that as not working.
	GetWeeklySchedule(
		ctx context.Context,
		professionalID uint,
		weekday int,
	) (*models.WeeklySchedule, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		businessID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		businessID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Time blocks --------
	// ListTimeBlocks returns blocks overlapping [start, end) that apply to the
	// professional, including business-wide blocks.
	ListTimeBlocks(
		ctx context.Context,
		businessID uint,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.TimeBlock, error)

	// -------- Appointment (create / conflict) --------
	// CreateAppointmentIfFree performs the atomic insert-if-no-conflict: a
	// transactional locked re-check against non-cancelled appointments plus
	// the database exclusion constraint as the final arbiter. Returns the
	// time_conflict business error when the range is taken.
	CreateAppointmentIfFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ListAppointmentsForRange returns non-cancelled appointments for the
	// professional overlapping [start, end), ordered by start time.
	ListAppointmentsForRange(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	GetAppointmentForProfessional(
		ctx context.Context,
		appointmentID uint,
		professionalID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (listing) --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
