package booking

import (
	"context"
	"time"

	"github.com/agendly-app/agendly-api/internal/audit"
	domain "github.com/agendly-app/agendly-api/internal/domain/booking"
	"github.com/agendly-app/agendly-api/internal/httperr"
	"github.com/agendly-app/agendly-api/internal/models"
	"github.com/agendly-app/agendly-api/internal/timezone"
)

// Status-change use cases share one shape: load, apply the domain transition,
// persist, audit. The transitions themselves live in the domain package.

type transitionFunc func(ap *models.Appointment, now time.Time) error

type statusTransition struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	apply  transitionFunc
	action string
}

func (uc *statusTransition) Execute(
	ctx context.Context,
	businessID uint,
	professionalID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForProfessional(ctx, appointmentID, professionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(biz.Timezone)
	if err := uc.apply(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &professionalID,
		Action:     uc.action,
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}

type ConfirmAppointment struct{ statusTransition }

func NewConfirmAppointment(repo domain.Repository, audit *audit.Dispatcher) *ConfirmAppointment {
	return &ConfirmAppointment{statusTransition{
		repo: repo, audit: audit, apply: domain.Confirm, action: "appointment_confirmed",
	}}
}

type CancelAppointment struct{ statusTransition }

func NewCancelAppointment(repo domain.Repository, audit *audit.Dispatcher) *CancelAppointment {
	return &CancelAppointment{statusTransition{
		repo: repo, audit: audit, apply: domain.Cancel, action: "appointment_cancelled",
	}}
}

type CheckInAppointment struct{ statusTransition }

func NewCheckInAppointment(repo domain.Repository, audit *audit.Dispatcher) *CheckInAppointment {
	return &CheckInAppointment{statusTransition{
		repo: repo, audit: audit, apply: domain.CheckIn, action: "appointment_checked_in",
	}}
}

type CompleteAppointment struct{ statusTransition }

func NewCompleteAppointment(repo domain.Repository, audit *audit.Dispatcher) *CompleteAppointment {
	return &CompleteAppointment{statusTransition{
		repo: repo, audit: audit, apply: domain.Complete, action: "appointment_completed",
	}}
}

type NoShowAppointment struct{ statusTransition }

func NewNoShowAppointment(repo domain.Repository, audit *audit.Dispatcher) *NoShowAppointment {
	return &NoShowAppointment{statusTransition{
		repo: repo, audit: audit, apply: domain.NoShow, action: "appointment_no_show",
	}}
}
