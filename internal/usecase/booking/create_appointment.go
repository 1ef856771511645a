package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agendly-app/agendly-api/internal/audit"
	domain "github.com/agendly-app/agendly-api/internal/domain/booking"
	"github.com/agendly-app/agendly-api/internal/domain/schedule"
	"github.com/agendly-app/agendly-api/internal/httperr"
	"github.com/agendly-app/agendly-api/internal/models"
	"github.com/agendly-app/agendly-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BusinessID     uint
	ProfessionalID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string

	// PaymentLink creates the appointment as pending until payment settles;
	// issuing the link itself happens elsewhere.
	PaymentLink bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates the requested range against hours, schedule, break and
// blocks, then hands the write to the atomic insert-if-no-conflict guard.
// Time passes between slot display and confirmation, so the commit-time
// re-check is mandatory; the loser of a race gets time_conflict and must
// re-request fresh slots. The requested time is never shifted silently.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(biz.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := biz.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(biz.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	svc, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	pro, err := uc.repo.GetProfessional(ctx, in.BusinessID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	if err := uc.validateBookable(ctx, biz, pro, start, end); err != nil {
		return nil, err
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BusinessID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		BusinessID:     in.BusinessID,
		ProfessionalID: pro.ID,
		ClientID:       client.ID,
		ServiceID:      svc.ID,
		Reference:      uuid.NewString(),
		StartTime:      start,
		EndTime:        end,
		Status:         string(domain.InitialStatus(in.PaymentLink)),
		PaymentStatus:  "unpaid",
		Notes:          in.Notes,
	}

	if err := uc.repo.CreateAppointmentIfFree(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Dispatch(audit.Event{
				BusinessID: in.BusinessID,
				UserID:     &in.ProfessionalID,
				Action:     "appointment_conflict",
				Entity:     "appointment",
				Metadata: map[string]any{
					"start": start,
					"end":   end,
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		UserID:     &in.ProfessionalID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}

// validateBookable re-runs the availability resolvers for the exact requested
// range. Closed days and misconfiguration surface as business errors here;
// the caller asked for a concrete time, not a slot list.
func (uc *CreateAppointment) validateBookable(
	ctx context.Context,
	biz *models.Business,
	pro *models.User,
	start time.Time,
	end time.Time,
) error {

	hours, err := uc.repo.GetBusinessHours(ctx, biz.ID)
	if err != nil {
		return err
	}

	bizWindow, err := schedule.ResolveBusinessHours(hours, start)
	if err != nil {
		return bookableError(err)
	}

	sched, err := uc.repo.GetWeeklySchedule(ctx, pro.ID, int(start.Weekday()))
	if err != nil {
		return err
	}

	day, err := schedule.ResolveWeeklySchedule(sched, start)
	if err != nil {
		return bookableError(err)
	}

	window, ok := schedule.Clamp(day.Window, bizWindow)
	if !ok || !window.Contains(schedule.Interval{Start: start, End: end}) {
		return httperr.ErrBusiness("outside_working_hours")
	}

	if day.Break != nil && schedule.Overlaps(start, end, day.Break.Start, day.Break.End) {
		return httperr.ErrBusiness("outside_working_hours")
	}

	loc := timezone.Location(biz.Timezone)
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)

	blocks, err := uc.repo.ListTimeBlocks(ctx, biz.ID, pro.ID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return err
	}

	for _, b := range schedule.ResolveBlocks(blocks, start) {
		if schedule.Overlaps(start, end, b.Start, b.End) {
			return httperr.ErrBusiness("time_blocked")
		}
	}

	return nil
}

func bookableError(err error) error {
	if _, ok := schedule.AsClosed(err); ok {
		return httperr.ErrBusiness("outside_working_hours")
	}
	if schedule.IsConfiguration(err) {
		return httperr.ErrBusiness("misconfigured_schedule")
	}
	return err
}
