package booking

import (
	"context"
	"time"

	domain "github.com/agendly-app/agendly-api/internal/domain/booking"
	"github.com/agendly-app/agendly-api/internal/domain/schedule"
	"github.com/agendly-app/agendly-api/internal/httperr"
	"github.com/agendly-app/agendly-api/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute returns the ordered bookable start times for (professional, service,
// date). State is re-read from the repository on every call; nothing is
// cached between requests. ClosedError and ConfigurationError pass through
// typed so callers can tell "closed" from "broken".
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	pro, err := uc.repo.GetProfessional(ctx, in.BusinessID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	loc := timezone.Location(biz.Timezone)
	date := in.Date.In(loc)
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	hours, err := uc.repo.GetBusinessHours(ctx, biz.ID)
	if err != nil {
		return nil, err
	}

	sched, err := uc.repo.GetWeeklySchedule(ctx, pro.ID, int(dayStart.Weekday()))
	if err != nil {
		return nil, err
	}

	blocks, err := uc.repo.ListTimeBlocks(ctx, biz.ID, pro.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForRange(ctx, pro.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	slots, err := schedule.Generate(schedule.GenerateInput{
		Hours:        hours,
		Schedule:     sched,
		Blocks:       blocks,
		Appointments: appointments,
		Duration:     time.Duration(svc.DurationMin) * time.Minute,
		Step:         schedule.EffectiveStep(biz, pro),
		Date:         dayStart,
		Now:          timezone.NowIn(biz.Timezone),
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.TimeSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, domain.TimeSlot{
			Start: s.Start.Format("15:04"),
			End:   s.End.Format("15:04"),
		})
	}

	return out, nil
}
