package booking

import (
	"context"
	"time"

	domain "github.com/agendly-app/agendly-api/internal/domain/booking"
	"github.com/agendly-app/agendly-api/internal/domain/schedule"
	"github.com/agendly-app/agendly-api/internal/timezone"
)

// ProfessionalLiveStatus is one dashboard row: free/busy/unavailable right
// now, with the minutes that matter for the front desk.
type ProfessionalLiveStatus struct {
	ProfessionalID   uint       `json:"professional_id"`
	Name             string     `json:"name"`
	State            string     `json:"state"`
	Reason           string     `json:"reason,omitempty"`
	MinutesRemaining int        `json:"minutes_remaining,omitempty"`
	FreeMinutes      int        `json:"free_minutes,omitempty"`
	NextStart        *time.Time `json:"next_start,omitempty"`
}

type LiveStatus struct {
	repo domain.Repository
}

func NewLiveStatus(repo domain.Repository) *LiveStatus {
	return &LiveStatus{repo: repo}
}

// Execute derives the live view for every active professional at now. It is
// computed on demand from current records; there is no background refresh and
// nothing is written. A zero now means "current instant in the business
// timezone".
func (uc *LiveStatus) Execute(
	ctx context.Context,
	businessID uint,
	now time.Time,
) ([]ProfessionalLiveStatus, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if now.IsZero() {
		now = timezone.NowIn(biz.Timezone)
	} else {
		now = now.In(timezone.Location(biz.Timezone))
	}

	hours, err := uc.repo.GetBusinessHours(ctx, biz.ID)
	if err != nil {
		return nil, err
	}

	pros, err := uc.repo.ListActiveProfessionals(ctx, biz.ID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	out := make([]ProfessionalLiveStatus, 0, len(pros))

	for i := range pros {
		pro := &pros[i]

		sched, err := uc.repo.GetWeeklySchedule(ctx, pro.ID, int(now.Weekday()))
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

		st := schedule.Live(schedule.LiveInput{
			Hours:        hours,
			Schedule:     sched,
			Blocks:       blocks,
			Appointments: appointments,
			Now:          now,
		})

		out = append(out, ProfessionalLiveStatus{
			ProfessionalID:   pro.ID,
			Name:             pro.Name,
			State:            string(st.State),
			Reason:           st.Reason,
			MinutesRemaining: st.MinutesRemaining,
			FreeMinutes:      st.FreeMinutes,
			NextStart:        st.NextStart,
		})
	}

	return out, nil
}
