package schedule

import (
	"time"

	"github.com/agendly-app/agendly-api/internal/models"
)

// Slot is a candidate start time at which a service of the given duration can
// be booked without violating any constraint.
type Slot struct {
	Start time.Time
	End   time.Time
}

// GenerateInput carries everything slot generation depends on. Generation is a
// pure function of this input: no ambient settings, no clock reads.
type GenerateInput struct {
	Hours        []models.BusinessHours
	Schedule     *models.WeeklySchedule
	Blocks       []models.TimeBlock
	Appointments []models.Appointment // same professional, non-cancelled

	Duration time.Duration
	Step     time.Duration

	Date time.Time // any instant on the target day, in the business timezone
	Now  time.Time // candidates starting before Now are skipped
}

// Generate produces the ordered bookable start times for one professional,
// service and date.
//
// The effective working window is the professional's schedule capped by
// business hours. Candidates advance from the window start by Step and are
// rejected when they touch the break, a time block, or an existing
// appointment. A candidate whose end would pass the window end is never
// emitted; there are no undersized slots.
func Generate(in GenerateInput) ([]Slot, error) {
	if in.Duration <= 0 {
		return nil, &ConfigurationError{Reason: "service_duration"}
	}
	if in.Step <= 0 {
		return nil, &ConfigurationError{Reason: "slot_step"}
	}

	bizWindow, err := ResolveBusinessHours(in.Hours, in.Date)
	if err != nil {
		return nil, err
	}

	day, err := ResolveWeeklySchedule(in.Schedule, in.Date)
	if err != nil {
		return nil, err
	}

	window, ok := Clamp(day.Window, bizWindow)
	if !ok {
		// Configured hours fall entirely outside business hours.
		return nil, &ClosedError{Reason: ClosedNotWorking}
	}

	blocks := ResolveBlocks(in.Blocks, in.Date)
	if len(blocks) > 0 && coversWindow(window, blocks) {
		return nil, &ClosedError{Reason: ClosedBlocked}
	}

	var slots []Slot

	for start := window.Start; !start.Add(in.Duration).After(window.End); start = start.Add(in.Step) {
		if !in.Now.IsZero() && start.Before(in.Now) {
			continue
		}

		end := start.Add(in.Duration)

		if day.Break != nil && Overlaps(start, end, day.Break.Start, day.Break.End) {
			continue
		}

		if overlapsAny(start, end, blocks) {
			continue
		}

		if HasConflict(in.Appointments, start, end, 0) {
			continue
		}

		slots = append(slots, Slot{Start: start, End: end})
	}

	return slots, nil
}

func overlapsAny(start, end time.Time, intervals []Interval) bool {
	for _, iv := range intervals {
		if Overlaps(start, end, iv.Start, iv.End) {
			return true
		}
	}
	return false
}

// EffectiveStep resolves the buffer policy: the professional's custom buffer
// when set, otherwise the business-wide slot interval.
func EffectiveStep(business *models.Business, professional *models.User) time.Duration {
	minutes := business.SlotIntervalMinutes
	if professional != nil && professional.BufferMinutes != nil {
		minutes = *professional.BufferMinutes
	}
	return time.Duration(minutes) * time.Minute
}
