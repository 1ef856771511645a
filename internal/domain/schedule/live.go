package schedule

import (
	"time"

	"github.com/agendly-app/agendly-api/internal/domain/booking"
	"github.com/agendly-app/agendly-api/internal/models"
)

type LiveState string

const (
	StateFree        LiveState = "free"
	StateBusy        LiveState = "busy"
	StateUnavailable LiveState = "unavailable"
)

// LiveStatus is the derived "right now" view of one professional. It is a
// read-only projection; nothing here mutates appointment state.
type LiveStatus struct {
	State            LiveState
	Reason           string
	MinutesRemaining int        // busy: minutes until the current appointment ends
	FreeMinutes      int        // free: minutes until the next appointment or closing
	NextStart        *time.Time // free: start of the next appointment today, if any
}

// LiveInput mirrors GenerateInput for the current instant.
type LiveInput struct {
	Hours        []models.BusinessHours
	Schedule     *models.WeeklySchedule
	Blocks       []models.TimeBlock
	Appointments []models.Appointment
	Now          time.Time
}

// Live evaluates the resolvers against Now. Busy means a pending, confirmed or
// in-progress appointment covers the instant; a cancelled, completed or
// no-show one does not hold the professional.
func Live(in LiveInput) LiveStatus {
	now := in.Now

	bizWindow, err := ResolveBusinessHours(in.Hours, now)
	if err != nil {
		return unavailable(err, string(ClosedBusiness))
	}
	if !Within(now, bizWindow.Start, bizWindow.End) {
		return LiveStatus{State: StateUnavailable, Reason: "outside_business_hours"}
	}

	day, err := ResolveWeeklySchedule(in.Schedule, now)
	if err != nil {
		return unavailable(err, string(ClosedNotWorking))
	}

	window, ok := Clamp(day.Window, bizWindow)
	if !ok || !Within(now, window.Start, window.End) {
		return LiveStatus{State: StateUnavailable, Reason: "off_shift"}
	}

	if day.Break != nil && Within(now, day.Break.Start, day.Break.End) {
		return LiveStatus{State: StateUnavailable, Reason: "on_break"}
	}

	for _, b := range ResolveBlocks(in.Blocks, now) {
		if Within(now, b.Start, b.End) {
			return LiveStatus{State: StateUnavailable, Reason: string(ClosedBlocked)}
		}
	}

	var next *models.Appointment
	for i := range in.Appointments {
		ap := &in.Appointments[i]
		if !occupies(ap.Status) {
			continue
		}
		if Within(now, ap.StartTime, ap.EndTime) {
			return LiveStatus{
				State:            StateBusy,
				MinutesRemaining: minutesUntil(now, ap.EndTime),
			}
		}
		if ap.StartTime.After(now) && (next == nil || ap.StartTime.Before(next.StartTime)) {
			next = ap
		}
	}

	status := LiveStatus{State: StateFree}
	horizon := window.End
	if next != nil && next.StartTime.Before(horizon) {
		start := next.StartTime
		status.NextStart = &start
		horizon = start
	}
	status.FreeMinutes = minutesUntil(now, horizon)

	return status
}

func occupies(status string) bool {
	switch booking.Status(status) {
	case booking.StatusPending, booking.StatusConfirmed, booking.StatusInProgress:
		return true
	}
	return false
}

func minutesUntil(now, t time.Time) int {
	d := t.Sub(now)
	if d <= 0 {
		return 0
	}
	return int((d + time.Minute - 1) / time.Minute)
}

func unavailable(err error, fallback string) LiveStatus {
	if ce, ok := AsClosed(err); ok {
		return LiveStatus{State: StateUnavailable, Reason: string(ce.Reason)}
	}
	if IsConfiguration(err) {
		return LiveStatus{State: StateUnavailable, Reason: "misconfigured_schedule"}
	}
	return LiveStatus{State: StateUnavailable, Reason: fallback}
}
