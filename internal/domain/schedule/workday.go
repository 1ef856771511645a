package schedule

import (
	"time"

	"github.com/agendly-app/agendly-api/internal/models"
)

// WorkDay is a professional's resolved working window for one date, with the
// optional break carved out by the slot generator.
type WorkDay struct {
	Window Interval
	Break  *Interval
}

// ResolveWeeklySchedule places the professional's weekday configuration on a
// concrete date. A nil row, Active=false or blank times mean not working.
// Business hours are not consulted here; the slot generator intersects both.
func ResolveWeeklySchedule(row *models.WeeklySchedule, date time.Time) (WorkDay, error) {
	if row == nil || !row.Active || row.StartTime == "" || row.EndTime == "" {
		return WorkDay{}, &ClosedError{Reason: ClosedNotWorking}
	}

	start, err := TimeOnDate(date, row.StartTime)
	if err != nil {
		return WorkDay{}, &ConfigurationError{Reason: "schedule_start_time"}
	}
	end, err := TimeOnDate(date, row.EndTime)
	if err != nil {
		return WorkDay{}, &ConfigurationError{Reason: "schedule_end_time"}
	}
	if !end.After(start) {
		return WorkDay{}, &ConfigurationError{Reason: "schedule_window"}
	}

	day := WorkDay{Window: Interval{Start: start, End: end}}

	hasBreakStart := row.BreakStart != ""
	hasBreakEnd := row.BreakEnd != ""
	if hasBreakStart != hasBreakEnd {
		return WorkDay{}, &ConfigurationError{Reason: "break_window_incomplete"}
	}

	if hasBreakStart {
		bs, err := TimeOnDate(date, row.BreakStart)
		if err != nil {
			return WorkDay{}, &ConfigurationError{Reason: "break_start_time"}
		}
		be, err := TimeOnDate(date, row.BreakEnd)
		if err != nil {
			return WorkDay{}, &ConfigurationError{Reason: "break_end_time"}
		}
		if !be.After(bs) {
			return WorkDay{}, &ConfigurationError{Reason: "break_window"}
		}

		br := Interval{Start: bs, End: be}
		if !day.Window.Contains(br) {
			return WorkDay{}, &ConfigurationError{Reason: "break_outside_window"}
		}
		day.Break = &br
	}

	return day, nil
}
