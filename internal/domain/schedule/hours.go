package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agendly-app/agendly-api/internal/models"
)

// ResolveBusinessHours maps a calendar date to the business open window for
// that weekday. A missing row or Closed=true yields ClosedError; an inverted
// or malformed window yields ConfigurationError.
func ResolveBusinessHours(rows []models.BusinessHours, date time.Time) (Interval, error) {
	weekday := int(date.Weekday())

	var row *models.BusinessHours
	for i := range rows {
		if rows[i].Weekday == weekday {
			row = &rows[i]
			break
		}
	}

	if row == nil || row.Closed {
		return Interval{}, &ClosedError{Reason: ClosedBusiness}
	}

	open, err := TimeOnDate(date, row.OpenTime)
	if err != nil {
		return Interval{}, &ConfigurationError{Reason: "business_open_time"}
	}
	close, err := TimeOnDate(date, row.CloseTime)
	if err != nil {
		return Interval{}, &ConfigurationError{Reason: "business_close_time"}
	}

	if !close.After(open) {
		return Interval{}, &ConfigurationError{Reason: "business_hours_window"}
	}

	return Interval{Start: open, End: close}, nil
}

// TimeOnDate places an "HH:MM" clock value on the given date, in the date's
// location.
func TimeOnDate(date time.Time, hm string) (time.Time, error) {
	parts := strings.Split(hm, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid time %q", hm)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid hour in %q", hm)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid minute in %q", hm)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		hour, minute, 0, 0,
		date.Location(),
	), nil
}
