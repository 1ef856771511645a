package schedule

import (
	"time"

	"github.com/agendly-app/agendly-api/internal/domain/booking"
	"github.com/agendly-app/agendly-api/internal/models"
)

// HasConflict reports whether [start,end) truly overlaps any non-cancelled
// appointment in the list, ignoring excludeID when non-zero (the appointment
// being edited). Completed and no-show appointments still occupy their range;
// only cancellation frees it.
func HasConflict(appointments []models.Appointment, start, end time.Time, excludeID uint) bool {
	for i := range appointments {
		ap := &appointments[i]
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if ap.Status == string(booking.StatusCancelled) {
			continue
		}
		if Overlaps(start, end, ap.StartTime, ap.EndTime) {
			return true
		}
	}
	return false
}
