package schedule

import (
	"sort"
	"time"

	"github.com/agendly-app/agendly-api/internal/models"
)

// ResolveBlocks clamps time blocks to the given date and returns the resulting
// unavailable intervals ordered by start. Blocks that miss the date entirely
// are dropped. Callers pass both professional-scoped and business-wide blocks;
// any time inside one of these is unavailable regardless of schedule.
func ResolveBlocks(blocks []models.TimeBlock, date time.Time) []Interval {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	day := Interval{Start: dayStart, End: dayStart.Add(24 * time.Hour)}

	var out []Interval
	for _, b := range blocks {
		iv, ok := Clamp(Interval{Start: b.StartTime, End: b.EndTime}, day)
		if !ok {
			continue
		}
		out = append(out, iv)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})

	return out
}

// coversWindow reports whether the union of the (sorted) blocks covers the
// whole window, i.e. nothing in the window is bookable at all.
func coversWindow(window Interval, blocks []Interval) bool {
	cursor := window.Start
	for _, b := range blocks {
		if b.Start.After(cursor) {
			return false
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
		if !cursor.Before(window.End) {
			return true
		}
	}
	return !cursor.Before(window.End)
}
