package schedule

import "time"

// Interval is a half-open time range [Start, End). Touching endpoints do not
// overlap: an appointment ending at 10:00 and one starting at 10:00 coexist.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) IsZero() bool {
	return iv.Start.IsZero() && iv.End.IsZero()
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

func (iv Interval) Overlaps(other Interval) bool {
	return Overlaps(iv.Start, iv.End, other.Start, other.End)
}

// Contains reports whether other lies entirely inside iv.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Within reports start <= point < end.
func Within(point, start, end time.Time) bool {
	return !point.Before(start) && point.Before(end)
}

// Clamp intersects iv with bounds. The second return is false when the
// intersection is empty.
func Clamp(iv, bounds Interval) (Interval, bool) {
	out := iv
	if out.Start.Before(bounds.Start) {
		out.Start = bounds.Start
	}
	if out.End.After(bounds.End) {
		out.End = bounds.End
	}
	if !out.End.After(out.Start) {
		return Interval{}, false
	}
	return out, true
}
