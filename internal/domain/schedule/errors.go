package schedule

import "errors"

// ClosedReason explains a normal empty-availability day.
type ClosedReason string

const (
	ClosedBusiness   ClosedReason = "business_closed"
	ClosedNotWorking ClosedReason = "not_working"
	ClosedBlocked    ClosedReason = "blocked"
)

// ClosedError is not a failure: the business is closed, the professional is
// not working, or a block removes the whole day. Callers show "closed" rather
// than an error.
type ClosedError struct {
	Reason ClosedReason
}

func (e *ClosedError) Error() string {
	return "closed: " + string(e.Reason)
}

func AsClosed(err error) (*ClosedError, bool) {
	var ce *ClosedError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ConfigurationError flags inconsistent schedule data (inverted windows,
// malformed breaks, non-positive buffer). Slot generation refuses to guess a
// fallback and surfaces the misconfiguration instead.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "schedule misconfigured: " + e.Reason
}

func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
