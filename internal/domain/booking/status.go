package booking

import "github.com/agendly-app/agendly-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// Lifecycle: pending -> confirmed -> in_progress -> completed, with
// pending|confirmed -> cancelled and confirmed|in_progress -> no_show as
// alternate terminal branches. Cancellation is a status change, never a
// removal, so historical conflict checks stay consistent.

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCheckIn(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanNoShow(current Status) error {
	if current != StatusConfirmed && current != StatusInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus picks the creation status by payment path: pending while a
// payment link is outstanding, confirmed for on-site payment.
func InitialStatus(paymentLink bool) Status {
	if paymentLink {
		return StatusPending
	}
	return StatusConfirmed
}

// OccupiesRange reports whether an appointment in this status still reserves
// its time range for conflict purposes. Everything except cancelled does,
// including completed and no_show: they represent time actually held.
func OccupiesRange(current Status) bool {
	return current != StatusCancelled
}
