package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendly-app/agendly-api/internal/audit"
	"github.com/agendly-app/agendly-api/internal/httperr"
	"github.com/agendly-app/agendly-api/internal/models"
)

func TestStatusTransitionUseCases(t *testing.T) {
	ctx := context.Background()
	dispatcher := audit.NewDispatcher(nil)

	book := func(t *testing.T, repo *fakeRepo, paymentLink bool) *models.Appointment {
		t.Helper()
		in := createInput("14:00")
		in.PaymentLink = paymentLink
		ap, err := NewCreateAppointment(repo, dispatcher).Execute(ctx, in)
		require.NoError(t, err)
		return ap
	}

	t.Run("confirm a pending booking", func(t *testing.T) {
		repo := seedRepo()
		ap := book(t, repo, true)

		out, err := NewConfirmAppointment(repo, dispatcher).Execute(
			ctx, testBusinessID, testProfessionalID, ap.ID,
		)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", out.Status)
	})

	t.Run("confirm twice fails", func(t *testing.T) {
		repo := seedRepo()
		ap := book(t, repo, true)
		uc := NewConfirmAppointment(repo, dispatcher)

		_, err := uc.Execute(ctx, testBusinessID, testProfessionalID, ap.ID)
		require.NoError(t, err)

		_, err = uc.Execute(ctx, testBusinessID, testProfessionalID, ap.ID)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	})

	t.Run("cancel frees the range for rebooking", func(t *testing.T) {
		repo := seedRepo()
		ap := book(t, repo, false)

		_, err := NewCancelAppointment(repo, dispatcher).Execute(
			ctx, testBusinessID, testProfessionalID, ap.ID,
		)
		require.NoError(t, err)

		// the exact same range books again
		in := createInput("14:00")
		in.ClientPhone = "+15550002222"
		_, err = NewCreateAppointment(repo, dispatcher).Execute(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("check in then complete", func(t *testing.T) {
		repo := seedRepo()
		ap := book(t, repo, false)

		out, err := NewCheckInAppointment(repo, dispatcher).Execute(
			ctx, testBusinessID, testProfessionalID, ap.ID,
		)
		require.NoError(t, err)
		assert.Equal(t, "in_progress", out.Status)
		require.NotNil(t, out.CheckedInAt)

		out, err = NewCompleteAppointment(repo, dispatcher).Execute(
			ctx, testBusinessID, testProfessionalID, ap.ID,
		)
		require.NoError(t, err)
		assert.Equal(t, "completed", out.Status)
		require.NotNil(t, out.CompletedAt)
	})

	t.Run("no show from confirmed", func(t *testing.T) {
		repo := seedRepo()
		ap := book(t, repo, false)

		out, err := NewNoShowAppointment(repo, dispatcher).Execute(
			ctx, testBusinessID, testProfessionalID, ap.ID,
		)
		require.NoError(t, err)
		assert.Equal(t, "no_show", out.Status)
	})

	t.Run("completed still blocks the range", func(t *testing.T) {
		repo := seedRepo()
		ap := book(t, repo, false)

		_, err := NewCheckInAppointment(repo, dispatcher).Execute(
			ctx, testBusinessID, testProfessionalID, ap.ID,
		)
		require.NoError(t, err)
		_, err = NewCompleteAppointment(repo, dispatcher).Execute(
			ctx, testBusinessID, testProfessionalID, ap.ID,
		)
		require.NoError(t, err)

		in := createInput("14:00")
		in.ClientPhone = "+15550002222"
		_, err = NewCreateAppointment(repo, dispatcher).Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	})

	t.Run("another professional's appointment is invisible", func(t *testing.T) {
		repo := seedRepo()
		ap := book(t, repo, false)

		_, err := NewCancelAppointment(repo, dispatcher).Execute(
			ctx, testBusinessID, testProfessionalID+1, ap.ID,
		)
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})
}
