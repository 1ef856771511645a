package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendly-app/agendly-api/internal/audit"
	domain "github.com/agendly-app/agendly-api/internal/domain/booking"
	"github.com/agendly-app/agendly-api/internal/domain/schedule"
	"github.com/agendly-app/agendly-api/internal/httperr"
)

func availabilityInput() domain.AvailabilityInput {
	return domain.AvailabilityInput{
		BusinessID:     testBusinessID,
		ProfessionalID: testProfessionalID,
		ServiceID:      testServiceID,
		Date:           bookingDay(),
	}
}

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("full day", func(t *testing.T) {
		repo := seedRepo()
		uc := NewGetAvailability(repo)

		slots, err := uc.Execute(ctx, availabilityInput())
		require.NoError(t, err)

		// 09:00-18:00 at 30-minute steps, minus the 12:00-13:00 break
		require.Len(t, slots, 16)
		assert.Equal(t, domain.TimeSlot{Start: "09:00", End: "09:30"}, slots[0])
		assert.Equal(t, domain.TimeSlot{Start: "17:30", End: "18:00"}, slots[15])

		for _, s := range slots {
			assert.NotEqual(t, "12:00", s.Start)
			assert.NotEqual(t, "12:30", s.Start)
		}
	})

	t.Run("booked ranges disappear", func(t *testing.T) {
		repo := seedRepo()
		ucCreate := NewCreateAppointment(repo, audit.NewDispatcher(nil))

		_, err := ucCreate.Execute(ctx, createInput("10:00"))
		require.NoError(t, err)

		slots, err := NewGetAvailability(repo).Execute(ctx, availabilityInput())
		require.NoError(t, err)

		starts := make([]string, 0, len(slots))
		for _, s := range slots {
			starts = append(starts, s.Start)
		}
		assert.NotContains(t, starts, "10:00")
		assert.Contains(t, starts, "09:30")
		assert.Contains(t, starts, "10:30")
	})

	t.Run("professional buffer overrides the step", func(t *testing.T) {
		repo := seedRepo()
		buffer := 60
		repo.pros[testProfessionalID].BufferMinutes = &buffer

		slots, err := NewGetAvailability(repo).Execute(ctx, availabilityInput())
		require.NoError(t, err)

		require.NotEmpty(t, slots)
		assert.Equal(t, "09:00", slots[0].Start)
		assert.Equal(t, "10:00", slots[1].Start)
	})

	t.Run("not working day is a typed closed error", func(t *testing.T) {
		repo := seedRepo()
		delete(repo.weekly, testProfessionalID)

		_, err := NewGetAvailability(repo).Execute(ctx, availabilityInput())
		closed, ok := schedule.AsClosed(err)
		require.True(t, ok)
		assert.Equal(t, schedule.ClosedNotWorking, closed.Reason)
	})

	t.Run("misconfigured buffer is a configuration error", func(t *testing.T) {
		repo := seedRepo()
		repo.business.SlotIntervalMinutes = 0

		_, err := NewGetAvailability(repo).Execute(ctx, availabilityInput())
		assert.True(t, schedule.IsConfiguration(err))
	})

	t.Run("unknown service", func(t *testing.T) {
		repo := seedRepo()
		in := availabilityInput()
		in.ServiceID = 999

		_, err := NewGetAvailability(repo).Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	})

	t.Run("booking then listing reflects the commit", func(t *testing.T) {
		repo := seedRepo()
		ucAvail := NewGetAvailability(repo)
		ucCreate := NewCreateAppointment(repo, audit.NewDispatcher(nil))

		before, err := ucAvail.Execute(ctx, availabilityInput())
		require.NoError(t, err)

		_, err = ucCreate.Execute(ctx, createInput("14:00"))
		require.NoError(t, err)

		after, err := ucAvail.Execute(ctx, availabilityInput())
		require.NoError(t, err)
		assert.Len(t, after, len(before)-1)
	})
}

func TestListAppointmentsByDate(t *testing.T) {
	ctx := context.Background()
	repo := seedRepo()
	ucCreate := NewCreateAppointment(repo, audit.NewDispatcher(nil))

	_, err := ucCreate.Execute(ctx, createInput("14:00"))
	require.NoError(t, err)
	_, err = ucCreate.Execute(ctx, createInput("15:00"))
	require.NoError(t, err)

	list, err := NewListAppointmentsByDate(repo).Execute(
		ctx, testProfessionalID, testBusinessID, bookingDay(),
	)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	other, err := NewListAppointmentsByDate(repo).Execute(
		ctx, testProfessionalID, testBusinessID, bookingDay().AddDate(0, 0, 1),
	)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestListAppointmentsByMonth(t *testing.T) {
	ctx := context.Background()
	repo := seedRepo()
	ucCreate := NewCreateAppointment(repo, audit.NewDispatcher(nil))

	_, err := ucCreate.Execute(ctx, createInput("14:00"))
	require.NoError(t, err)

	day := bookingDay()
	list, err := NewListAppointmentsByMonth(repo).Execute(
		ctx, testProfessionalID, testBusinessID, day.Year(), int(day.Month()),
	)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestLiveStatusUseCase(t *testing.T) {
	ctx := context.Background()

	day := bookingDay()
	now := day.Add(10*time.Hour + 15*time.Minute)

	t.Run("free with nothing booked", func(t *testing.T) {
		repo := seedRepo()

		statuses, err := NewLiveStatus(repo).Execute(ctx, testBusinessID, now)
		require.NoError(t, err)
		require.Len(t, statuses, 1)

		assert.Equal(t, testProfessionalID, statuses[0].ProfessionalID)
		assert.Equal(t, "free", statuses[0].State)
	})

	t.Run("busy during a booking", func(t *testing.T) {
		repo := seedRepo()
		ucCreate := NewCreateAppointment(repo, audit.NewDispatcher(nil))
		_, err := ucCreate.Execute(ctx, createInput("10:00"))
		require.NoError(t, err)

		statuses, err := NewLiveStatus(repo).Execute(ctx, testBusinessID, now)
		require.NoError(t, err)
		require.Len(t, statuses, 1)

		assert.Equal(t, "busy", statuses[0].State)
		assert.Equal(t, 15, statuses[0].MinutesRemaining)
	})

	t.Run("unavailable outside hours", func(t *testing.T) {
		repo := seedRepo()

		statuses, err := NewLiveStatus(repo).Execute(ctx, testBusinessID, day.Add(7*time.Hour))
		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.Equal(t, "unavailable", statuses[0].State)
	})
}
