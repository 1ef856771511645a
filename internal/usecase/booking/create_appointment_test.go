package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendly-app/agendly-api/internal/audit"
	"github.com/agendly-app/agendly-api/internal/httperr"
	"github.com/agendly-app/agendly-api/internal/models"
)

const (
	testBusinessID     = uint(1)
	testProfessionalID = uint(10)
	testServiceID      = uint(5)
)

// seedRepo sets up one business open every day 09:00-18:00, one professional
// working the same hours with a 12:00-13:00 break, and one 30-minute service.
func seedRepo() *fakeRepo {
	r := newFakeRepo()

	r.business = &models.Business{
		ID:                  testBusinessID,
		Timezone:            "UTC",
		SlotIntervalMinutes: 30,
		MinAdvanceMinutes:   120,
	}

	days := make(map[int]*models.WeeklySchedule, 7)
	for wd := 0; wd < 7; wd++ {
		r.hours = append(r.hours, models.BusinessHours{
			BusinessID: testBusinessID,
			Weekday:    wd,
			OpenTime:   "09:00",
			CloseTime:  "18:00",
		})
		days[wd] = &models.WeeklySchedule{
			ProfessionalID: testProfessionalID,
			Weekday:        wd,
			Active:         true,
			StartTime:      "09:00",
			EndTime:        "18:00",
			BreakStart:     "12:00",
			BreakEnd:       "13:00",
		}
	}

	r.pros[testProfessionalID] = &models.User{
		ID:         testProfessionalID,
		BusinessID: testBusinessID,
		Name:       "Alex",
		Role:       "owner",
		Active:     true,
	}
	r.weekly[testProfessionalID] = days

	r.services[testServiceID] = &models.Service{
		ID:          testServiceID,
		BusinessID:  testBusinessID,
		Name:        "Consultation",
		DurationMin: 30,
		Active:      true,
	}

	return r
}

// bookingDay returns a date far enough ahead that the minimum-advance rule
// never interferes.
func bookingDay() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 7)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func createInput(at string) CreateAppointmentInput {
	return CreateAppointmentInput{
		BusinessID:     testBusinessID,
		ProfessionalID: testProfessionalID,
		ClientName:     "Jordan",
		ClientPhone:    "+15550001111",
		ServiceID:      testServiceID,
		Date:           bookingDay().Format("2006-01-02"),
		Time:           at,
	}
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()
	dispatcher := audit.NewDispatcher(nil)

	t.Run("success", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, dispatcher)

		ap, err := uc.Execute(ctx, createInput("14:00"))
		require.NoError(t, err)

		assert.Equal(t, "confirmed", ap.Status)
		assert.NotEmpty(t, ap.Reference)
		assert.Equal(t, 30*time.Minute, ap.EndTime.Sub(ap.StartTime))
		assert.Equal(t, "unpaid", ap.PaymentStatus)
	})

	t.Run("payment link starts pending", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, dispatcher)

		in := createInput("14:00")
		in.PaymentLink = true

		ap, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "pending", ap.Status)
	})

	t.Run("client is reused by phone", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, dispatcher)

		first, err := uc.Execute(ctx, createInput("14:00"))
		require.NoError(t, err)
		second, err := uc.Execute(ctx, createInput("15:00"))
		require.NoError(t, err)

		assert.Equal(t, first.ClientID, second.ClientID)
	})

	t.Run("exact range already taken", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, dispatcher)

		_, err := uc.Execute(ctx, createInput("14:00"))
		require.NoError(t, err)

		_, err = uc.Execute(ctx, createInput("14:00"))
		assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	})

	t.Run("partial overlap is a conflict too", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, dispatcher)

		_, err := uc.Execute(ctx, createInput("14:00"))
		require.NoError(t, err)

		_, err = uc.Execute(ctx, createInput("14:15"))
		assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	})

	t.Run("back to back bookings touch without conflict", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, dispatcher)

		_, err := uc.Execute(ctx, createInput("14:00"))
		require.NoError(t, err)

		_, err = uc.Execute(ctx, createInput("14:30"))
		assert.NoError(t, err)
	})

	t.Run("too soon", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, dispatcher)

		soon := time.Now().UTC().Add(30 * time.Minute)
		in := createInput("14:00")
		in.Date = soon.Format("2006-01-02")
		in.Time = soon.Format("15:04")

		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "too_soon"))
	})

	t.Run("outside working hours", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, dispatcher)

		_, err := uc.Execute(ctx, createInput("08:00"))
		assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
	})

	t.Run("spilling past closing is rejected", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, dispatcher)

		_, err := uc.Execute(ctx, createInput("17:45"))
		assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
	})

	t.Run("overlapping the break is rejected", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, dispatcher)

		_, err := uc.Execute(ctx, createInput("11:45"))
		assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
	})

	t.Run("blocked range is rejected", func(t *testing.T) {
		repo := seedRepo()
		day := bookingDay()
		repo.blocks = append(repo.blocks, models.TimeBlock{
			BusinessID: testBusinessID,
			StartTime:  day.Add(14 * time.Hour),
			EndTime:    day.Add(15 * time.Hour),
			Type:       "maintenance",
		})
		uc := NewCreateAppointment(repo, dispatcher)

		_, err := uc.Execute(ctx, createInput("14:00"))
		assert.True(t, httperr.IsBusiness(err, "time_blocked"))
	})

	t.Run("unknown service", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, dispatcher)

		in := createInput("14:00")
		in.ServiceID = 999

		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	})

	t.Run("invalid date", func(t *testing.T) {
		repo := seedRepo()
		uc := NewCreateAppointment(repo, dispatcher)

		in := createInput("14:00")
		in.Date = "not-a-date"

		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
	})
}

// Two clients race for the same range; exactly one booking may win.
func TestCreateAppointmentConcurrentCommit(t *testing.T) {
	ctx := context.Background()
	repo := seedRepo()
	uc := NewCreateAppointment(repo, audit.NewDispatcher(nil))

	const racers = 2
	errs := make([]error, racers)

	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := createInput("14:00")
			in.ClientPhone = in.ClientPhone + string(rune('0'+i))
			_, errs[i] = uc.Execute(ctx, in)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case httperr.IsBusiness(err, "time_conflict"):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, conflicts)
	assert.Len(t, repo.appointments, 1)
}
