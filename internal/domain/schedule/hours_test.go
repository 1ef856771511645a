package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendly-app/agendly-api/internal/models"
)

func monday() time.Time {
	return time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
}

func TestResolveBusinessHours(t *testing.T) {
	rows := []models.BusinessHours{
		{Weekday: 1, OpenTime: "09:00", CloseTime: "18:00"},
		{Weekday: 0, Closed: true},
	}

	t.Run("open weekday", func(t *testing.T) {
		iv, err := ResolveBusinessHours(rows, monday())
		require.NoError(t, err)
		assert.Equal(t, at(t, "09:00"), iv.Start)
		assert.Equal(t, at(t, "18:00"), iv.End)
	})

	t.Run("closed weekday", func(t *testing.T) {
		sunday := monday().AddDate(0, 0, -1)
		_, err := ResolveBusinessHours(rows, sunday)
		closed, ok := AsClosed(err)
		require.True(t, ok)
		assert.Equal(t, ClosedBusiness, closed.Reason)
	})

	t.Run("missing weekday", func(t *testing.T) {
		tuesday := monday().AddDate(0, 0, 1)
		_, err := ResolveBusinessHours(rows, tuesday)
		_, ok := AsClosed(err)
		assert.True(t, ok)
	})

	t.Run("inverted window", func(t *testing.T) {
		bad := []models.BusinessHours{
			{Weekday: 1, OpenTime: "18:00", CloseTime: "09:00"},
		}
		_, err := ResolveBusinessHours(bad, monday())
		assert.True(t, IsConfiguration(err))
	})

	t.Run("malformed open time", func(t *testing.T) {
		bad := []models.BusinessHours{
			{Weekday: 1, OpenTime: "9am", CloseTime: "18:00"},
		}
		_, err := ResolveBusinessHours(bad, monday())
		assert.True(t, IsConfiguration(err))
	})
}

func TestTimeOnDate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := TimeOnDate(monday(), "14:30")
		require.NoError(t, err)
		assert.Equal(t, 14, got.Hour())
		assert.Equal(t, 30, got.Minute())
		assert.Equal(t, monday().Day(), got.Day())
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("invalid", func(t *testing.T) {
		for _, hm := range []string{"", "25:00", "12:60", "12", "ab:cd", "12:00:00"} {
			_, err := TimeOnDate(monday(), hm)
			assert.Error(t, err, hm)
		}
	})
}
