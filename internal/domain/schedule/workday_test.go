package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendly-app/agendly-api/internal/models"
)

func TestResolveWeeklySchedule(t *testing.T) {
	t.Run("working day with break", func(t *testing.T) {
		row := &models.WeeklySchedule{
			Weekday:    1,
			Active:     true,
			StartTime:  "09:00",
			EndTime:    "18:00",
			BreakStart: "12:00",
			BreakEnd:   "13:00",
		}

		day, err := ResolveWeeklySchedule(row, monday())
		require.NoError(t, err)
		assert.Equal(t, at(t, "09:00"), day.Window.Start)
		assert.Equal(t, at(t, "18:00"), day.Window.End)
		require.NotNil(t, day.Break)
		assert.Equal(t, at(t, "12:00"), day.Break.Start)
		assert.Equal(t, at(t, "13:00"), day.Break.End)
	})

	t.Run("no break", func(t *testing.T) {
		row := &models.WeeklySchedule{
			Active: true, StartTime: "09:00", EndTime: "18:00",
		}
		day, err := ResolveWeeklySchedule(row, monday())
		require.NoError(t, err)
		assert.Nil(t, day.Break)
	})

	t.Run("nil row means not working", func(t *testing.T) {
		_, err := ResolveWeeklySchedule(nil, monday())
		closed, ok := AsClosed(err)
		require.True(t, ok)
		assert.Equal(t, ClosedNotWorking, closed.Reason)
	})

	t.Run("inactive means not working", func(t *testing.T) {
		row := &models.WeeklySchedule{
			Active: false, StartTime: "09:00", EndTime: "18:00",
		}
		_, err := ResolveWeeklySchedule(row, monday())
		_, ok := AsClosed(err)
		assert.True(t, ok)
	})

	t.Run("configuration errors", func(t *testing.T) {
		cases := []struct {
			name string
			row  models.WeeklySchedule
		}{
			{"inverted window", models.WeeklySchedule{
				Active: true, StartTime: "18:00", EndTime: "09:00",
			}},
			{"break start without end", models.WeeklySchedule{
				Active: true, StartTime: "09:00", EndTime: "18:00",
				BreakStart: "12:00",
			}},
			{"inverted break", models.WeeklySchedule{
				Active: true, StartTime: "09:00", EndTime: "18:00",
				BreakStart: "13:00", BreakEnd: "12:00",
			}},
			{"break outside window", models.WeeklySchedule{
				Active: true, StartTime: "09:00", EndTime: "18:00",
				BreakStart: "18:30", BreakEnd: "19:00",
			}},
			{"malformed start", models.WeeklySchedule{
				Active: true, StartTime: "nine", EndTime: "18:00",
			}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := ResolveWeeklySchedule(&tc.row, monday())
				assert.True(t, IsConfiguration(err), "want configuration error, got %v", err)
			})
		}
	})
}
