package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agendly-app/agendly-api/internal/models"
)

func TestHasConflict(t *testing.T) {
	appointments := []models.Appointment{
		{ID: 1, Status: "confirmed", StartTime: at(t, "10:00"), EndTime: at(t, "10:30")},
		{ID: 2, Status: "cancelled", StartTime: at(t, "14:00"), EndTime: at(t, "15:00")},
		{ID: 3, Status: "completed", StartTime: at(t, "16:00"), EndTime: at(t, "16:30")},
	}

	t.Run("true overlap", func(t *testing.T) {
		assert.True(t, HasConflict(appointments, at(t, "10:15"), at(t, "10:45"), 0))
	})

	t.Run("touching endpoints do not conflict", func(t *testing.T) {
		assert.False(t, HasConflict(appointments, at(t, "09:30"), at(t, "10:00"), 0))
		assert.False(t, HasConflict(appointments, at(t, "10:30"), at(t, "11:00"), 0))
	})

	t.Run("cancelled frees the range", func(t *testing.T) {
		assert.False(t, HasConflict(appointments, at(t, "14:00"), at(t, "15:00"), 0))
	})

	t.Run("completed still occupies", func(t *testing.T) {
		assert.True(t, HasConflict(appointments, at(t, "16:00"), at(t, "16:30"), 0))
	})

	t.Run("exclude the appointment being edited", func(t *testing.T) {
		assert.False(t, HasConflict(appointments, at(t, "10:00"), at(t, "10:30"), 1))
	})

	t.Run("empty list", func(t *testing.T) {
		assert.False(t, HasConflict(nil, at(t, "10:00"), at(t, "11:00"), 0))
	})
}
