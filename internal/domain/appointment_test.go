package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonik/pkg/types"
)

func appt(start types.TimeString, durationMinutes int, status AppointmentStatus) *Appointment {
	return &Appointment{
		StartTime:       start,
		DurationMinutes: durationMinutes,
		Status:          status,
	}
}

func TestAppointment_EndTime(t *testing.T) {
	a := appt("09:00", 60, StatusConfirmed)
	end, err := a.EndTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), end)
}

func TestAppointment_Overlaps(t *testing.T) {
	// Запись 09:00-10:00
	a := appt("09:00", 60, StatusConfirmed)

	tests := []struct {
		name  string
		start types.TimeString
		end   types.TimeString
		want  bool
	}{
		{"identical interval", "09:00", "10:00", true},
		{"slot inside appointment", "09:30", "10:00", true},
		{"appointment inside slot", "08:00", "12:00", true},
		{"partial overlap at start", "08:30", "09:30", true},
		{"partial overlap at end", "09:30", "10:30", true},
		{"adjacent before does not overlap", "08:30", "09:00", false},
		{"adjacent after does not overlap", "10:00", "10:30", false},
		{"fully before", "07:00", "08:00", false},
		{"fully after", "11:00", "12:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.start, tt.end))
		})
	}
}

func TestAppointment_IsActive(t *testing.T) {
	assert.True(t, appt("09:00", 30, StatusPending).IsActive())
	assert.True(t, appt("09:00", 30, StatusConfirmed).IsActive())
	assert.True(t, appt("09:00", 30, StatusCompleted).IsActive())
	assert.False(t, appt("09:00", 30, StatusCancelled).IsActive())
}

func TestAppointment_IsTerminal(t *testing.T) {
	assert.False(t, appt("09:00", 30, StatusPending).IsTerminal())
	assert.False(t, appt("09:00", 30, StatusConfirmed).IsTerminal())
	assert.True(t, appt("09:00", 30, StatusCompleted).IsTerminal())
	assert.True(t, appt("09:00", 30, StatusCancelled).IsTerminal())
}
