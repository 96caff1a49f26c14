package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonik/internal/domain"
	"salonik/pkg/ptr"
	"salonik/pkg/types"
)

func weeklyRule(start, end types.TimeString) *domain.OperatingRule {
	return &domain.OperatingRule{
		RuleType:  domain.RuleWeekly,
		Weekday:   ptr.Ptr(1),
		StartTime: start,
		EndTime:   end,
		Active:    true,
	}
}

func TestGenerateCandidateSlots(t *testing.T) {
	t.Run("no rules yields no slots", func(t *testing.T) {
		candidates, err := generateCandidateSlots(nil, 30)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("two hour window with 30 minute slots", func(t *testing.T) {
		rules := []*domain.OperatingRule{weeklyRule("08:00", "10:00")}

		candidates, err := generateCandidateSlots(rules, 30)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"08:00", "08:30", "09:00", "09:30"}, candidates)
	})

	t.Run("slot exceeding window end is dropped", func(t *testing.T) {
		// Окно 09:00-10:15 с шагом 30 минут: слот 10:00-10:30 не помещается
		rules := []*domain.OperatingRule{weeklyRule("09:00", "10:15")}

		candidates, err := generateCandidateSlots(rules, 30)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"09:00", "09:30"}, candidates)
	})

	t.Run("window shorter than slot yields no slots", func(t *testing.T) {
		rules := []*domain.OperatingRule{weeklyRule("09:00", "09:20")}

		candidates, err := generateCandidateSlots(rules, 30)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("overlapping rules deduplicate by start time", func(t *testing.T) {
		rules := []*domain.OperatingRule{
			weeklyRule("08:00", "12:00"),
			weeklyRule("10:00", "14:00"),
		}

		candidates, err := generateCandidateSlots(rules, 60)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"08:00", "09:00", "10:00", "11:00", "12:00", "13:00"}, candidates)
	})

	t.Run("disjoint rules produce union sorted by time", func(t *testing.T) {
		rules := []*domain.OperatingRule{
			weeklyRule("14:00", "16:00"),
			weeklyRule("08:00", "10:00"),
		}

		candidates, err := generateCandidateSlots(rules, 60)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"08:00", "09:00", "14:00", "15:00"}, candidates)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		rules := []*domain.OperatingRule{
			weeklyRule("08:00", "12:00"),
			weeklyRule("11:00", "15:00"),
		}

		first, err := generateCandidateSlots(rules, 30)
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			next, err := generateCandidateSlots(rules, 30)
			require.NoError(t, err)
			assert.Equal(t, first, next)
		}
	})
}

func TestAnnotateSlots(t *testing.T) {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	otherDay := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	candidates := []types.TimeString{"08:00", "08:30", "09:00", "09:30", "10:00"}

	activeAppt := &domain.Appointment{
		StartTime:       "09:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		ServiceName:     "Стрижка",
		MasterName:      "Анна",
	}

	t.Run("appointment occupies overlapping slots only", func(t *testing.T) {
		slots := annotateSlots(candidates, 30, []*domain.Appointment{activeAppt}, date, otherDay, 0)
		require.Len(t, slots, 5)

		assert.True(t, slots[0].Available, "08:00")
		assert.True(t, slots[1].Available, "08:30")

		// Запись 09:00-10:00 занимает слоты 09:00 и 09:30
		assert.False(t, slots[2].Available, "09:00")
		assert.Equal(t, domain.ReasonOccupied, slots[2].Reason)
		assert.Equal(t, "Стрижка", slots[2].ConflictingServiceName)
		assert.Equal(t, "Анна", slots[2].ConflictingMasterName)

		assert.False(t, slots[3].Available, "09:30")
		assert.Equal(t, domain.ReasonOccupied, slots[3].Reason)

		// Слот 10:00 граничит с записью, но не пересекается
		assert.True(t, slots[4].Available, "10:00")
	})

	t.Run("cancelled appointment frees its slots", func(t *testing.T) {
		cancelled := &domain.Appointment{
			StartTime:       "09:00",
			DurationMinutes: 60,
			Status:          domain.StatusCancelled,
		}

		slots := annotateSlots(candidates, 30, []*domain.Appointment{cancelled}, date, otherDay, 0)
		for _, slot := range slots {
			assert.True(t, slot.Available, "slot %s", slot.StartTime)
		}
	})

	t.Run("same day past slots expire", func(t *testing.T) {
		now := time.Date(2026, 9, 14, 8, 45, 0, 0, time.UTC)

		slots := annotateSlots(candidates, 30, nil, date, now, 0)

		// Слоты не позже 08:45 просрочены
		assert.False(t, slots[0].Available)
		assert.Equal(t, domain.ReasonExpired, slots[0].Reason)
		assert.False(t, slots[1].Available)
		assert.Equal(t, domain.ReasonExpired, slots[1].Reason)

		assert.True(t, slots[2].Available, "09:00")
		assert.True(t, slots[3].Available, "09:30")
	})

	t.Run("minimum notice shifts the cutoff", func(t *testing.T) {
		now := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)

		// now + 60 минут = 09:00, слоты до 09:00 включительно просрочены
		slots := annotateSlots(candidates, 30, nil, date, now, 60)

		assert.False(t, slots[0].Available, "08:00")
		assert.False(t, slots[1].Available, "08:30")
		assert.False(t, slots[2].Available, "09:00")
		assert.Equal(t, domain.ReasonExpired, slots[2].Reason)
		assert.True(t, slots[3].Available, "09:30")
		assert.True(t, slots[4].Available, "10:00")
	})

	t.Run("future day ignores current time", func(t *testing.T) {
		now := time.Date(2026, 9, 13, 23, 0, 0, 0, time.UTC)

		slots := annotateSlots(candidates, 30, nil, date, now, 120)
		for _, slot := range slots {
			assert.True(t, slot.Available, "slot %s", slot.StartTime)
		}
	})

	t.Run("expiry wins over occupancy", func(t *testing.T) {
		now := time.Date(2026, 9, 14, 9, 30, 0, 0, time.UTC)

		slots := annotateSlots(candidates, 30, []*domain.Appointment{activeAppt}, date, now, 0)

		// Слот 09:00 одновременно просрочен и занят - причина expired
		assert.False(t, slots[2].Available)
		assert.Equal(t, domain.ReasonExpired, slots[2].Reason)
		assert.Empty(t, slots[2].ConflictingServiceName)
	})
}

func TestFindConflict(t *testing.T) {
	appts := []*domain.Appointment{
		{StartTime: "11:00", DurationMinutes: 30, Status: domain.StatusCancelled, ServiceName: "Отменено"},
		{StartTime: "11:00", DurationMinutes: 30, Status: domain.StatusPending, ServiceName: "Маникюр"},
	}

	t.Run("skips cancelled appointments", func(t *testing.T) {
		conflict := findConflict("11:00", 30, appts)
		require.NotNil(t, conflict)
		assert.Equal(t, "Маникюр", conflict.ServiceName)
	})

	t.Run("no conflict outside occupied interval", func(t *testing.T) {
		assert.Nil(t, findConflict("11:30", 30, appts))
		assert.Nil(t, findConflict("10:30", 30, appts))
	})
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)

	assert.True(t, isDateInPast(time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, isDateInPast(time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, isDateInPast(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), now))
}
