package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonik/pkg/ptr"
)

func TestOperatingRule_Validate(t *testing.T) {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	t.Run("valid weekly rule", func(t *testing.T) {
		rule := &OperatingRule{
			RuleType:  RuleWeekly,
			Weekday:   ptr.Ptr(1),
			StartTime: "09:00",
			EndTime:   "18:00",
		}
		require.NoError(t, rule.Validate())
	})

	t.Run("valid specific date rule", func(t *testing.T) {
		rule := &OperatingRule{
			RuleType:     RuleSpecificDate,
			SpecificDate: &date,
			StartTime:    "10:00",
			EndTime:      "16:00",
		}
		require.NoError(t, rule.Validate())
	})

	t.Run("weekly rule without weekday", func(t *testing.T) {
		rule := &OperatingRule{RuleType: RuleWeekly, StartTime: "09:00", EndTime: "18:00"}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidRule)
	})

	t.Run("weekly rule with both weekday and date", func(t *testing.T) {
		rule := &OperatingRule{
			RuleType:     RuleWeekly,
			Weekday:      ptr.Ptr(3),
			SpecificDate: &date,
			StartTime:    "09:00",
			EndTime:      "18:00",
		}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidRule)
	})

	t.Run("weekday out of range", func(t *testing.T) {
		rule := &OperatingRule{RuleType: RuleWeekly, Weekday: ptr.Ptr(7), StartTime: "09:00", EndTime: "18:00"}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidRule)
	})

	t.Run("specific date rule without date", func(t *testing.T) {
		rule := &OperatingRule{RuleType: RuleSpecificDate, StartTime: "09:00", EndTime: "18:00"}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidRule)
	})

	t.Run("unknown rule type", func(t *testing.T) {
		rule := &OperatingRule{RuleType: "monthly", StartTime: "09:00", EndTime: "18:00"}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidRule)
	})

	t.Run("start not before end", func(t *testing.T) {
		rule := &OperatingRule{RuleType: RuleWeekly, Weekday: ptr.Ptr(1), StartTime: "18:00", EndTime: "09:00"}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidRule)

		rule = &OperatingRule{RuleType: RuleWeekly, Weekday: ptr.Ptr(1), StartTime: "09:00", EndTime: "09:00"}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidRule)
	})

	t.Run("malformed time", func(t *testing.T) {
		rule := &OperatingRule{RuleType: RuleWeekly, Weekday: ptr.Ptr(1), StartTime: "9am", EndTime: "18:00"}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidRule)
	})
}

func TestOperatingRule_AppliesTo(t *testing.T) {
	// 2026-09-14 - понедельник
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	t.Run("weekly rule matches its weekday", func(t *testing.T) {
		rule := &OperatingRule{
			RuleType:  RuleWeekly,
			Weekday:   ptr.Ptr(int(time.Monday)),
			StartTime: "09:00",
			EndTime:   "18:00",
			Active:    true,
		}
		assert.True(t, rule.AppliesTo(monday))
		assert.False(t, rule.AppliesTo(tuesday))
	})

	t.Run("specific date rule matches its date only", func(t *testing.T) {
		rule := &OperatingRule{
			RuleType:     RuleSpecificDate,
			SpecificDate: &monday,
			StartTime:    "09:00",
			EndTime:      "18:00",
			Active:       true,
		}
		assert.True(t, rule.AppliesTo(monday))
		assert.False(t, rule.AppliesTo(tuesday))
	})

	t.Run("inactive rule never applies", func(t *testing.T) {
		rule := &OperatingRule{
			RuleType:  RuleWeekly,
			Weekday:   ptr.Ptr(int(time.Monday)),
			StartTime: "09:00",
			EndTime:   "18:00",
			Active:    false,
		}
		assert.False(t, rule.AppliesTo(monday))
	})
}
