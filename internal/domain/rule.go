package domain

import (
	"errors"
	"time"

	"salonik/pkg/types"
)

// RuleType тип правила расписания салона
type RuleType string

const (
	// RuleWeekly еженедельное правило, привязанное к дню недели
	RuleWeekly RuleType = "weekly"

	// RuleSpecificDate правило на конкретную календарную дату
	RuleSpecificDate RuleType = "specific_date"
)

var (
	// ErrInvalidRule возвращается при нарушении инвариантов правила
	ErrInvalidRule = errors.New("invalid operating rule")
)

// OperatingRule окно рабочего времени салона
// У еженедельного правила задан Weekday, у правила на дату - SpecificDate, ровно одно из двух
type OperatingRule struct {
	ID           int64
	RuleType     RuleType
	Weekday      *int       // 0 = воскресенье ... 6 = суббота (как time.Weekday)
	SpecificDate *time.Time // дата без времени
	StartTime    types.TimeString
	EndTime      types.TimeString
	Active       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет инварианты правила
func (r *OperatingRule) Validate() error {
	switch r.RuleType {
	case RuleWeekly:
		if r.Weekday == nil || r.SpecificDate != nil {
			return errors.Join(ErrInvalidRule, errors.New("weekly rule requires weekday and no specific date"))
		}
		if *r.Weekday < 0 || *r.Weekday > 6 {
			return errors.Join(ErrInvalidRule, errors.New("weekday must be in range 0-6"))
		}
	case RuleSpecificDate:
		if r.SpecificDate == nil || r.Weekday != nil {
			return errors.Join(ErrInvalidRule, errors.New("specific date rule requires date and no weekday"))
		}
	default:
		return errors.Join(ErrInvalidRule, errors.New("unknown rule type"))
	}

	if err := r.StartTime.Validate(); err != nil {
		return errors.Join(ErrInvalidRule, err)
	}
	if err := r.EndTime.Validate(); err != nil {
		return errors.Join(ErrInvalidRule, err)
	}
	if !r.StartTime.IsBefore(r.EndTime) {
		return errors.Join(ErrInvalidRule, errors.New("start time must be before end time"))
	}

	return nil
}

// AppliesTo проверяет, действует ли правило на указанную дату
// Неактивные правила не действуют никогда
func (r *OperatingRule) AppliesTo(date time.Time) bool {
	if !r.Active {
		return false
	}

	switch r.RuleType {
	case RuleWeekly:
		return r.Weekday != nil && int(date.Weekday()) == *r.Weekday
	case RuleSpecificDate:
		if r.SpecificDate == nil {
			return false
		}
		y1, m1, d1 := r.SpecificDate.Date()
		y2, m2, d2 := date.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	default:
		return false
	}
}
