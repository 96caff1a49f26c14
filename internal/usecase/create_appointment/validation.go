package create_appointment

import (
	"fmt"
	"time"

	"salonik/internal/domain"
	"salonik/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.MasterID <= 0 {
		return fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note must not exceed %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}

// validateDate проверяет ограничения даты записи
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	dateOnly := truncateToDay(requestDate)
	today := truncateToDay(now)

	if dateOnly.Before(today) {
		return ErrDateInPast
	}

	if advanceBookingDays > 0 {
		maxDate := today.AddDate(0, 0, advanceBookingDays)
		if dateOnly.After(maxDate) {
			return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
		}
	}

	return nil
}

// validateNotice проверяет, что до начала слота остается не меньше minNoticeMinutes
// Ограничение действует только для записей на сегодня
func validateNotice(requestDate time.Time, startTime types.TimeString, now time.Time, minNoticeMinutes int) error {
	if !truncateToDay(requestDate).Equal(truncateToDay(now)) {
		return nil
	}

	cutoff, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes)
	if err != nil {
		// Текущее время + нотис вышло за пределы суток: сегодня записаться уже нельзя
		return ErrTooLateToBook
	}

	if !startTime.IsAfter(cutoff) {
		return ErrTooLateToBook
	}

	return nil
}

// isWithinSchedule проверяет, что интервал услуги целиком лежит в расписании
// Запись занимает последовательность слотов сетки начиная с startTime;
// каждый из этих слотов должен порождаться хотя бы одним правилом
func isWithinSchedule(rules []*domain.OperatingRule, startTime types.TimeString, serviceDuration, slotDuration int) bool {
	candidates := make(map[types.TimeString]struct{})

	for _, rule := range rules {
		currentSlot := rule.StartTime

		for currentSlot.IsBefore(rule.EndTime) {
			slotEnd, err := currentSlot.AddMinutes(slotDuration)
			if err != nil {
				return false
			}
			if slotEnd.IsAfter(rule.EndTime) {
				break
			}

			candidates[currentSlot] = struct{}{}

			currentSlot, err = currentSlot.AddMinutes(slotDuration)
			if err != nil {
				return false
			}
		}
	}

	// Количество слотов сетки, которое занимает услуга (с округлением вверх)
	slotsNeeded := (serviceDuration + slotDuration - 1) / slotDuration
	if slotsNeeded == 0 {
		slotsNeeded = 1
	}

	slot := startTime
	for i := 0; i < slotsNeeded; i++ {
		if _, ok := candidates[slot]; !ok {
			return false
		}

		next, err := slot.AddMinutes(slotDuration)
		if err != nil {
			return false
		}
		slot = next
	}

	return true
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
