package get_available_slots

import (
	"sort"
	"time"

	"salonik/internal/domain"
	"salonik/pkg/types"
)

// generateCandidateSlots разворачивает правила расписания в кандидаты слотов
// Каждое правило порождает слоты от startTime с фиксированным шагом slotDuration
// до endTime (не включая): слот, конец которого вышел бы за endTime, не создается.
// Совпадающие времена из пересекающихся правил дедуплицируются - слот
// идентифицируется временем начала
func generateCandidateSlots(rules []*domain.OperatingRule, slotDuration int) ([]types.TimeString, error) {
	seen := make(map[types.TimeString]struct{})

	for _, rule := range rules {
		currentSlot := rule.StartTime

		for currentSlot.IsBefore(rule.EndTime) {
			slotEnd, err := currentSlot.AddMinutes(slotDuration)
			if err != nil {
				return nil, err
			}
			if slotEnd.IsAfter(rule.EndTime) {
				break
			}

			seen[currentSlot] = struct{}{}

			currentSlot, err = currentSlot.AddMinutes(slotDuration)
			if err != nil {
				return nil, err
			}
		}
	}

	candidates := make([]types.TimeString, 0, len(seen))
	for slot := range seen {
		candidates = append(candidates, slot)
	}

	// Формат HH:MM сортируется лексикографически
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].IsBefore(candidates[j])
	})

	return candidates, nil
}

// annotateSlots размечает кандидаты слотов доступностью
// Слот недоступен, если:
//   - дата запроса сегодня и слот начинается не позже now + minNoticeMinutes (reason = expired)
//   - слот пересекается с занятым интервалом действующей записи мастера (reason = occupied)
//
// Пересечение полуоткрытых интервалов со строгими неравенствами:
// слот 11:30-12:00 и запись 11:00-11:30 граничат, но НЕ пересекаются
func annotateSlots(
	candidates []types.TimeString,
	slotDuration int,
	appointments []*domain.Appointment,
	requestDate time.Time,
	now time.Time,
	minNoticeMinutes int,
) []domain.Slot {
	var cutoff types.TimeString
	if isSameDay(requestDate, now) {
		// Слоты, начинающиеся не позже этого времени, уже нельзя бронировать
		if t, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes); err == nil {
			cutoff = t
		} else {
			cutoff = types.TimeString("24:00")
		}
	}

	result := make([]domain.Slot, len(candidates))

	for i, slotStart := range candidates {
		slot := domain.Slot{
			StartTime:       slotStart,
			DurationMinutes: slotDuration,
			Available:       true,
		}

		if !cutoff.IsZero() && !slotStart.IsAfter(cutoff) {
			slot.Available = false
			slot.Reason = domain.ReasonExpired
			result[i] = slot
			continue
		}

		if conflict := findConflict(slotStart, slotDuration, appointments); conflict != nil {
			slot.Available = false
			slot.Reason = domain.ReasonOccupied
			slot.ConflictingServiceName = conflict.ServiceName
			slot.ConflictingMasterName = conflict.MasterName
		}

		result[i] = slot
	}

	return result
}

// findConflict возвращает первую действующую запись, пересекающуюся со слотом
func findConflict(slotStart types.TimeString, slotDuration int, appointments []*domain.Appointment) *domain.Appointment {
	slotEnd, err := slotStart.AddMinutes(slotDuration)
	if err != nil {
		return nil
	}

	for _, appt := range appointments {
		// Отмененные записи слот не занимают
		if !appt.IsActive() {
			continue
		}

		if appt.Overlaps(slotStart, slotEnd) {
			return appt
		}
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
