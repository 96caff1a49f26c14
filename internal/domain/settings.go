package domain

import "time"

// SalonSettings бизнес-настройки салона (единственная запись)
// Читаются расчетом слотов и созданием записи; правит только администратор
type SalonSettings struct {
	ID                      int64
	SlotDurationMinutes     int
	AdvanceBookingDays      int // 0 = без ограничений
	MinBookingNoticeMinutes int

	UpdatedAt time.Time
}

// DefaultSettings возвращает настройки по умолчанию
// Используются, пока администратор не сохранил свои
func DefaultSettings() *SalonSettings {
	return &SalonSettings{
		SlotDurationMinutes:     DefaultSlotDurationMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}
