package domain

// Значения по умолчанию для настроек салона
const (
	DefaultSlotDurationMinutes     = 30
	DefaultAdvanceBookingDays      = 0 // 0 = без ограничений
	DefaultMinBookingNoticeMinutes = 0
)

// Границы валидации настроек
const (
	MinSlotDurationMinutes  = 5
	MaxSlotDurationMinutes  = 480 // 8 часов
	MinAdvanceBookingDays   = 0
	MaxAdvanceBookingDays   = 365
	MinBookingNoticeMinutes = 0
	MaxBookingNoticeMinutes = 10080 // неделя

	MaxNoteLength               = 500
	MaxCancellationReasonLength = 500
	MaxServiceDurationMinutes   = 480
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
