package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrMasterNotFound возвращается, когда мастер не найден
	ErrMasterNotFound = errors.New("create_appointment: master not found")

	// ErrMasterInactive возвращается, когда мастер недоступен для записи
	ErrMasterInactive = errors.New("create_appointment: master is not bookable")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceInactive возвращается, когда услуга недоступна для записи
	ErrServiceInactive = errors.New("create_appointment: service is not active")

	// ErrDateInPast возвращается при попытке записаться на прошедшую дату
	ErrDateInPast = errors.New("create_appointment: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrTooLateToBook возвращается, когда до начала слота остается меньше minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrSlotNotInSchedule возвращается, когда время не входит в расписание салона
	ErrSlotNotInSchedule = errors.New("create_appointment: requested time is outside the salon schedule")

	// ErrSlotNotAvailable возвращается, когда слот пересекается с существующей записью
	ErrSlotNotAvailable = errors.New("create_appointment: slot is already occupied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
