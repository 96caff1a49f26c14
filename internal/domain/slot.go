package domain

import "salonik/pkg/types"

// SlotUnavailableReason причина недоступности слота
type SlotUnavailableReason string

const (
	// ReasonExpired слот сегодняшнего дня, время начала уже прошло
	ReasonExpired SlotUnavailableReason = "expired"

	// ReasonOccupied слот пересекается с существующей записью
	ReasonOccupied SlotUnavailableReason = "occupied"
)

// Slot производный временной слот для записи
// Не хранится в БД, пересчитывается при каждом запросе доступности
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Available       bool

	// Заполняются только для недоступных слотов
	Reason                 SlotUnavailableReason
	ConflictingServiceName string
	ConflictingMasterName  string
}
