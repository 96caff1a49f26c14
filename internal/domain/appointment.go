package domain

import (
	"time"

	"salonik/pkg/types"
)

// AppointmentStatus статус записи к мастеру
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment запись клиента к мастеру на услугу
type Appointment struct {
	ID              int64
	ClientID        int64
	MasterID        int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Денормализованные данные для истории и отображения конфликтов
	ServiceName  string
	ServicePrice float64
	MasterName   string
	ClientName   *string
	Note         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если запись занимает слот (не отменена)
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal возвращает true, если статус записи финальный
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// EndTime возвращает время окончания записи (начало + длительность услуги)
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// Overlaps проверяет пересечение занятого интервала записи с интервалом [start, end)
// Интервалы полуоткрытые: граничащие интервалы не пересекаются
func (a *Appointment) Overlaps(start, end types.TimeString) bool {
	apptEnd, err := a.EndTime()
	if err != nil {
		return false
	}
	return a.StartTime.IsBefore(end) && apptEnd.IsAfter(start)
}

// MasterAppointmentsFilter фильтр для выборки записей мастера
type MasterAppointmentsFilter struct {
	MasterID        int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *AppointmentStatus
	IncludeInactive bool // включать ли отмененные записи
}
