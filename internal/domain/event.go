package domain

import "time"

// AppointmentEventType тип события об изменении записи
type AppointmentEventType string

const (
	EventAppointmentCreated       AppointmentEventType = "appointment.created"
	EventAppointmentStatusChanged AppointmentEventType = "appointment.status_changed"
	EventAppointmentCancelled     AppointmentEventType = "appointment.cancelled"
)

// AppointmentEvent типизированное событие шины об изменении записи
// Подписчики (UI, уведомления) по нему перечитывают затронутые данные
type AppointmentEvent struct {
	ID            string               `json:"id"` // uuid события
	Type          AppointmentEventType `json:"type"`
	AppointmentID int64                `json:"appointmentId"`
	MasterID      int64                `json:"masterId"`
	ClientID      int64                `json:"clientId"`
	Date          string               `json:"date"` // YYYY-MM-DD
	StartTime     string               `json:"startTime"`
	Status        AppointmentStatus    `json:"status"`
	ServiceName   string               `json:"serviceName"`
	OccurredAt    time.Time            `json:"occurredAt"`
}
