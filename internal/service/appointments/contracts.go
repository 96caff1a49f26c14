package appointments

import (
	"context"

	"salonik/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByMasterWithFilter(ctx context.Context, filter domain.MasterAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// MasterRepository интерфейс репозитория мастеров
type MasterRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Master, error)
}

// IdentityClient интерфейс клиента сервиса идентификации
type IdentityClient interface {
	GetUserRole(ctx context.Context, userID int64) (domain.Role, error)
}

// EventPublisher интерфейс публикации событий об изменении записей
type EventPublisher interface {
	Publish(ctx context.Context, event domain.AppointmentEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
