package reports

import (
	"context"
	"time"

	"salonik/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetForPeriod(ctx context.Context, startDate, endDate time.Time) ([]*domain.Appointment, error)
}

// IdentityClient интерфейс клиента сервиса идентификации
type IdentityClient interface {
	GetUserRole(ctx context.Context, userID int64) (domain.Role, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
