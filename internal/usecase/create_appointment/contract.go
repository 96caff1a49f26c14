package create_appointment

import (
	"context"
	"time"

	"salonik/internal/domain"
	"salonik/internal/integrations/identity"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// Create создает новую запись
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)

	// GetByMasterWithFilter получает записи мастера на конкретную дату
	// Внутри транзакции выборка на одну дату блокирует строки (FOR UPDATE)
	GetByMasterWithFilter(ctx context.Context, filter domain.MasterAppointmentsFilter) ([]*domain.Appointment, error)
}

// RuleRepository интерфейс репозитория правил расписания
type RuleRepository interface {
	GetActiveForDate(ctx context.Context, date time.Time) ([]*domain.OperatingRule, error)
}

// MasterRepository интерфейс репозитория мастеров
type MasterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Master, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// SettingsRepository интерфейс репозитория настроек салона
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SalonSettings, error)
}

// IdentityClient интерфейс клиента сервиса идентификации
type IdentityClient interface {
	GetUser(ctx context.Context, userID int64) (*identity.User, error)
}

// TransactionManager интерфейс менеджера транзакций
// Проверка доступности слота и вставка записи выполняются одной
// SERIALIZABLE транзакцией, это защита от двойного бронирования
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий об изменении записей
type EventPublisher interface {
	Publish(ctx context.Context, event domain.AppointmentEvent) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
