package masters

import (
	"context"

	"salonik/internal/domain"
)

// MasterRepository интерфейс репозитория мастеров
type MasterRepository interface {
	Create(ctx context.Context, m *domain.Master) (*domain.Master, error)
	GetByID(ctx context.Context, id int64) (*domain.Master, error)
	GetAll(ctx context.Context, activeOnly bool) ([]*domain.Master, error)
	Update(ctx context.Context, m *domain.Master) error
	Delete(ctx context.Context, id int64) error
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
