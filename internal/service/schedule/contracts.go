package schedule

import (
	"context"
	"time"

	"salonik/internal/domain"
)

// RuleRepository интерфейс репозитория правил расписания
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.OperatingRule) (*domain.OperatingRule, error)
	GetByID(ctx context.Context, id int64) (*domain.OperatingRule, error)
	GetAll(ctx context.Context) ([]*domain.OperatingRule, error)
	GetActiveForDate(ctx context.Context, date time.Time) ([]*domain.OperatingRule, error)
	Update(ctx context.Context, rule *domain.OperatingRule) error
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
