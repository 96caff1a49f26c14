package domain

import "time"

// Master мастер салона (сотрудник, к которому записываются клиенты)
type Master struct {
	ID        int64
	UserID    *int64 // ID в сервисе идентификации, если у мастера есть аккаунт
	FullName  string
	Specialty string
	PhotoURL  *string
	Active    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable возвращает true, если к мастеру можно записаться
func (m *Master) IsBookable() bool {
	return m.Active
}
