package domain

// Role роль пользователя в системе
// Роли выдает внешний сервис идентификации, здесь они только проверяются
type Role string

const (
	RoleClient Role = "client"
	RoleMaster Role = "master"
	RoleAdmin  Role = "admin"
)

// IsStaff возвращает true для ролей, управляющих записями салона
func (r Role) IsStaff() bool {
	return r == RoleMaster || r == RoleAdmin
}

// transitionTable единая таблица переходов статусов записи
// Ключ - (текущий статус, роль инициатора), значение - допустимые новые статусы
// Все изменения статуса проходят через эту таблицу, обходных путей нет
var transitionTable = map[AppointmentStatus]map[Role][]AppointmentStatus{
	StatusPending: {
		RoleClient: {StatusCancelled},
		RoleMaster: {StatusConfirmed, StatusCancelled},
		RoleAdmin:  {StatusConfirmed, StatusCancelled},
	},
	StatusConfirmed: {
		RoleMaster: {StatusCompleted, StatusCancelled},
		RoleAdmin:  {StatusCompleted, StatusCancelled},
	},
	// completed и cancelled - финальные статусы, переходов из них нет
}

// AllowedTransitions возвращает статусы, в которые роль может перевести запись
func AllowedTransitions(current AppointmentStatus, role Role) []AppointmentStatus {
	byRole, ok := transitionTable[current]
	if !ok {
		return nil
	}
	return byRole[role]
}

// CanTransition проверяет допустимость перехода current -> next для роли
func CanTransition(current, next AppointmentStatus, role Role) bool {
	for _, allowed := range AllowedTransitions(current, role) {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseStatus валидирует и конвертирует строку в AppointmentStatus
func ParseStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return AppointmentStatus(s), true
	default:
		return "", false
	}
}
