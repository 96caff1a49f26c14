package identity

// User модель пользователя из сервиса идентификации
// Аутентификацию и хранение учетных данных выполняет внешний сервис,
// сюда приходит только профиль с ролью
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"` // client | master | admin
}

// ErrorResponse модель ошибки от сервиса идентификации
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
