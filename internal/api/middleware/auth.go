package middleware

import (
	"context"
	"net/http"
	"strconv"

	"salonik/internal/api/handlers"
)

// HeaderUserID заголовок с ID аутентифицированного пользователя
// Его проставляет API gateway после проверки токена в сервисе идентификации
const HeaderUserID = "X-User-ID"

type contextKey string

const userIDKey contextKey = "userID"

// Auth проверяет наличие и формат заголовка X-User-ID
// и кладет ID пользователя в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID возвращает ID пользователя из контекста запроса
// Возвращает 0, если запрос не проходил через Auth middleware
func UserID(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDKey).(int64); ok {
		return id
	}
	return 0
}

// OptionalUserID извлекает ID пользователя из заголовка без требования его наличия
// Используется на публичных маршрутах, где ID нужен только для логирования
func OptionalUserID(r *http.Request) int64 {
	userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
	if err != nil || userID < 0 {
		return 0
	}
	return userID
}
