package create_appointment

import (
	"time"

	"salonik/internal/domain"
	"salonik/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID    int64            // ID клиента, от имени которого создается запись
	MasterID  int64            // ID мастера
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала слота в формате HH:MM
	Note      *string          // Комментарий клиента
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
}
