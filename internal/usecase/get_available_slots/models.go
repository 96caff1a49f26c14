package get_available_slots

import (
	"time"

	"salonik/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID    int64     // ID пользователя (для логирования, не влияет на результат)
	MasterID  int64     // ID мастера
	ServiceID int64     // ID выбранной услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов и их доступностью
type Response struct {
	Date      time.Time     // Дата, на которую запрашивались слоты
	MasterID  int64         // ID мастера
	ServiceID int64         // ID услуги
	Slots     []domain.Slot // Слоты с признаком доступности и причиной недоступности
}
