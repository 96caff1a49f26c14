package get_available_slots

import (
	"time"

	"salonik/internal/domain"
	getAvailableSlots "salonik/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	MasterID  int64           `json:"masterId"`
	ServiceID int64           `json:"serviceId"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`

	// Заполняются только для недоступных слотов
	Reason                 string `json:"reason,omitempty"` // expired | occupied
	ConflictingServiceName string `json:"conflictingServiceName,omitempty"`
	ConflictingMasterName  string `json:"conflictingMasterName,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:              slot.StartTime.String(),
			DurationMinutes:        slot.DurationMinutes,
			Available:              slot.Available,
			Reason:                 string(slot.Reason),
			ConflictingServiceName: slot.ConflictingServiceName,
			ConflictingMasterName:  slot.ConflictingMasterName,
		}
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		MasterID:  resp.MasterID,
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров маршрута
func ToUseCaseRequest(userID, masterID, serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		UserID:    userID,
		MasterID:  masterID,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
