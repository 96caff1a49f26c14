package models

import (
	"time"

	"salonik/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек салона
type UpdateSettingsRequest struct {
	UserID                  int64 `json:"userId"`
	SlotDurationMinutes     int   `json:"slotDurationMinutes"`
	AdvanceBookingDays      int   `json:"advanceBookingDays"`      // 0 = без ограничений
	MinBookingNoticeMinutes int   `json:"minBookingNoticeMinutes"`
}

// ToDomainSettings конвертирует запрос в domain модель
func (r *UpdateSettingsRequest) ToDomainSettings() *domain.SalonSettings {
	return &domain.SalonSettings{
		SlotDurationMinutes:     r.SlotDurationMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
}

// SettingsResponse ответ с настройками салона
type SettingsResponse struct {
	SlotDurationMinutes     int `json:"slotDurationMinutes"`
	AdvanceBookingDays      int `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`

	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.SalonSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		SlotDurationMinutes:     s.SlotDurationMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
	}

	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
