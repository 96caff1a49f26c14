package domain

import "time"

// Service услуга салона
type Service struct {
	ID              int64
	Name            string
	Category        string
	Price           float64
	PromoPrice      *float64
	PromoActive     bool
	DurationMinutes int
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectivePrice возвращает действующую цену услуги с учетом акции
func (s *Service) EffectivePrice() float64 {
	if s.PromoActive && s.PromoPrice != nil {
		return *s.PromoPrice
	}
	return s.Price
}

// HasPromotion возвращает true, если на услугу действует акция
func (s *Service) HasPromotion() bool {
	return s.PromoActive && s.PromoPrice != nil
}
