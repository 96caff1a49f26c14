package models

import (
	"time"

	"salonik/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	UserID          int64    `json:"userId"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Price           float64  `json:"price"`
	PromoPrice      *float64 `json:"promoPrice,omitempty"`
	PromoActive     bool     `json:"promoActive"`
	DurationMinutes int      `json:"durationMinutes"`
}

// UpdateServiceRequest запрос на обновление услуги
type UpdateServiceRequest struct {
	UserID          int64    `json:"userId"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Price           float64  `json:"price"`
	PromoPrice      *float64 `json:"promoPrice,omitempty"`
	PromoActive     bool     `json:"promoActive"`
	DurationMinutes int      `json:"durationMinutes"`
	Active          bool     `json:"active"`
}

// CreateProductRequest запрос на создание товара
type CreateProductRequest struct {
	UserID   int64   `json:"userId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	PhotoURL *string `json:"photoUrl,omitempty"`
}

// UpdateProductRequest запрос на обновление товара
type UpdateProductRequest struct {
	UserID   int64   `json:"userId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	PhotoURL *string `json:"photoUrl,omitempty"`
	Active   bool    `json:"active"`
}

// ToDomainService конвертирует запрос создания в domain модель
func (r *CreateServiceRequest) ToDomainService() *domain.Service {
	return &domain.Service{
		Name:            r.Name,
		Category:        r.Category,
		Price:           r.Price,
		PromoPrice:      r.PromoPrice,
		PromoActive:     r.PromoActive,
		DurationMinutes: r.DurationMinutes,
		Active:          true,
	}
}

// ToDomainService конвертирует запрос обновления в domain модель
func (r *UpdateServiceRequest) ToDomainService(id int64) *domain.Service {
	return &domain.Service{
		ID:              id,
		Name:            r.Name,
		Category:        r.Category,
		Price:           r.Price,
		PromoPrice:      r.PromoPrice,
		PromoActive:     r.PromoActive,
		DurationMinutes: r.DurationMinutes,
		Active:          r.Active,
	}
}

// ToDomainProduct конвертирует запрос создания в domain модель
func (r *CreateProductRequest) ToDomainProduct() *domain.Product {
	return &domain.Product{
		Name:     r.Name,
		Price:    r.Price,
		PhotoURL: r.PhotoURL,
		Active:   true,
	}
}

// ToDomainProduct конвертирует запрос обновления в domain модель
func (r *UpdateProductRequest) ToDomainProduct(id int64) *domain.Product {
	return &domain.Product{
		ID:       id,
		Name:     r.Name,
		Price:    r.Price,
		PhotoURL: r.PhotoURL,
		Active:   r.Active,
	}
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Price           float64  `json:"price"`
	PromoPrice      *float64 `json:"promoPrice,omitempty"`
	PromoActive     bool     `json:"promoActive"`
	EffectivePrice  float64  `json:"effectivePrice"`
	DurationMinutes int      `json:"durationMinutes"`
	Active          bool     `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// ProductResponse ответ с данными товара
type ProductResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	PhotoURL *string `json:"photoUrl,omitempty"`
	Active   bool    `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductListResponse ответ со списком товаров
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Category:        s.Category,
		Price:           s.Price,
		PromoPrice:      s.PromoPrice,
		PromoActive:     s.PromoActive,
		EffectivePrice:  s.EffectivePrice(),
		DurationMinutes: s.DurationMinutes,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	if services == nil {
		return &ServiceListResponse{Services: []ServiceResponse{}}
	}

	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, len(services)),
	}

	for i, svc := range services {
		if svcResp := FromDomainService(svc); svcResp != nil {
			resp.Services[i] = *svcResp
		}
	}

	return resp
}

// FromDomainProduct конвертирует domain модель в DTO
func FromDomainProduct(p *domain.Product) *ProductResponse {
	if p == nil {
		return nil
	}

	return &ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		PhotoURL:  p.PhotoURL,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// FromDomainProductList конвертирует список domain моделей в DTO
func FromDomainProductList(products []*domain.Product) *ProductListResponse {
	if products == nil {
		return &ProductListResponse{Products: []ProductResponse{}}
	}

	resp := &ProductListResponse{
		Products: make([]ProductResponse, len(products)),
	}

	for i, p := range products {
		if pResp := FromDomainProduct(p); pResp != nil {
			resp.Products[i] = *pResp
		}
	}

	return resp
}
