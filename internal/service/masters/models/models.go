package models

import (
	"time"

	"salonik/internal/domain"
)

// Request модели

// CreateMasterRequest запрос на создание мастера
type CreateMasterRequest struct {
	UserID       int64   `json:"userId"`
	MasterUserID *int64  `json:"masterUserId,omitempty"` // ID аккаунта мастера в сервисе идентификации
	FullName     string  `json:"fullName"`
	Specialty    string  `json:"specialty"`
	PhotoURL     *string `json:"photoUrl,omitempty"`
}

// UpdateMasterRequest запрос на обновление мастера
type UpdateMasterRequest struct {
	UserID       int64   `json:"userId"`
	MasterUserID *int64  `json:"masterUserId,omitempty"`
	FullName     string  `json:"fullName"`
	Specialty    string  `json:"specialty"`
	PhotoURL     *string `json:"photoUrl,omitempty"`
	Active       bool    `json:"active"`
}

// ToDomainMaster конвертирует запрос создания в domain модель
func (r *CreateMasterRequest) ToDomainMaster() *domain.Master {
	return &domain.Master{
		UserID:    r.MasterUserID,
		FullName:  r.FullName,
		Specialty: r.Specialty,
		PhotoURL:  r.PhotoURL,
		Active:    true,
	}
}

// ToDomainMaster конвертирует запрос обновления в domain модель
func (r *UpdateMasterRequest) ToDomainMaster(id int64) *domain.Master {
	return &domain.Master{
		ID:        id,
		UserID:    r.MasterUserID,
		FullName:  r.FullName,
		Specialty: r.Specialty,
		PhotoURL:  r.PhotoURL,
		Active:    r.Active,
	}
}

// Response модели

// MasterResponse ответ с данными мастера
type MasterResponse struct {
	ID        int64   `json:"id"`
	UserID    *int64  `json:"userId,omitempty"`
	FullName  string  `json:"fullName"`
	Specialty string  `json:"specialty"`
	PhotoURL  *string `json:"photoUrl,omitempty"`
	Active    bool    `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MasterListResponse ответ со списком мастеров
type MasterListResponse struct {
	Masters []MasterResponse `json:"masters"`
}

// Методы конвертации

// FromDomainMaster конвертирует domain модель в DTO
func FromDomainMaster(m *domain.Master) *MasterResponse {
	if m == nil {
		return nil
	}

	return &MasterResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		FullName:  m.FullName,
		Specialty: m.Specialty,
		PhotoURL:  m.PhotoURL,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainMasterList конвертирует список domain моделей в DTO
func FromDomainMasterList(masters []*domain.Master) *MasterListResponse {
	if masters == nil {
		return &MasterListResponse{Masters: []MasterResponse{}}
	}

	resp := &MasterListResponse{
		Masters: make([]MasterResponse, len(masters)),
	}

	for i, m := range masters {
		if mResp := FromDomainMaster(m); mResp != nil {
			resp.Masters[i] = *mResp
		}
	}

	return resp
}
