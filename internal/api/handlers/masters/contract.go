package masters

import (
	"context"

	"salonik/internal/service/masters/models"
)

type MastersService interface {
	Create(ctx context.Context, req *models.CreateMasterRequest) (*models.MasterResponse, error)
	GetByID(ctx context.Context, id int64) (*models.MasterResponse, error)
	GetAll(ctx context.Context, activeOnly bool) (*models.MasterListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateMasterRequest) (*models.MasterResponse, error)
	Delete(ctx context.Context, id int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
