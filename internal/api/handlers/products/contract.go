package products

import (
	"context"

	"salonik/internal/service/catalog/models"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.ProductResponse, error)
	GetProduct(ctx context.Context, id int64) (*models.ProductResponse, error)
	GetProducts(ctx context.Context, activeOnly bool) (*models.ProductListResponse, error)
	UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.ProductResponse, error)
	DeleteProduct(ctx context.Context, id int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
