package catalog

import (
	"context"
	"errors"
	"fmt"

	"salonik/internal/domain"
	productRepo "salonik/internal/infra/storage/product"
	serviceRepo "salonik/internal/infra/storage/service"
	"salonik/internal/service/catalog/models"
)

// Service сервис каталога услуг и товаров салона
// Чтение доступно всем, изменение - только администратору
type Service struct {
	serviceRepo    ServiceRepository
	productRepo    ProductRepository
	identityClient IdentityClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	productRepo ProductRepository,
	identityClient IdentityClient,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:    serviceRepo,
		productRepo:    productRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// Услуги

// CreateService создает услугу
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: creating service %q by user=%d", req.Name, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	if err := validateService(req.Name, req.Price, req.PromoPrice, req.DurationMinutes); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, req.ToDomainService())
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// GetService получает услугу по ID
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// GetServices получает список услуг
// activeOnly = true скрывает отключенные услуги (для клиентской выдачи)
func (s *Service) GetServices(ctx context.Context, activeOnly bool) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.GetAll(ctx, activeOnly)
	if err != nil {
		s.logger.Error("GetServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// UpdateService обновляет услугу
func (s *Service) UpdateService(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: updating service id=%d by user=%d", id, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	if err := validateService(req.Name, req.Price, req.PromoPrice, req.DurationMinutes); err != nil {
		s.logger.Warn("UpdateService: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	if err := s.serviceRepo.Update(ctx, req.ToDomainService(id)); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	return s.GetService(ctx, id)
}

// DeleteService удаляет услугу
// Существующие записи хранят денормализованные имя и цену, их история не теряется
func (s *Service) DeleteService(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("DeleteService: deleting service id=%d by user=%d", id, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return err
	}

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("DeleteService: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Товары

// CreateProduct создает товар
func (s *Service) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.ProductResponse, error) {
	s.logger.Info("CreateProduct: creating product %q by user=%d", req.Name, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	created, err := s.productRepo.Create(ctx, req.ToDomainProduct())
	if err != nil {
		s.logger.Error("CreateProduct: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateProduct - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateProduct: created product id=%d", created.ID)
	return models.FromDomainProduct(created), nil
}

// GetProduct получает товар по ID
func (s *Service) GetProduct(ctx context.Context, id int64) (*models.ProductResponse, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("GetProduct: repository error for product id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetProduct - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProduct(p), nil
}

// GetProducts получает список товаров
func (s *Service) GetProducts(ctx context.Context, activeOnly bool) (*models.ProductListResponse, error) {
	products, err := s.productRepo.GetAll(ctx, activeOnly)
	if err != nil {
		s.logger.Error("GetProducts: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetProducts - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProductList(products), nil
}

// UpdateProduct обновляет товар
func (s *Service) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.ProductResponse, error) {
	s.logger.Info("UpdateProduct: updating product id=%d by user=%d", id, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if err := s.productRepo.Update(ctx, req.ToDomainProduct(id)); err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("UpdateProduct: repository error for product id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateProduct - repository error: %v", ErrInternal, err)
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct удаляет товар
func (s *Service) DeleteProduct(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("DeleteProduct: deleting product id=%d by user=%d", id, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			return ErrProductNotFound
		}
		s.logger.Error("DeleteProduct: repository error for product id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteProduct - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Вспомогательные методы

func validateService(name string, price float64, promoPrice *float64, durationMinutes int) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if promoPrice != nil && *promoPrice < 0 {
		return fmt.Errorf("%w: promo price must not be negative", ErrInvalidInput)
	}
	if durationMinutes <= 0 || durationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes",
			ErrInvalidInput, domain.MaxServiceDurationMinutes)
	}
	return nil
}

// checkAdminAccess проверяет, что пользователь - администратор
func (s *Service) checkAdminAccess(ctx context.Context, userID int64) error {
	role, err := s.identityClient.GetUserRole(ctx, userID)
	if err != nil {
		s.logger.Error("checkAdminAccess: failed to resolve role for user=%d: %v", userID, err)
		return fmt.Errorf("%w: failed to resolve user role: %v", ErrInternal, err)
	}

	if role != domain.RoleAdmin {
		s.logger.Warn("checkAdminAccess: user=%d with role=%s is not an admin", userID, role)
		return ErrAccessDenied
	}

	return nil
}
