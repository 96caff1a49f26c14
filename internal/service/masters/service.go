package masters

import (
	"context"
	"errors"
	"fmt"

	"salonik/internal/domain"
	masterRepo "salonik/internal/infra/storage/master"
	"salonik/internal/service/masters/models"
)

// Service сервис для управления мастерами салона
// Чтение доступно всем, изменение - только администратору
type Service struct {
	masterRepo     MasterRepository
	identityClient IdentityClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса мастеров
func NewService(masterRepo MasterRepository, identityClient IdentityClient, logger Logger) *Service {
	return &Service{
		masterRepo:     masterRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// Create создает мастера
func (s *Service) Create(ctx context.Context, req *models.CreateMasterRequest) (*models.MasterResponse, error) {
	s.logger.Info("Create: creating master %q by user=%d", req.FullName, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	if req.FullName == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}

	created, err := s.masterRepo.Create(ctx, req.ToDomainMaster())
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created master id=%d", created.ID)
	return models.FromDomainMaster(created), nil
}

// GetByID получает мастера по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.MasterResponse, error) {
	m, err := s.masterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			return nil, ErrMasterNotFound
		}
		s.logger.Error("GetByID: repository error for master id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainMaster(m), nil
}

// GetAll получает список мастеров
// activeOnly = true скрывает неактивных мастеров (для клиентской выдачи)
func (s *Service) GetAll(ctx context.Context, activeOnly bool) (*models.MasterListResponse, error) {
	masters, err := s.masterRepo.GetAll(ctx, activeOnly)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainMasterList(masters), nil
}

// Update обновляет мастера
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateMasterRequest) (*models.MasterResponse, error) {
	s.logger.Info("Update: updating master id=%d by user=%d", id, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	if req.FullName == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}

	if err := s.masterRepo.Update(ctx, req.ToDomainMaster(id)); err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			return nil, ErrMasterNotFound
		}
		s.logger.Error("Update: repository error for master id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return s.GetByID(ctx, id)
}

// Delete удаляет мастера
// Записи к мастеру хранят его имя денормализованно, история не теряется
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting master id=%d by user=%d", id, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return err
	}

	if err := s.masterRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			return ErrMasterNotFound
		}
		s.logger.Error("Delete: repository error for master id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
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
