package schedule

import (
	"context"
	"errors"
	"fmt"

	"salonik/internal/domain"
	ruleRepo "salonik/internal/infra/storage/rule"
	"salonik/internal/service/schedule/models"
)

// Service сервис для управления расписанием салона
// Чтение правил доступно всем, изменение - только администратору
type Service struct {
	ruleRepo       RuleRepository
	identityClient IdentityClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(ruleRepo RuleRepository, identityClient IdentityClient, logger Logger) *Service {
	return &Service{
		ruleRepo:       ruleRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// Create создает правило расписания
func (s *Service) Create(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Create: creating %s rule by user=%d", req.RuleType, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	rule, err := req.ToDomainRule()
	if err != nil {
		s.logger.Warn("Create: invalid rule request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := rule.Validate(); err != nil {
		s.logger.Warn("Create: rule validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created rule id=%d", created.ID)
	return models.FromDomainRule(created), nil
}

// GetByID получает правило расписания по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RuleResponse, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("GetByID: rule id=%d not found", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("GetByID: repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRule(rule), nil
}

// GetAll получает все правила расписания, включая неактивные
func (s *Service) GetAll(ctx context.Context) (*models.RuleListResponse, error) {
	rules, err := s.ruleRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRuleList(rules), nil
}

// Update обновляет правило расписания
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Update: updating rule id=%d by user=%d", id, req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	rule, err := req.ToDomainRule(id)
	if err != nil {
		s.logger.Warn("Update: invalid rule request for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := rule.Validate(); err != nil {
		s.logger.Warn("Update: rule validation failed for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Update: rule id=%d not found", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("Update: repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return s.GetByID(ctx, id)
}

// Delete удаляет правило расписания
// Существующие записи при этом не затрагиваются
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting rule id=%d by user=%d", id, userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return err
	}

	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Delete: rule id=%d not found", id)
			return ErrRuleNotFound
		}
		s.logger.Error("Delete: repository error for rule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted rule id=%d", id)
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
