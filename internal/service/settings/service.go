package settings

import (
	"context"
	"errors"
	"fmt"

	"salonik/internal/domain"
	settingsRepo "salonik/internal/infra/storage/settings"
	"salonik/internal/service/settings/models"
)

// Service сервис для управления настройками салона
// Настройки - единственная запись; пока администратор их не сохранил,
// действуют значения по умолчанию
type Service struct {
	settingsRepo   SettingsRepository
	identityClient IdentityClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, identityClient IdentityClient, logger Logger) *Service {
	return &Service{
		settingsRepo:   settingsRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// Get возвращает текущие настройки салона
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return models.FromDomainSettings(domain.DefaultSettings()), nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(current), nil
}

// Update сохраняет настройки салона
// Новые значения влияют только на будущие запросы слотов,
// существующие записи не пересчитываются
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating salon settings by user=%d", req.UserID)

	if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	if err := validateSettings(req); err != nil {
		s.logger.Warn("Update: settings validation failed: %v", err)
		return nil, err
	}

	updated, err := s.settingsRepo.Upsert(ctx, req.ToDomainSettings())
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: salon settings updated: slot=%dmin, advance=%dd, notice=%dmin",
		updated.SlotDurationMinutes, updated.AdvanceBookingDays, updated.MinBookingNoticeMinutes)
	return models.FromDomainSettings(updated), nil
}

func validateSettings(req *models.UpdateSettingsRequest) error {
	if req.SlotDurationMinutes < domain.MinSlotDurationMinutes || req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays || req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance booking days must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if req.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || req.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: min booking notice must be between %d and %d minutes",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
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
