package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonik/internal/domain"
	appointmentRepo "salonik/internal/infra/storage/appointment"
	masterRepo "salonik/internal/infra/storage/master"
	"salonik/internal/service/appointments/models"
)

// Service сервис для работы с записями
// Все изменения статусов проходят через единую таблицу переходов domain.CanTransition,
// роль инициатора определяется через сервис идентификации
type Service struct {
	appointmentRepo AppointmentRepository
	masterRepo      MasterRepository
	identityClient  IdentityClient
	eventBus        EventPublisher
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	masterRepo MasterRepository,
	identityClient IdentityClient,
	eventBus EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		masterRepo:      masterRepo,
		identityClient:  identityClient,
		eventBus:        eventBus,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Клиент видит только свои записи, мастер - записи к себе, админ - любые
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := s.resolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.checkReadAccess(ctx, appt, userID, role); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// GetClientAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, ok := domain.ParseStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetClientAppointments: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByClientID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: fetched %d appointments for user=%d", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetMasterAppointments получает записи мастера с фильтрацией по периоду и статусу
// Доступно мастеру (для своих записей) и администратору
func (s *Service) GetMasterAppointments(ctx context.Context, req *models.GetMasterAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetMasterAppointments: fetching appointments for master=%d, user=%d", req.MasterID, req.UserID)

	role, err := s.resolveRole(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.checkMasterAccess(ctx, req.MasterID, req.UserID, role); err != nil {
		s.logger.Warn("GetMasterAppointments: access denied for user=%d to master=%d schedule", req.UserID, req.MasterID)
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetMasterAppointments: invalid filter for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByMasterWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetMasterAppointments: repository error for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: GetMasterAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMasterAppointments: fetched %d appointments for master=%d", len(appointments), req.MasterID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Клиент может отменить только свою запись и только в статусе pending,
// мастер и админ - запись в любом нефинальном статусе
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	role, err := s.resolveRole(ctx, req.UserID)
	if err != nil {
		return err
	}

	// Клиент отменяет только свою запись
	if role == domain.RoleClient && appt.ClientID != req.UserID {
		s.logger.Warn("Cancel: user=%d is not the owner of appointment id=%d", req.UserID, appointmentID)
		return ErrAccessDenied
	}

	// Мастер отменяет только записи к себе
	if role == domain.RoleMaster {
		if err := s.checkMasterAccess(ctx, appt.MasterID, req.UserID, role); err != nil {
			return err
		}
	}

	// Допустимость перехода определяет таблица переходов, без исключений
	if !domain.CanTransition(appt.Status, domain.StatusCancelled, role) {
		s.logger.Warn("Cancel: transition %s -> cancelled not allowed for role=%s, appointment id=%d",
			appt.Status, role, appointmentID)
		return ErrTransitionNotAllowed
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.publishEvent(ctx, appt, domain.EventAppointmentCancelled, domain.StatusCancelled)

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}

// UpdateStatus изменяет статус записи
// Проверяет допустимость перехода по таблице переходов для роли инициатора
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	newStatus, ok := domain.ParseStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return ErrInvalidStatus
	}

	// Отмена идет через Cancel: там причина и отдельное событие
	if newStatus == domain.StatusCancelled {
		return s.Cancel(ctx, appointmentID, &models.CancelAppointmentRequest{UserID: req.UserID})
	}

	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	role, err := s.resolveRole(ctx, req.UserID)
	if err != nil {
		return err
	}

	// Клиент управляет только своей записью
	if role == domain.RoleClient && appt.ClientID != req.UserID {
		s.logger.Warn("UpdateStatus: user=%d is not the owner of appointment id=%d", req.UserID, appointmentID)
		return ErrAccessDenied
	}

	// Мастер управляет только записями к себе
	if role == domain.RoleMaster {
		if err := s.checkMasterAccess(ctx, appt.MasterID, req.UserID, role); err != nil {
			return err
		}
	}

	if !domain.CanTransition(appt.Status, newStatus, role) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for role=%s, appointment id=%d",
			appt.Status, newStatus, role, appointmentID)
		return ErrTransitionNotAllowed
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.publishEvent(ctx, appt, domain.EventAppointmentStatusChanged, newStatus)

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("failed to get appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return appt, nil
}

func (s *Service) resolveRole(ctx context.Context, userID int64) (domain.Role, error) {
	role, err := s.identityClient.GetUserRole(ctx, userID)
	if err != nil {
		s.logger.Error("failed to resolve role for user=%d: %v", userID, err)
		return "", fmt.Errorf("%w: failed to resolve user role: %v", ErrInternal, err)
	}
	return role, nil
}

// checkReadAccess проверяет право на чтение записи
func (s *Service) checkReadAccess(ctx context.Context, appt *domain.Appointment, userID int64, role domain.Role) error {
	if role == domain.RoleAdmin {
		return nil
	}

	if appt.ClientID == userID {
		return nil
	}

	if role == domain.RoleMaster {
		return s.checkMasterAccess(ctx, appt.MasterID, userID, role)
	}

	return ErrAccessDenied
}

// checkMasterAccess проверяет, что пользователь-мастер привязан к masterID
// Администратору доступны записи любого мастера
func (s *Service) checkMasterAccess(ctx context.Context, masterID int64, userID int64, role domain.Role) error {
	if role == domain.RoleAdmin {
		return nil
	}

	if role != domain.RoleMaster {
		return ErrAccessDenied
	}

	master, err := s.masterRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			s.logger.Warn("checkMasterAccess: user=%d has no master profile", userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkMasterAccess: failed to get master for user=%d: %v", userID, err)
		return fmt.Errorf("%w: checkMasterAccess - repository error: %v", ErrInternal, err)
	}

	if master.ID != masterID {
		return ErrAccessDenied
	}

	return nil
}

// publishEvent публикует событие об изменении записи
// Ошибка публикации логируется и не прерывает операцию
func (s *Service) publishEvent(ctx context.Context, appt *domain.Appointment, eventType domain.AppointmentEventType, status domain.AppointmentStatus) {
	event := domain.AppointmentEvent{
		Type:          eventType,
		AppointmentID: appt.ID,
		MasterID:      appt.MasterID,
		ClientID:      appt.ClientID,
		Date:          appt.Date.Format(domain.DateFormat),
		StartTime:     appt.StartTime.String(),
		Status:        status,
		ServiceName:   appt.ServiceName,
		OccurredAt:    time.Now(),
	}

	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish %s event for appointment id=%d: %v", eventType, appt.ID, err)
	}
}
