package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"salonik/internal/domain"
	"salonik/internal/integrations/identity"
	masterRepo "salonik/internal/infra/storage/master"
	serviceRepo "salonik/internal/infra/storage/service"
	settingsRepo "salonik/internal/infra/storage/settings"
)

// UseCase use case для создания записи к мастеру
type UseCase struct {
	appointmentRepo AppointmentRepository
	ruleRepo        RuleRepository
	masterRepo      MasterRepository
	serviceRepo     ServiceRepository
	settingsRepo    SettingsRepository
	identityClient  IdentityClient
	txManager       TransactionManager
	eventBus        EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	ruleRepo RuleRepository,
	masterRepo MasterRepository,
	serviceRepo ServiceRepository,
	settingsRepo SettingsRepository,
	identityClient IdentityClient,
	txManager TransactionManager,
	eventBus EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		ruleRepo:        ruleRepo,
		masterRepo:      masterRepo,
		serviceRepo:     serviceRepo,
		settingsRepo:    settingsRepo,
		identityClient:  identityClient,
		txManager:       txManager,
		eventBus:        eventBus,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка доступности слота и вставка выполняются одной SERIALIZABLE
// транзакцией с блокировкой записей мастера на дату: из двух одновременных
// запросов на слот успешным будет ровно один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, master=%d, service=%d, date=%s, time=%s",
		req.UserID, req.MasterID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем мастера
	master, err := uc.masterRepo.GetByID(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}
	if !master.IsBookable() {
		return nil, ErrMasterInactive
	}

	// 4. Проверяем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		return nil, ErrServiceInactive
	}

	// 5. Получаем имя клиента из сервиса идентификации для денормализации
	// Ошибка не блокирует запись: имя опционально
	var clientName *string
	if user, err := uc.identityClient.GetUser(ctx, req.UserID); err == nil {
		clientName = &user.FullName
	} else if !errors.Is(err, identity.ErrUserNotFound) {
		uc.logger.Warn("CreateAppointment: failed to get client profile user_id=%d: %v", req.UserID, err)
	}

	var created *domain.Appointment

	// 6. Проверка доступности слота и вставка - одна транзакция
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Настройки салона, при их отсутствии - дефолтные
		settings, err := uc.settingsRepo.Get(txCtx)
		if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		if settings == nil {
			settings = domain.DefaultSettings()
		}

		// 6.2. Ограничения даты и минимального времени до записи
		if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
			return err
		}
		if err := validateNotice(req.Date, req.StartTime, now, settings.MinBookingNoticeMinutes); err != nil {
			return err
		}

		// 6.3. Время должно входить в расписание салона на эту дату
		rules, err := uc.ruleRepo.GetActiveForDate(txCtx, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get operating rules: %v", ErrInternal, err)
		}
		if !isWithinSchedule(rules, req.StartTime, service.DurationMinutes, settings.SlotDurationMinutes) {
			return ErrSlotNotInSchedule
		}

		// 6.4. Действующие записи мастера на дату, с блокировкой строк
		filter := domain.MasterAppointmentsFilter{
			MasterID:        req.MasterID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByMasterWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 6.5. Проверяем пересечение интервала услуги с существующими записями
		requestEnd, err := req.StartTime.AddMinutes(service.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: invalid service interval: %v", ErrInvalidInput, err)
		}

		for _, appt := range appointments {
			if appt.Overlaps(req.StartTime, requestEnd) {
				return ErrSlotNotAvailable
			}
		}

		// 6.6. Создаем запись со статусом pending и денормализованными данными
		appt := &domain.Appointment{
			ClientID:        req.UserID,
			MasterID:        req.MasterID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			ServicePrice:    service.EffectivePrice(),
			MasterName:      master.FullName,
			ClientName:      clientName,
			Note:            req.Note,
		}

		created, err = uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		uc.logger.Warn("CreateAppointment: booking failed for user=%d, master=%d: %v",
			req.UserID, req.MasterID, err)
		return nil, err
	}

	// 7. Публикуем событие после коммита транзакции
	// Ошибка публикации не откатывает запись
	uc.publishCreated(ctx, created)

	uc.logger.Info("CreateAppointment: created appointment id=%d for user=%d, master=%d",
		created.ID, req.UserID, req.MasterID)

	return &Response{Appointment: created}, nil
}

func (uc *UseCase) publishCreated(ctx context.Context, appt *domain.Appointment) {
	event := domain.AppointmentEvent{
		Type:          domain.EventAppointmentCreated,
		AppointmentID: appt.ID,
		MasterID:      appt.MasterID,
		ClientID:      appt.ClientID,
		Date:          appt.Date.Format(domain.DateFormat),
		StartTime:     appt.StartTime.String(),
		Status:        appt.Status,
		ServiceName:   appt.ServiceName,
		OccurredAt:    uc.timeProvider.Now(),
	}

	if err := uc.eventBus.Publish(ctx, event); err != nil {
		uc.logger.Error("CreateAppointment: failed to publish event for appointment id=%d: %v", appt.ID, err)
	}
}
