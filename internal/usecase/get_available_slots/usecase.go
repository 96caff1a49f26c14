package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"salonik/internal/domain"
	masterRepo "salonik/internal/infra/storage/master"
	serviceRepo "salonik/internal/infra/storage/service"
	settingsRepo "salonik/internal/infra/storage/settings"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	ruleRepo        RuleRepository
	masterRepo      MasterRepository
	serviceRepo     ServiceRepository
	settingsRepo    SettingsRepository
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
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		ruleRepo:        ruleRepo,
		masterRepo:      masterRepo,
		serviceRepo:     serviceRepo,
		settingsRepo:    settingsRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Результат детерминирован: одинаковые правила, записи и текущее время
// дают одинаковый список слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, master=%d, service=%d, date=%s",
		req.UserID, req.MasterID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем мастера
	master, err := uc.masterRepo.GetByID(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			uc.logger.Warn("GetAvailableSlots: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}
	if !master.IsBookable() {
		uc.logger.Warn("GetAvailableSlots: master id=%d is not bookable", req.MasterID)
		return nil, ErrMasterInactive
	}

	// 4. Проверяем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 5. Получаем настройки салона, при их отсутствии используем дефолтные
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if settings == nil {
		settings = domain.DefaultSettings()
		uc.logger.Info("GetAvailableSlots: using default salon settings")
	}

	// 6. Валидация даты с учетом настроек
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Для прошедших дат слотов нет
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 8. Получаем правила расписания на дату
	// Еженедельные и правила на конкретную дату - независимые рабочие окна,
	// их слоты объединяются
	rules, err := uc.ruleRepo.GetActiveForDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get operating rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get operating rules: %v", ErrInternal, err)
	}

	// Ни одного правила - салон закрыт в этот день
	if len(rules) == 0 {
		uc.logger.Info("GetAvailableSlots: salon is closed on %s", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 9. Генерируем кандидаты слотов
	candidates, err := generateCandidateSlots(rules, settings.SlotDurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidate slots: %v", ErrInternal, err)
	}

	// 10. Получаем действующие записи мастера на эту дату
	filter := domain.MasterAppointmentsFilter{
		MasterID:        req.MasterID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Отмененные записи слоты не занимают
	}

	appointments, err := uc.appointmentRepo.GetByMasterWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 11. Размечаем слоты доступностью
	slots := annotateSlots(
		candidates,
		settings.SlotDurationMinutes,
		appointments,
		req.Date,
		now,
		settings.MinBookingNoticeMinutes,
	)

	uc.logger.Info("GetAvailableSlots: generated %d slots for master=%d, date=%s",
		len(slots), req.MasterID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		MasterID:  req.MasterID,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:      req.Date,
		MasterID:  req.MasterID,
		ServiceID: req.ServiceID,
		Slots:     []domain.Slot{},
	}
}
