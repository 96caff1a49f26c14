package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonik/internal/domain"
	masterRepo "salonik/internal/infra/storage/master"
	"salonik/internal/integrations/identity"
	"salonik/pkg/ptr"
	"salonik/pkg/types"
)

type mockAppointmentRepo struct {
	appointments []*domain.Appointment
	created      *domain.Appointment
	createErr    error
}

func (m *mockAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	result := *appt
	result.ID = 42
	result.CreatedAt = time.Now()
	result.UpdatedAt = result.CreatedAt
	m.created = &result
	return &result, nil
}

func (m *mockAppointmentRepo) GetByMasterWithFilter(_ context.Context, filter domain.MasterAppointmentsFilter) ([]*domain.Appointment, error) {
	if filter.IncludeInactive {
		return m.appointments, nil
	}
	var result []*domain.Appointment
	for _, appt := range m.appointments {
		if appt.Status != domain.StatusCancelled {
			result = append(result, appt)
		}
	}
	return result, nil
}

type mockRuleRepo struct {
	rules []*domain.OperatingRule
}

func (m *mockRuleRepo) GetActiveForDate(_ context.Context, _ time.Time) ([]*domain.OperatingRule, error) {
	return m.rules, nil
}

type mockMasterRepo struct {
	master *domain.Master
	err    error
}

func (m *mockMasterRepo) GetByID(_ context.Context, _ int64) (*domain.Master, error) {
	return m.master, m.err
}

type mockServiceRepo struct {
	service *domain.Service
}

func (m *mockServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return m.service, nil
}

type mockSettingsRepo struct {
	settings *domain.SalonSettings
}

func (m *mockSettingsRepo) Get(_ context.Context) (*domain.SalonSettings, error) {
	return m.settings, nil
}

type mockIdentityClient struct {
	user *identity.User
	err  error
}

func (m *mockIdentityClient) GetUser(_ context.Context, _ int64) (*identity.User, error) {
	return m.user, m.err
}

// fakeTxManager выполняет функцию напрямую, без транзакции
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockEventBus struct {
	published []domain.AppointmentEvent
	err       error
}

func (m *mockEventBus) Publish(_ context.Context, event domain.AppointmentEvent) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, event)
	return nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	appointments *mockAppointmentRepo
	rules        *mockRuleRepo
	masters      *mockMasterRepo
	services     *mockServiceRepo
	settings     *mockSettingsRepo
	identity     *mockIdentityClient
	txManager    *fakeTxManager
	eventBus     *mockEventBus
	now          time.Time
}

func newFixture() *fixture {
	return &fixture{
		appointments: &mockAppointmentRepo{},
		rules: &mockRuleRepo{
			rules: []*domain.OperatingRule{
				{
					RuleType:  domain.RuleWeekly,
					Weekday:   ptr.Ptr(1),
					StartTime: "08:00",
					EndTime:   "12:00",
					Active:    true,
				},
			},
		},
		masters: &mockMasterRepo{
			master: &domain.Master{ID: 1, FullName: "Анна Иванова", Active: true},
		},
		services: &mockServiceRepo{
			service: &domain.Service{ID: 2, Name: "Стрижка", Price: 1500, DurationMinutes: 60, Active: true},
		},
		settings: &mockSettingsRepo{
			settings: &domain.SalonSettings{
				SlotDurationMinutes:     30,
				AdvanceBookingDays:      0,
				MinBookingNoticeMinutes: 0,
			},
		},
		identity:  &mockIdentityClient{user: &identity.User{ID: 100, FullName: "Иван Петров"}},
		txManager: &fakeTxManager{},
		eventBus:  &mockEventBus{},
		now:       time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) useCase() *UseCase {
	uc := NewUseCase(
		f.appointments, f.rules, f.masters, f.services, f.settings,
		f.identity, f.txManager, f.eventBus, nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: f.now}
	return uc
}

func (f *fixture) request() *Request {
	return &Request{
		UserID:    100,
		MasterID:  1,
		ServiceID: 2,
		Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase().Execute(context.Background(), f.request())
	require.NoError(t, err)
	require.NotNil(t, resp.Appointment)

	appt := resp.Appointment
	assert.Equal(t, int64(42), appt.ID)
	assert.Equal(t, domain.StatusPending, appt.Status)
	assert.Equal(t, types.TimeString("09:00"), appt.StartTime)
	assert.Equal(t, 60, appt.DurationMinutes)
	assert.Equal(t, "Стрижка", appt.ServiceName)
	assert.Equal(t, 1500.0, appt.ServicePrice)
	assert.Equal(t, "Анна Иванова", appt.MasterName)
	require.NotNil(t, appt.ClientName)
	assert.Equal(t, "Иван Петров", *appt.ClientName)

	assert.Equal(t, 1, f.txManager.calls)

	require.Len(t, f.eventBus.published, 1)
	event := f.eventBus.published[0]
	assert.Equal(t, domain.EventAppointmentCreated, event.Type)
	assert.Equal(t, int64(42), event.AppointmentID)
	assert.Equal(t, domain.StatusPending, event.Status)
}

func TestExecute_PromoPriceDenormalized(t *testing.T) {
	f := newFixture()
	f.services.service.PromoPrice = ptr.Ptr(990.0)
	f.services.service.PromoActive = true

	resp, err := f.useCase().Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Equal(t, 990.0, resp.Appointment.ServicePrice)
}

func TestExecute_SlotOccupied(t *testing.T) {
	f := newFixture()
	f.appointments.appointments = []*domain.Appointment{
		{StartTime: "09:30", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}

	// Услуга 60 минут с 09:00 пересекается с записью 09:30-10:00
	_, err := f.useCase().Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.eventBus.published)
}

func TestExecute_AdjacentAppointmentDoesNotConflict(t *testing.T) {
	f := newFixture()
	f.appointments.appointments = []*domain.Appointment{
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}

	// Услуга 09:00-10:00 граничит с записью 10:00-10:30
	_, err := f.useCase().Execute(context.Background(), f.request())
	require.NoError(t, err)
}

func TestExecute_CancelledAppointmentDoesNotConflict(t *testing.T) {
	f := newFixture()
	f.appointments.appointments = []*domain.Appointment{
		{StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusCancelled},
	}

	_, err := f.useCase().Execute(context.Background(), f.request())
	require.NoError(t, err)
}

func TestExecute_OutsideSchedule(t *testing.T) {
	t.Run("before opening", func(t *testing.T) {
		f := newFixture()
		req := f.request()
		req.StartTime = "07:00"

		_, err := f.useCase().Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotInSchedule)
	})

	t.Run("service does not fit before closing", func(t *testing.T) {
		f := newFixture()
		req := f.request()
		// Услуга 60 минут с 11:30 вышла бы за конец окна 12:00
		req.StartTime = "11:30"

		_, err := f.useCase().Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotInSchedule)
	})

	t.Run("off-grid time", func(t *testing.T) {
		f := newFixture()
		req := f.request()
		req.StartTime = "09:15"

		_, err := f.useCase().Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotInSchedule)
	})

	t.Run("salon closed", func(t *testing.T) {
		f := newFixture()
		f.rules.rules = nil

		_, err := f.useCase().Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrSlotNotInSchedule)
	})

	t.Run("spans adjacent rule windows", func(t *testing.T) {
		f := newFixture()
		f.rules.rules = []*domain.OperatingRule{
			{RuleType: domain.RuleWeekly, Weekday: ptr.Ptr(1), StartTime: "08:00", EndTime: "09:30", Active: true},
			{RuleType: domain.RuleWeekly, Weekday: ptr.Ptr(1), StartTime: "09:30", EndTime: "12:00", Active: true},
		}

		// Услуга 09:00-10:00 занимает слоты 09:00 и 09:30 из соседних окон
		_, err := f.useCase().Execute(context.Background(), f.request())
		require.NoError(t, err)
	})
}

func TestExecute_DateLimits(t *testing.T) {
	t.Run("past date", func(t *testing.T) {
		f := newFixture()
		req := f.request()
		req.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

		_, err := f.useCase().Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateInPast)
	})

	t.Run("too far in future", func(t *testing.T) {
		f := newFixture()
		f.settings.settings.AdvanceBookingDays = 3

		_, err := f.useCase().Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})
}

func TestExecute_MinimumNotice(t *testing.T) {
	t.Run("same day too late", func(t *testing.T) {
		f := newFixture()
		f.now = time.Date(2026, 9, 14, 8, 45, 0, 0, time.UTC)
		f.settings.settings.MinBookingNoticeMinutes = 30

		// 08:45 + 30 = 09:15, слот 09:00 уже нельзя бронировать
		_, err := f.useCase().Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})

	t.Run("same day with enough notice", func(t *testing.T) {
		f := newFixture()
		f.now = time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)
		f.settings.settings.MinBookingNoticeMinutes = 30

		_, err := f.useCase().Execute(context.Background(), f.request())
		require.NoError(t, err)
	})

	t.Run("notice ignored for future dates", func(t *testing.T) {
		f := newFixture()
		f.settings.settings.MinBookingNoticeMinutes = 1440

		_, err := f.useCase().Execute(context.Background(), f.request())
		require.NoError(t, err)
	})
}

func TestExecute_MasterAndServiceChecks(t *testing.T) {
	t.Run("master not found", func(t *testing.T) {
		f := newFixture()
		f.masters.master = nil
		f.masters.err = masterRepo.ErrMasterNotFound

		_, err := f.useCase().Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrMasterNotFound)
	})

	t.Run("master inactive", func(t *testing.T) {
		f := newFixture()
		f.masters.master.Active = false

		_, err := f.useCase().Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrMasterInactive)
	})

	t.Run("service inactive", func(t *testing.T) {
		f := newFixture()
		f.services.service.Active = false

		_, err := f.useCase().Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrServiceInactive)
	})
}

func TestExecute_IdentityFailureDoesNotBlockBooking(t *testing.T) {
	f := newFixture()
	f.identity.user = nil
	f.identity.err = errors.New("identity service unavailable")

	resp, err := f.useCase().Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Nil(t, resp.Appointment.ClientName)
}

func TestExecute_PublishFailureDoesNotBlockBooking(t *testing.T) {
	f := newFixture()
	f.eventBus.err = errors.New("redis down")

	resp, err := f.useCase().Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.NotNil(t, resp.Appointment)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(req *Request)
	}{
		{"zero user", func(req *Request) { req.UserID = 0 }},
		{"zero master", func(req *Request) { req.MasterID = 0 }},
		{"zero service", func(req *Request) { req.ServiceID = 0 }},
		{"zero date", func(req *Request) { req.Date = time.Time{} }},
		{"malformed time", func(req *Request) { req.StartTime = "9am" }},
		{"note too long", func(req *Request) {
			long := make([]byte, domain.MaxNoteLength+1)
			for i := range long {
				long[i] = 'a'
			}
			note := string(long)
			req.Note = &note
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := f.request()
			tt.modify(req)

			_, err := f.useCase().Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
