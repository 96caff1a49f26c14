package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonik/internal/domain"
	masterRepo "salonik/internal/infra/storage/master"
	serviceRepo "salonik/internal/infra/storage/service"
	settingsRepo "salonik/internal/infra/storage/settings"
	"salonik/pkg/ptr"
	"salonik/pkg/types"
)

type mockAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (m *mockAppointmentRepo) GetByMasterWithFilter(_ context.Context, _ domain.MasterAppointmentsFilter) ([]*domain.Appointment, error) {
	return m.appointments, m.err
}

type mockRuleRepo struct {
	rules []*domain.OperatingRule
	err   error
}

func (m *mockRuleRepo) GetActiveForDate(_ context.Context, _ time.Time) ([]*domain.OperatingRule, error) {
	return m.rules, m.err
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
	err     error
}

func (m *mockServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return m.service, m.err
}

type mockSettingsRepo struct {
	settings *domain.SalonSettings
	err      error
}

func (m *mockSettingsRepo) Get(_ context.Context) (*domain.SalonSettings, error) {
	return m.settings, m.err
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
					EndTime:   "10:00",
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
		// Понедельник, за неделю до даты запроса
		now: time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) useCase() *UseCase {
	uc := NewUseCase(f.appointments, f.rules, f.masters, f.services, f.settings, nopLogger{})
	uc.timeProvider = &fixedTime{now: f.now}
	return uc
}

func (f *fixture) request() *Request {
	return &Request{
		UserID:    100,
		MasterID:  1,
		ServiceID: 2,
		Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), // понедельник
	}
}

func TestExecute_FullWindow(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase().Execute(context.Background(), f.request())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	for i, want := range []types.TimeString{"08:00", "08:30", "09:00", "09:30"} {
		assert.Equal(t, want, resp.Slots[i].StartTime)
		assert.True(t, resp.Slots[i].Available)
		assert.Equal(t, 30, resp.Slots[i].DurationMinutes)
	}
}

func TestExecute_OccupiedSlots(t *testing.T) {
	f := newFixture()
	f.appointments.appointments = []*domain.Appointment{
		{
			StartTime:       "09:00",
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
			ServiceName:     "Окрашивание",
			MasterName:      "Анна Иванова",
		},
	}

	resp, err := f.useCase().Execute(context.Background(), f.request())
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	assert.True(t, resp.Slots[0].Available)
	assert.True(t, resp.Slots[1].Available)

	assert.False(t, resp.Slots[2].Available)
	assert.Equal(t, domain.ReasonOccupied, resp.Slots[2].Reason)
	assert.Equal(t, "Окрашивание", resp.Slots[2].ConflictingServiceName)
	assert.Equal(t, "Анна Иванова", resp.Slots[2].ConflictingMasterName)

	assert.False(t, resp.Slots[3].Available)
	assert.Equal(t, domain.ReasonOccupied, resp.Slots[3].Reason)
}

func TestExecute_SameDayExpiry(t *testing.T) {
	f := newFixture()
	f.now = time.Date(2026, 9, 14, 8, 45, 0, 0, time.UTC)
	f.settings.settings.MinBookingNoticeMinutes = 30

	resp, err := f.useCase().Execute(context.Background(), f.request())
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	// now + 30 мин = 09:15, слоты до этого времени включительно просрочены
	assert.False(t, resp.Slots[0].Available)
	assert.Equal(t, domain.ReasonExpired, resp.Slots[0].Reason)
	assert.False(t, resp.Slots[1].Available)
	assert.False(t, resp.Slots[2].Available)
	assert.True(t, resp.Slots[3].Available, "09:30")
}

func TestExecute_NoRulesSalonClosed(t *testing.T) {
	f := newFixture()
	f.rules.rules = nil

	resp, err := f.useCase().Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateYieldsEmpty(t *testing.T) {
	f := newFixture()
	f.now = time.Date(2026, 9, 20, 12, 0, 0, 0, time.UTC)

	resp, err := f.useCase().Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	f := newFixture()
	f.settings.settings.AdvanceBookingDays = 3

	_, err := f.useCase().Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_DefaultSettingsWhenMissing(t *testing.T) {
	f := newFixture()
	f.settings.settings = nil
	f.settings.err = settingsRepo.ErrSettingsNotFound

	resp, err := f.useCase().Execute(context.Background(), f.request())
	require.NoError(t, err)

	// Дефолтный шаг сетки - 30 минут
	require.Len(t, resp.Slots, 4)
	assert.Equal(t, 30, resp.Slots[0].DurationMinutes)
}

func TestExecute_MasterErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.masters.master = nil
		f.masters.err = masterRepo.ErrMasterNotFound

		_, err := f.useCase().Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrMasterNotFound)
	})

	t.Run("inactive", func(t *testing.T) {
		f := newFixture()
		f.masters.master.Active = false

		_, err := f.useCase().Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrMasterInactive)
	})
}

func TestExecute_ServiceErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.services.service = nil
		f.services.err = serviceRepo.ErrServiceNotFound

		_, err := f.useCase().Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("inactive", func(t *testing.T) {
		f := newFixture()
		f.services.service.Active = false

		_, err := f.useCase().Execute(context.Background(), f.request())
		assert.ErrorIs(t, err, ErrServiceInactive)
	})
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	req := f.request()
	req.MasterID = 0

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_Idempotent(t *testing.T) {
	f := newFixture()
	f.appointments.appointments = []*domain.Appointment{
		{StartTime: "08:30", DurationMinutes: 30, Status: domain.StatusPending, ServiceName: "Маникюр"},
	}
	uc := f.useCase()

	first, err := uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		next, err := uc.Execute(context.Background(), f.request())
		require.NoError(t, err)
		assert.Equal(t, first.Slots, next.Slots)
	}
}
