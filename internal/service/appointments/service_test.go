package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonik/internal/domain"
	appointmentRepo "salonik/internal/infra/storage/appointment"
	masterRepo "salonik/internal/infra/storage/master"
	"salonik/internal/service/appointments/models"
)

type mockAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
	byClient     []*domain.Appointment
	byMaster     []*domain.Appointment

	updatedStatus *domain.AppointmentStatus
	cancelledID   int64
	cancelReason  string
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := m.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (m *mockAppointmentRepo) GetByClientID(_ context.Context, _ int64, _ *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return m.byClient, nil
}

func (m *mockAppointmentRepo) GetByMasterWithFilter(_ context.Context, _ domain.MasterAppointmentsFilter) ([]*domain.Appointment, error) {
	return m.byMaster, nil
}

func (m *mockAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if _, ok := m.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	m.updatedStatus = &status
	return nil
}

func (m *mockAppointmentRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := m.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	m.cancelledID = id
	m.cancelReason = reason
	return nil
}

type mockMasterRepo struct {
	byUserID map[int64]*domain.Master
}

func (m *mockMasterRepo) GetByUserID(_ context.Context, userID int64) (*domain.Master, error) {
	master, ok := m.byUserID[userID]
	if !ok {
		return nil, masterRepo.ErrMasterNotFound
	}
	return master, nil
}

type mockIdentityClient struct {
	roles map[int64]domain.Role
}

func (m *mockIdentityClient) GetUserRole(_ context.Context, userID int64) (domain.Role, error) {
	role, ok := m.roles[userID]
	if !ok {
		return domain.RoleClient, nil
	}
	return role, nil
}

type mockEventBus struct {
	published []domain.AppointmentEvent
}

func (m *mockEventBus) Publish(_ context.Context, event domain.AppointmentEvent) error {
	m.published = append(m.published, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	clientID      = int64(100)
	otherClientID = int64(101)
	masterUserID  = int64(200)
	adminID       = int64(300)
)

type fixture struct {
	repo     *mockAppointmentRepo
	masters  *mockMasterRepo
	identity *mockIdentityClient
	bus      *mockEventBus
	svc      *Service
}

func newFixture(status domain.AppointmentStatus) *fixture {
	f := &fixture{
		repo: &mockAppointmentRepo{
			appointments: map[int64]*domain.Appointment{
				1: {
					ID:              1,
					ClientID:        clientID,
					MasterID:        10,
					ServiceID:       2,
					Date:            time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
					StartTime:       "09:00",
					DurationMinutes: 60,
					Status:          status,
					ServiceName:     "Стрижка",
					MasterName:      "Анна Иванова",
				},
			},
		},
		masters: &mockMasterRepo{
			byUserID: map[int64]*domain.Master{
				masterUserID: {ID: 10, FullName: "Анна Иванова", Active: true},
			},
		},
		identity: &mockIdentityClient{
			roles: map[int64]domain.Role{
				clientID:      domain.RoleClient,
				otherClientID: domain.RoleClient,
				masterUserID:  domain.RoleMaster,
				adminID:       domain.RoleAdmin,
			},
		},
		bus: &mockEventBus{},
	}
	f.svc = NewService(f.repo, f.masters, f.identity, f.bus, nopLogger{})
	return f
}

func TestGetByID_Access(t *testing.T) {
	t.Run("owner reads own appointment", func(t *testing.T) {
		f := newFixture(domain.StatusPending)
		resp, err := f.svc.GetByID(context.Background(), 1, clientID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "pending", resp.Status)
	})

	t.Run("other client denied", func(t *testing.T) {
		f := newFixture(domain.StatusPending)
		_, err := f.svc.GetByID(context.Background(), 1, otherClientID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("assigned master reads appointment", func(t *testing.T) {
		f := newFixture(domain.StatusPending)
		_, err := f.svc.GetByID(context.Background(), 1, masterUserID)
		require.NoError(t, err)
	})

	t.Run("admin reads any appointment", func(t *testing.T) {
		f := newFixture(domain.StatusPending)
		_, err := f.svc.GetByID(context.Background(), 1, adminID)
		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(domain.StatusPending)
		_, err := f.svc.GetByID(context.Background(), 99, clientID)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("client cancels own pending appointment", func(t *testing.T) {
		f := newFixture(domain.StatusPending)

		err := f.svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
			UserID:             clientID,
			CancellationReason: "передумал",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), f.repo.cancelledID)
		assert.Equal(t, "передумал", f.repo.cancelReason)

		require.Len(t, f.bus.published, 1)
		assert.Equal(t, domain.EventAppointmentCancelled, f.bus.published[0].Type)
		assert.Equal(t, domain.StatusCancelled, f.bus.published[0].Status)
	})

	t.Run("client cannot cancel confirmed appointment", func(t *testing.T) {
		f := newFixture(domain.StatusConfirmed)

		err := f.svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: clientID})
		assert.ErrorIs(t, err, ErrTransitionNotAllowed)
		assert.Empty(t, f.bus.published)
	})

	t.Run("master cancels confirmed appointment", func(t *testing.T) {
		f := newFixture(domain.StatusConfirmed)

		err := f.svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: masterUserID})
		require.NoError(t, err)
	})

	t.Run("client cannot cancel foreign appointment", func(t *testing.T) {
		f := newFixture(domain.StatusPending)

		err := f.svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: otherClientID})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("no cancellation from terminal status even for admin", func(t *testing.T) {
		f := newFixture(domain.StatusCompleted)

		err := f.svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: adminID})
		assert.ErrorIs(t, err, ErrTransitionNotAllowed)
	})

	t.Run("reason too long", func(t *testing.T) {
		f := newFixture(domain.StatusPending)

		long := make([]byte, domain.MaxCancellationReasonLength+1)
		for i := range long {
			long[i] = 'x'
		}

		err := f.svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
			UserID:             clientID,
			CancellationReason: string(long),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("master confirms pending appointment", func(t *testing.T) {
		f := newFixture(domain.StatusPending)

		err := f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: masterUserID,
			Status: "confirmed",
		})
		require.NoError(t, err)
		require.NotNil(t, f.repo.updatedStatus)
		assert.Equal(t, domain.StatusConfirmed, *f.repo.updatedStatus)

		require.Len(t, f.bus.published, 1)
		assert.Equal(t, domain.EventAppointmentStatusChanged, f.bus.published[0].Type)
		assert.Equal(t, domain.StatusConfirmed, f.bus.published[0].Status)
	})

	t.Run("master completes confirmed appointment", func(t *testing.T) {
		f := newFixture(domain.StatusConfirmed)

		err := f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: masterUserID,
			Status: "completed",
		})
		require.NoError(t, err)
	})

	t.Run("client cannot confirm", func(t *testing.T) {
		f := newFixture(domain.StatusPending)

		err := f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: clientID,
			Status: "confirmed",
		})
		assert.ErrorIs(t, err, ErrTransitionNotAllowed)
	})

	t.Run("cannot skip pending to completed", func(t *testing.T) {
		f := newFixture(domain.StatusPending)

		err := f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: adminID,
			Status: "completed",
		})
		assert.ErrorIs(t, err, ErrTransitionNotAllowed)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newFixture(domain.StatusPending)

		err := f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: masterUserID,
			Status: "done",
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("cancellation delegates to Cancel", func(t *testing.T) {
		f := newFixture(domain.StatusPending)

		err := f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: clientID,
			Status: "cancelled",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), f.repo.cancelledID)

		require.Len(t, f.bus.published, 1)
		assert.Equal(t, domain.EventAppointmentCancelled, f.bus.published[0].Type)
	})

	t.Run("unassigned master denied", func(t *testing.T) {
		f := newFixture(domain.StatusPending)
		f.masters.byUserID[masterUserID] = &domain.Master{ID: 11, FullName: "Другой мастер", Active: true}

		err := f.svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: masterUserID,
			Status: "confirmed",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetMasterAppointments_Access(t *testing.T) {
	t.Run("assigned master allowed", func(t *testing.T) {
		f := newFixture(domain.StatusPending)
		f.repo.byMaster = []*domain.Appointment{f.repo.appointments[1]}

		resp, err := f.svc.GetMasterAppointments(context.Background(), &models.GetMasterAppointmentsRequest{
			UserID:   masterUserID,
			MasterID: 10,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Appointments, 1)
	})

	t.Run("client denied", func(t *testing.T) {
		f := newFixture(domain.StatusPending)

		_, err := f.svc.GetMasterAppointments(context.Background(), &models.GetMasterAppointmentsRequest{
			UserID:   clientID,
			MasterID: 10,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		f := newFixture(domain.StatusPending)
		badStatus := "done"

		_, err := f.svc.GetMasterAppointments(context.Background(), &models.GetMasterAppointmentsRequest{
			UserID:   adminID,
			MasterID: 10,
			Status:   &badStatus,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetClientAppointments(t *testing.T) {
	f := newFixture(domain.StatusPending)
	f.repo.byClient = []*domain.Appointment{f.repo.appointments[1]}

	resp, err := f.svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
		UserID: clientID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "Стрижка", resp.Appointments[0].ServiceName)
}
