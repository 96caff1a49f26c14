package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonik/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestBus(t *testing.T) *Bus {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewBus(client, nopLogger{})
}

func sampleEvent() domain.AppointmentEvent {
	return domain.AppointmentEvent{
		Type:          domain.EventAppointmentCreated,
		AppointmentID: 42,
		MasterID:      1,
		ClientID:      100,
		Date:          "2026-09-14",
		StartTime:     "09:00",
		Status:        domain.StatusPending,
		ServiceName:   "Стрижка",
		OccurredAt:    time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC),
	}
}

func TestBus_PublishSubscribeRoundtrip(t *testing.T) {
	bus := newTestBus(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := bus.Subscribe(ctx)
	defer sub.Close()

	// Даем подписке установиться до публикации
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, bus.Publish(ctx, sampleEvent()))

	select {
	case got := <-sub.Events():
		assert.Equal(t, domain.EventAppointmentCreated, got.Type)
		assert.Equal(t, int64(42), got.AppointmentID)
		assert.Equal(t, domain.StatusPending, got.Status)
		assert.Equal(t, "Стрижка", got.ServiceName)
		assert.NotEmpty(t, got.ID, "publish must assign event id")
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestBus_PublishKeepsProvidedID(t *testing.T) {
	bus := newTestBus(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := bus.Subscribe(ctx)
	defer sub.Close()
	time.Sleep(50 * time.Millisecond)

	event := sampleEvent()
	event.ID = "fixed-id"
	require.NoError(t, bus.Publish(ctx, event))

	select {
	case got := <-sub.Events():
		assert.Equal(t, "fixed-id", got.ID)
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestBus_SubscriptionCloseStopsEvents(t *testing.T) {
	bus := newTestBus(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := bus.Subscribe(ctx)
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, sub.Close())

	// После закрытия подписки канал событий закрывается
	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok, "events channel must be closed")
	case <-ctx.Done():
		t.Fatal("timed out waiting for channel close")
	}
}

func TestBus_Ping(t *testing.T) {
	bus := newTestBus(t)
	require.NoError(t, bus.Ping(context.Background()))
}
