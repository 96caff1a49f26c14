package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"salonik/internal/config"
	"salonik/internal/domain"
)

// Канал Redis, в который публикуются все события об изменении записей
const appointmentsChannel = "appointments:events"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Bus шина событий об изменении записей поверх Redis pub/sub
// Каждый инстанс сервиса видит события всех инстансов, поэтому
// подписчики (SSE-стримы, уведомления) работают и при нескольких репликах
type Bus struct {
	client  *redis.Client
	channel string
	logger  Logger
}

// NewRedisClient создает клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// NewBus создает шину событий
func NewBus(client *redis.Client, logger Logger) *Bus {
	return &Bus{
		client:  client,
		channel: appointmentsChannel,
		logger:  logger,
	}
}

// Ping проверяет соединение с Redis
func (b *Bus) Ping(ctx context.Context) error {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("events.bus: failed to ping redis: %w", err)
	}
	return nil
}

// Publish публикует событие об изменении записи
// ID события генерируется здесь, если не задан
func (b *Bus) Publish(ctx context.Context, event domain.AppointmentEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	b.logger.Info("events: published %s appointment_id=%d event_id=%s",
		event.Type, event.AppointmentID, event.ID)
	return nil
}

// Subscription активная подписка на события записей
type Subscription struct {
	events <-chan domain.AppointmentEvent
	pubsub *redis.PubSub
}

// Events возвращает канал событий подписки
// Канал закрывается при Close или отмене контекста подписки
func (s *Subscription) Events() <-chan domain.AppointmentEvent {
	return s.events
}

// Close завершает подписку и освобождает соединение
func (s *Subscription) Close() error {
	return s.pubsub.Close()
}

// Subscribe подписывается на события об изменении записей
// События с некорректным payload пропускаются с предупреждением в лог
func (b *Bus) Subscribe(ctx context.Context) *Subscription {
	pubsub := b.client.Subscribe(ctx, b.channel)
	out := make(chan domain.AppointmentEvent)

	go func() {
		defer close(out)

		for msg := range pubsub.Channel() {
			var event domain.AppointmentEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warn("events: failed to unmarshal event payload: %v", err)
				continue
			}

			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return &Subscription{events: out, pubsub: pubsub}
}
