package events_stream

import (
	"context"

	"salonik/internal/infra/events"
)

type EventBus interface {
	Subscribe(ctx context.Context) *events.Subscription
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
