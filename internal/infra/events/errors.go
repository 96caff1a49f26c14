package events

import "errors"

var (
	// ErrPublish возвращается при ошибке публикации события в Redis
	ErrPublish = errors.New("events.bus: failed to publish event")

	// ErrMarshal возвращается при ошибке сериализации события
	ErrMarshal = errors.New("events.bus: failed to marshal event")
)
