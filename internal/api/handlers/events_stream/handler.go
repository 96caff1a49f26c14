package events_stream

import (
	"encoding/json"
	"fmt"
	"net/http"

	"salonik/internal/api/handlers"
	"salonik/internal/api/middleware"
)

const msgStreamingUnsupported = "потоковая передача не поддерживается"

// Handler отдает события об изменении записей потоком Server-Sent Events
// Подписка живет, пока клиент держит соединение
type Handler struct {
	bus    EventBus
	logger Logger
}

func NewHandler(bus EventBus, logger Logger) *Handler {
	return &Handler{
		bus:    bus,
		logger: logger,
	}
}

// Handle GET /api/v1/events/stream
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("GET /events/stream - Response writer does not support flushing")
		handlers.RespondError(w, http.StatusInternalServerError, msgStreamingUnsupported)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := h.bus.Subscribe(r.Context())
	defer sub.Close()

	h.logger.Info("GET /events/stream - Client connected: user_id=%d", userID)

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("GET /events/stream - Client disconnected: user_id=%d", userID)
			return

		case event, ok := <-sub.Events():
			if !ok {
				h.logger.Warn("GET /events/stream - Event channel closed: user_id=%d", userID)
				return
			}

			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("GET /events/stream - Failed to marshal event id=%s: %v", event.ID, err)
				continue
			}

			// Формат SSE: id, event и data, разделенные пустой строкой
			fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Type, payload)
			flusher.Flush()
		}
	}
}
