package masters

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"salonik/internal/api/handlers"
	"salonik/internal/api/middleware"
	mastersService "salonik/internal/service/masters"
	"salonik/internal/service/masters/models"
)

const (
	msgInvalidMasterID    = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMasterNotFound     = "мастер не найден"
	msgAccessDenied       = "операция доступна только администратору"
)

// Handler обрабатывает запросы управления мастерами
type Handler struct {
	service MastersService
	logger  Logger
}

func NewHandler(service MastersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/masters
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req models.CreateMasterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /masters - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /masters", err)
		return
	}

	h.logger.Info("POST /masters - Master created: master_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/masters
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("includeInactive") != "true"

	result, err := h.service.GetAll(r.Context(), activeOnly)
	if err != nil {
		h.respondServiceError(w, "GET /masters", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/masters/{masterId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	masterID, err := strconv.ParseInt(mux.Vars(r)["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id} - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	result, err := h.service.GetByID(r.Context(), masterID)
	if err != nil {
		h.respondServiceError(w, "GET /masters/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/masters/{masterId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	masterID, err := strconv.ParseInt(mux.Vars(r)["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /masters/{id} - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	var req models.UpdateMasterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /masters/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Update(r.Context(), masterID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /masters/{id}", err)
		return
	}

	h.logger.Info("PUT /masters/{id} - Master updated: master_id=%d, user_id=%d", masterID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/masters/{masterId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	masterID, err := strconv.ParseInt(mux.Vars(r)["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /masters/{id} - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	if err := h.service.Delete(r.Context(), masterID, userID); err != nil {
		h.respondServiceError(w, "DELETE /masters/{id}", err)
		return
	}

	h.logger.Info("DELETE /masters/{id} - Master deleted: master_id=%d, user_id=%d", masterID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// respondServiceError мапит ошибки сервиса мастеров на HTTP статусы
func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, mastersService.ErrMasterNotFound):
		h.logger.Warn("%s - Master not found", route)
		handlers.RespondNotFound(w, msgMasterNotFound)

	case errors.Is(err, mastersService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgAccessDenied)

	case errors.Is(err, mastersService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
