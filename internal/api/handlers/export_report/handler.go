package export_report

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"salonik/internal/api/handlers"
	"salonik/internal/api/middleware"
	"salonik/internal/domain"
	reportsService "salonik/internal/service/reports"
)

const (
	msgMissingDates  = "параметры startDate и endDate обязательны"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod = "некорректный период отчета"
	msgAccessDenied  = "операция доступна только администратору"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service ReportsService
	logger  Logger
}

func NewHandler(service ReportsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reports/appointments
// Query params: startDate, endDate (required, YYYY-MM-DD)
// Отдает xlsx файл с записями за период
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	query := r.URL.Query()
	startDateStr := query.Get("startDate")
	endDateStr := query.Get("endDate")

	if startDateStr == "" || endDateStr == "" {
		h.logger.Warn("GET /reports/appointments - Missing dates: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, startDateStr)
	if err != nil {
		h.logger.Warn("GET /reports/appointments - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := time.Parse(domain.DateFormat, endDateStr)
	if err != nil {
		h.logger.Warn("GET /reports/appointments - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	filePath, err := h.service.ExportAppointments(r.Context(), userID, startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, reportsService.ErrAccessDenied):
			h.logger.Warn("GET /reports/appointments - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reportsService.ErrInvalidPeriod):
			h.logger.Warn("GET /reports/appointments - Invalid period: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /reports/appointments - Failed to export: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reports/appointments - Report exported: user_id=%d, file=%s", userID, filePath)

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(filePath))
	http.ServeFile(w, r, filePath)
}
