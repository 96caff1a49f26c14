package get_master_appointments

import (
	"context"

	"salonik/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetMasterAppointments(ctx context.Context, req *models.GetMasterAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
