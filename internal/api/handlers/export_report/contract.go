package export_report

import (
	"context"
	"time"
)

type ReportsService interface {
	ExportAppointments(ctx context.Context, userID int64, startDate, endDate time.Time) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
