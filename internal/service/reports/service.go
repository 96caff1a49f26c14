package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"salonik/internal/domain"
)

const sheetName = "Записи"

// Максимальный период отчета, чтобы не собирать файл на годы данных
const maxReportDays = 366

// Service сервис выгрузки отчетов по записям в Excel
// Доступен только администратору
type Service struct {
	appointmentRepo AppointmentRepository
	identityClient  IdentityClient
	exportsPath     string
	logger          Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(
	appointmentRepo AppointmentRepository,
	identityClient IdentityClient,
	exportsPath string,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		identityClient:  identityClient,
		exportsPath:     exportsPath,
		logger:          logger,
	}
}

// ExportAppointments выгружает записи за период в xlsx файл
// Возвращает путь к созданному файлу
func (s *Service) ExportAppointments(ctx context.Context, userID int64, startDate, endDate time.Time) (string, error) {
	s.logger.Info("ExportAppointments: export %s - %s by user=%d",
		startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat), userID)

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		return "", err
	}

	if err := validatePeriod(startDate, endDate); err != nil {
		s.logger.Warn("ExportAppointments: invalid period: %v", err)
		return "", err
	}

	appointments, err := s.appointmentRepo.GetForPeriod(ctx, startDate, endDate)
	if err != nil {
		s.logger.Error("ExportAppointments: repository error: %v", err)
		return "", fmt.Errorf("%w: ExportAppointments - repository error: %v", ErrInternal, err)
	}

	filePath, err := s.writeExcel(appointments, startDate, endDate)
	if err != nil {
		s.logger.Error("ExportAppointments: failed to write excel file: %v", err)
		return "", fmt.Errorf("%w: failed to write excel file: %v", ErrInternal, err)
	}

	s.logger.Info("ExportAppointments: exported %d appointments to %s", len(appointments), filePath)
	return filePath, nil
}

func (s *Service) writeExcel(appointments []*domain.Appointment, startDate, endDate time.Time) (string, error) {
	// Создаем папку для экспорта, если не существует
	if err := os.MkdirAll(s.exportsPath, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("create sheet: %v", err)
	}
	f.SetActiveSheet(index)

	// Заголовок периода
	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Записи за период: %s - %s",
		startDate.Format("02.01.2006"), endDate.Format("02.01.2006")))
	_ = f.MergeCell(sheetName, "A1", "J1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	// Заголовки колонок
	headers := []string{
		"ID", "Дата", "Время", "Мастер", "Клиент", "Услуга",
		"Цена", "Длительность (мин)", "Статус", "Комментарий",
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// Данные записей
	for i, appt := range appointments {
		row := i + 3
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), appt.ID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), appt.Date.Format("02.01.2006"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), appt.StartTime.String())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), appt.MasterName)
		if appt.ClientName != nil {
			_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), *appt.ClientName)
		}
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), appt.ServiceName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), appt.ServicePrice)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), appt.DurationMinutes)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), statusLabel(appt.Status))
		if appt.Note != nil {
			_ = f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), *appt.Note)
		}

		if styleID, err := statusCellStyle(f, appt.Status); err == nil {
			cell := fmt.Sprintf("I%d", row)
			_ = f.SetCellStyle(sheetName, cell, cell, styleID)
		}
	}

	// Ширина колонок
	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "C", 12)
	_ = f.SetColWidth(sheetName, "D", "F", 25)
	_ = f.SetColWidth(sheetName, "G", "I", 14)
	_ = f.SetColWidth(sheetName, "J", "J", 40)

	// Удаляем стандартный лист
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("appointments_%s_to_%s.xlsx",
		startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat))
	filePath := filepath.Join(s.exportsPath, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("save file: %v", err)
	}

	return filePath, nil
}

// statusLabel возвращает русское название статуса для отчета
func statusLabel(status domain.AppointmentStatus) string {
	switch status {
	case domain.StatusPending:
		return "Ожидает подтверждения"
	case domain.StatusConfirmed:
		return "Подтверждена"
	case domain.StatusCompleted:
		return "Завершена"
	case domain.StatusCancelled:
		return "Отменена"
	default:
		return string(status)
	}
}

// statusCellStyle возвращает стиль ячейки статуса
func statusCellStyle(f *excelize.File, status domain.AppointmentStatus) (int, error) {
	var color string
	switch status {
	case domain.StatusPending:
		color = "#FFEB9C" // желтый
	case domain.StatusConfirmed, domain.StatusCompleted:
		color = "#C6EFCE" // зеленый
	case domain.StatusCancelled:
		color = "#FFC7CE" // красный
	default:
		color = "#FFFFFF"
	}

	return f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})
}

func validatePeriod(startDate, endDate time.Time) error {
	if startDate.IsZero() || endDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidPeriod)
	}
	if endDate.Before(startDate) {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidPeriod)
	}
	if endDate.Sub(startDate) > maxReportDays*24*time.Hour {
		return fmt.Errorf("%w: period must not exceed %d days", ErrInvalidPeriod, maxReportDays)
	}
	return nil
}

// checkAdminAccess проверяет, что пользователь - администратор
func (s *Service) checkAdminAccess(ctx context.Context, userID int64) error {
	role, err := s.identityClient.GetUserRole(ctx, userID)
	if err != nil {
		s.logger.Error("checkAdminAccess: failed to resolve role for user=%d: %v", userID, err)
		return fmt.Errorf("%w: failed to resolve user role: %v", ErrInternal, err)
	}

	if role != domain.RoleAdmin {
		s.logger.Warn("checkAdminAccess: user=%d with role=%s is not an admin", userID, role)
		return ErrAccessDenied
	}

	return nil
}
