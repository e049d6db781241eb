package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/ameliakool/SCMS/internal/models"
	appErrors "github.com/ameliakool/SCMS/pkg/errors"
	"github.com/ameliakool/SCMS/pkg/export"
)

// Export formats for room schedules.
const (
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
	FormatICS  = "ics"
)

// ContentType maps an export format to its MIME type.
func ContentType(format string) string {
	switch format {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatICS:
		return "text/calendar"
	default:
		return "text/csv"
	}
}

type bookingLister interface {
	ListByRoom(ctx context.Context, roomNumber string) ([]models.Booking, error)
	ListAll(ctx context.Context) []models.Booking
}

// ExportService renders room schedules as CSV, PDF, XLSX or ICS.
type ExportService struct {
	bookings bookingLister
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	xlsx     *export.XLSXExporter
	logger   *zap.Logger
}

// NewExportService instantiates ExportService.
func NewExportService(bookings bookingLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		bookings: bookings,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		xlsx:     export.NewXLSXExporter(),
		logger:   logger,
	}
}

// RoomSchedule renders one classroom's schedule in the requested format.
func (s *ExportService) RoomSchedule(ctx context.Context, roomNumber, format string) ([]byte, string, error) {
	bookings, err := s.bookings.ListByRoom(ctx, roomNumber)
	if err != nil {
		return nil, "", err
	}
	title := fmt.Sprintf("Schedule %s", roomNumber)
	return s.render(bookings, title, format)
}

// AllSchedules renders the cross-room schedule in the requested format.
func (s *ExportService) AllSchedules(ctx context.Context, format string) ([]byte, string, error) {
	return s.render(s.bookings.ListAll(ctx), "Campus Schedule", format)
}

func (s *ExportService) render(bookings []models.Booking, title, format string) ([]byte, string, error) {
	switch format {
	case FormatCSV, "":
		data, err := s.csv.Render(scheduleDataset(bookings))
		return data, FormatCSV, err
	case FormatPDF:
		data, err := s.pdf.Render(scheduleDataset(bookings), title)
		return data, FormatPDF, err
	case FormatXLSX:
		data, err := s.xlsx.Render(scheduleDataset(bookings), "Schedule")
		return data, FormatXLSX, err
	case FormatICS:
		return renderCalendar(bookings), FormatICS, nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func scheduleDataset(bookings []models.Booking) export.Dataset {
	headers := []string{"Room", "Course", "Start", "End"}
	rows := make([]map[string]string, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, map[string]string{
			"Room":   b.Room,
			"Course": b.Course,
			"Start":  b.Interval.Start.Format(models.TimeLayout),
			"End":    b.Interval.End.Format(models.TimeLayout),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func renderCalendar(bookings []models.Booking) []byte {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//SCMS//Campus Bookings//EN")

	now := time.Now().UTC()
	for _, b := range bookings {
		event := cal.AddEvent(b.ID)
		event.SetDtStampTime(now)
		event.SetStartAt(b.Interval.Start)
		event.SetEndAt(b.Interval.End)
		event.SetSummary(b.Course)
		event.SetLocation(b.Room)
	}

	return []byte(cal.Serialize())
}
