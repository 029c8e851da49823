// Package report renders attendance summaries as spreadsheets and PDFs.
package report

import (
	"fmt"
	"io"
	"time"

	"teamtime-bot/internal/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// WeekDays is the length of a weekly report.
const WeekDays = 7

const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

const sheetName = "Attendance"

type Day struct {
	Date     string
	Weekday  string
	CheckIn  string
	CheckOut string
	Worked   string
	Minutes  int
}

// Weekly is one user's attendance over seven consecutive days.
type Weekly struct {
	UserID       string
	UserName     string
	From         string
	To           string
	Days         []Day
	TotalMinutes int
}

// BuildWeekly lays records out over the seven days ending at end. Days with
// no record are kept as empty rows; only closed records add to the total.
func BuildWeekly(user *models.User, records []*models.AttendanceRecord, end time.Time) *Weekly {
	byDate := make(map[string]*models.AttendanceRecord, len(records))
	for _, r := range records {
		if r.UserID == user.ID {
			byDate[r.Date] = r
		}
	}

	start := end.AddDate(0, 0, -(WeekDays - 1))
	w := &Weekly{
		UserID:   user.ID,
		UserName: user.Name,
		From:     models.FormatDate(start),
		To:       models.FormatDate(end),
		Days:     make([]Day, 0, WeekDays),
	}

	for i := 0; i < WeekDays; i++ {
		date := start.AddDate(0, 0, i)
		day := Day{
			Date:    models.FormatDate(date),
			Weekday: date.Weekday().String(),
			Worked:  "-",
		}

		if r, ok := byDate[day.Date]; ok {
			day.CheckIn = r.CheckIn
			day.CheckOut = r.CheckOut
			day.Worked = r.Duration()
			if minutes, ok := r.WorkedMinutes(); ok {
				day.Minutes = minutes
				w.TotalMinutes += minutes
			}
		}
		w.Days = append(w.Days, day)
	}
	return w
}

func (w *Weekly) Total() string {
	return models.FormatMinutes(w.TotalMinutes)
}

// Filename suggests a download name for the given format.
func (w *Weekly) Filename(format string) string {
	return fmt.Sprintf("attendance_%s_%s_%s.%s", w.UserID, w.From, w.To, format)
}

// Write renders w in format ("xlsx" or "pdf").
func Write(out io.Writer, w *Weekly, format string) error {
	switch format {
	case FormatXLSX:
		return WriteXLSX(out, w)
	case FormatPDF:
		return WritePDF(out, w)
	}
	return fmt.Errorf("unsupported report format %q", format)
}

func WriteXLSX(out io.Writer, w *Weekly) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	rows := [][]any{
		{"Weekly attendance", w.UserName},
		{"Period", fmt.Sprintf("%s - %s", w.From, w.To)},
		{},
		{"Date", "Day", "Check-in", "Check-out", "Worked"},
	}
	for _, d := range w.Days {
		rows = append(rows, []any{d.Date, d.Weekday, d.CheckIn, d.CheckOut, d.Worked})
	}
	rows = append(rows, []any{"Total", "", "", "", w.Total()})

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "E", 14); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A4", "E4", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func WritePDF(out io.Writer, w *Weekly) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Weekly attendance")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", w.UserName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", w.From, w.To))
	pdf.Ln(10)

	widths := []float64{32, 32, 30, 30, 30}
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range []string{"Date", "Day", "Check-in", "Check-out", "Worked"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, d := range w.Days {
		for i, v := range []string{d.Date, d.Weekday, d.CheckIn, d.CheckOut, d.Worked} {
			pdf.CellFormat(widths[i], 7, v, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 8, w.Total(), "1", 0, "C", false, 0, "")

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
