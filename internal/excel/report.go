package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/accesshub/campus-back/internal/models"
)

var attendanceHeader = []string{"Student", "Email", "Date In", "Time In", "Date Out", "Time Out", "Status"}

// AttendanceReport renders one session's attendance rows as a workbook.
func AttendanceReport(session *models.ScheduleSession, rows []models.ScheduleAttendance) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, h := range attendanceHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []interface{}{
			fmt.Sprintf("%s %s", row.Student.FirstName, row.Student.LastName),
			row.Student.Email,
			deref(row.DateIn),
			deref(row.TimeIn),
			deref(row.DateOut),
			deref(row.TimeOut),
			row.Status,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var label string
	if session.StartDate != nil {
		label = *session.StartDate
	} else {
		label = "undated"
	}
	f.SetCellValue(sheet, "I1", fmt.Sprintf("Session %d (%s)", session.ID, label))

	return f.WriteToBuffer()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
