package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/accesshub/campus-back/internal/models"
	"github.com/accesshub/campus-back/internal/validation"
)

// SlotRow is one parsed line of a weekly roster sheet. Columns:
// section subject id | day of week | room id | start time | end time.
type SlotRow struct {
	SectionSubjectID uint
	DayOfWeek        string
	RoomID           uint
	StartTime        string
	EndTime          string
	Line             int
}

// ParseSlotSheet reads the first sheet of an uploaded roster workbook.
// Header rows and blank lines are skipped; any malformed cell aborts
// the import with the offending line number so nothing partial lands.
func ParseSlotSheet(r io.Reader) ([]SlotRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	var slots []SlotRow
	for i, row := range rows {
		line := i + 1
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		// Header line: first cell is not numeric.
		if i == 0 && !isDigits(strings.TrimSpace(row[0])) {
			continue
		}
		if len(row) < 5 {
			return nil, fmt.Errorf("line %d: expected 5 columns, got %d", line, len(row))
		}

		ssID, err := parseUintCell(row[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: section subject id: %w", line, err)
		}
		day := strings.ToUpper(strings.TrimSpace(row[1]))
		if !validDay(day) {
			return nil, fmt.Errorf("line %d: invalid day of week %q", line, row[1])
		}
		roomID, err := parseUintCell(row[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: room id: %w", line, err)
		}
		start := normalizeTime(row[3])
		end := normalizeTime(row[4])
		if err := validation.ValidateTimeRange("end_time", start, end, true); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		slots = append(slots, SlotRow{
			SectionSubjectID: ssID,
			DayOfWeek:        day,
			RoomID:           roomID,
			StartTime:        start,
			EndTime:          end,
			Line:             line,
		})
	}
	return slots, nil
}

func validDay(day string) bool {
	for _, d := range models.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseUintCell(cell string) (uint, error) {
	s := strings.TrimSpace(cell)
	if !isDigits(s) {
		return 0, fmt.Errorf("not a positive integer: %q", cell)
	}
	var n uint
	for _, r := range s {
		n = n*10 + uint(r-'0')
	}
	if n == 0 {
		return 0, fmt.Errorf("must be greater than zero")
	}
	return n, nil
}

// normalizeTime pads HH:MM cells to HH:MM:SS.
func normalizeTime(cell string) string {
	s := strings.TrimSpace(cell)
	if len(s) == 5 && strings.Count(s, ":") == 1 {
		return s + ":00"
	}
	return s
}
