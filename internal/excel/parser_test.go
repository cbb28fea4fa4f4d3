package excel

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	return f
}

func TestParseSlotSheet(t *testing.T) {
	f := buildWorkbook(t, [][]interface{}{
		{"section_subject_id", "day_of_week", "room_id", "start_time", "end_time"},
		{1, "MONDAY", 2, "08:00", "09:00:00"},
		{1, "wednesday", 3, "10:00:00", "11:30:00"},
	})
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	slots, err := ParseSlotSheet(buf)
	if err != nil {
		t.Fatalf("ParseSlotSheet: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[0].DayOfWeek != "MONDAY" || slots[0].StartTime != "08:00:00" {
		t.Fatalf("unexpected first slot: %+v", slots[0])
	}
	if slots[1].DayOfWeek != "WEDNESDAY" || slots[1].RoomID != 3 {
		t.Fatalf("unexpected second slot: %+v", slots[1])
	}
}

func TestParseSlotSheetRejectsReversedWindow(t *testing.T) {
	f := buildWorkbook(t, [][]interface{}{
		{1, "MONDAY", 2, "11:00:00", "09:00:00"},
	})
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	if _, err := ParseSlotSheet(buf); err == nil {
		t.Fatal("reversed window accepted")
	}
}

func TestParseSlotSheetRejectsBadDay(t *testing.T) {
	f := buildWorkbook(t, [][]interface{}{
		{1, "FUNDAY", 2, "08:00:00", "09:00:00"},
	})
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	if _, err := ParseSlotSheet(buf); err == nil {
		t.Fatal("bad day accepted")
	}
}
