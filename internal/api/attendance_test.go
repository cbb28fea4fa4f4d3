package api

import (
	"testing"

	"github.com/accesshub/campus-back/internal/models"
)

func strp(s string) *string { return &s }

func TestCheckAttendanceChronology(t *testing.T) {
	cases := []struct {
		name    string
		row     models.ScheduleAttendance
		wantErr bool
	}{
		{
			"check-in only",
			models.ScheduleAttendance{DateIn: strp("2025-01-01"), TimeIn: strp("08:00:00")},
			false,
		},
		{
			"ordered same day",
			models.ScheduleAttendance{
				DateIn: strp("2025-01-01"), TimeIn: strp("08:00:00"),
				DateOut: strp("2025-01-01"), TimeOut: strp("10:00:00"),
			},
			false,
		},
		{
			"instant checkout allowed",
			models.ScheduleAttendance{
				DateIn: strp("2025-01-01"), TimeIn: strp("08:00:00"),
				DateOut: strp("2025-01-01"), TimeOut: strp("08:00:00"),
			},
			false,
		},
		{
			"time out before time in",
			models.ScheduleAttendance{
				DateIn: strp("2025-01-01"), TimeIn: strp("10:00:00"),
				DateOut: strp("2025-01-01"), TimeOut: strp("08:00:00"),
			},
			true,
		},
		{
			"date out before date in",
			models.ScheduleAttendance{
				DateIn: strp("2025-01-02"), DateOut: strp("2025-01-01"),
			},
			true,
		},
		{
			"overnight session is not a chronology error",
			models.ScheduleAttendance{
				DateIn: strp("2025-01-01"), TimeIn: strp("22:00:00"),
				DateOut: strp("2025-01-02"), TimeOut: strp("01:00:00"),
			},
			false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkAttendanceChronology(&tc.row)
			if tc.wantErr && err == nil {
				t.Fatal("expected chronology error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
