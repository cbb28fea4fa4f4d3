package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTimeRange(t *testing.T) {
	cases := []struct {
		name    string
		start   string
		end     string
		strict  bool
		wantErr bool
	}{
		{"ordered", "08:00:00", "09:00:00", true, false},
		{"equal strict", "08:00:00", "08:00:00", true, true},
		{"equal non-strict", "08:00:00", "08:00:00", false, false},
		{"reversed", "10:00:00", "09:00:00", false, true},
		{"reversed strict", "10:00:00", "09:00:00", true, true},
		{"missing start skips", "", "09:00:00", true, false},
		{"missing end skips", "08:00:00", "", true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTimeRange("end_time", tc.start, tc.end, tc.strict)
			if tc.wantErr && err == nil {
				t.Fatalf("expected chronology error for %s..%s", tc.start, tc.end)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				var chrono *ChronologyError
				if !errors.As(err, &chrono) {
					t.Fatalf("expected ChronologyError, got %T", err)
				}
				if !Is(err) {
					t.Fatalf("chronology error must satisfy validation.Is")
				}
			}
		})
	}
}

func TestValidateTimeRangeUnparseableBound(t *testing.T) {
	err := ValidateTimeRange("end_time", "8am", "09:00:00", true)
	if err == nil {
		t.Fatal("unparseable start accepted")
	}
	var format *FormatError
	if !errors.As(err, &format) {
		t.Fatalf("expected FormatError, got %T", err)
	}
	if !Is(err) {
		t.Fatal("format error must satisfy validation.Is")
	}
	// The message names the bad value, not the range ordering.
	if !strings.Contains(err.Error(), "8am") || strings.Contains(err.Error(), "range") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidateDateRange(t *testing.T) {
	d := func(s string) *string { return &s }

	if err := ValidateDateRange("end_date", d("2025-01-01"), d("2025-01-31"), false); err != nil {
		t.Fatalf("ordered dates rejected: %v", err)
	}
	if err := ValidateDateRange("end_date", d("2025-01-01"), d("2025-01-01"), false); err != nil {
		t.Fatalf("single-day session rejected: %v", err)
	}
	if err := ValidateDateRange("end_date", d("2025-02-01"), d("2025-01-01"), false); err == nil {
		t.Fatal("reversed dates accepted")
	}
	if err := ValidateDateRange("end_date", nil, d("2025-01-01"), false); err != nil {
		t.Fatalf("nil start should skip the check: %v", err)
	}
}
