package validation

import (
	"testing"
	"time"
)

func TestSessionActive(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	d := func(s string) *string { return &s }

	cases := []struct {
		name  string
		start *string
		end   *string
		want  bool
	}{
		{"inside window", d("2025-01-01"), d("2025-01-31"), true},
		{"first day", d("2025-01-15"), d("2025-01-31"), true},
		{"last day", d("2025-01-01"), d("2025-01-15"), true},
		{"before window", d("2025-01-16"), d("2025-01-31"), false},
		{"after window", d("2025-01-01"), d("2025-01-14"), false},
		{"open end", d("2025-01-01"), nil, true},
		{"open start", nil, d("2025-01-31"), true},
		{"undated", nil, nil, false},
		{"garbage date", d("not-a-date"), d("2025-01-31"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SessionActive(tc.start, tc.end, now); got != tc.want {
				t.Fatalf("SessionActive = %v, want %v", got, tc.want)
			}
		})
	}
}
