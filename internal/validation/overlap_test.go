package validation

import "testing"

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"contained", Interval{Start: "09:00:00", End: "10:00:00"}, Interval{Start: "08:00:00", End: "11:00:00"}, true},
		{"containing", Interval{Start: "08:00:00", End: "11:00:00"}, Interval{Start: "09:00:00", End: "10:00:00"}, true},
		{"partial front", Interval{Start: "07:00:00", End: "08:30:00"}, Interval{Start: "08:00:00", End: "11:00:00"}, true},
		{"partial back", Interval{Start: "10:30:00", End: "12:00:00"}, Interval{Start: "08:00:00", End: "11:00:00"}, true},
		{"identical", Interval{Start: "08:00:00", End: "11:00:00"}, Interval{Start: "08:00:00", End: "11:00:00"}, true},
		{"back-to-back after", Interval{Start: "11:00:00", End: "12:00:00"}, Interval{Start: "08:00:00", End: "11:00:00"}, false},
		{"back-to-back before", Interval{Start: "07:00:00", End: "08:00:00"}, Interval{Start: "08:00:00", End: "11:00:00"}, false},
		{"disjoint", Interval{Start: "13:00:00", End: "14:00:00"}, Interval{Start: "08:00:00", End: "11:00:00"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.b); got != tc.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			// intersection is symmetric
			if got := Overlaps(tc.b, tc.a); got != tc.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

func TestHasConflict(t *testing.T) {
	existing := []Interval{
		{ID: 1, Start: "08:00:00", End: "11:00:00"},
		{ID: 2, Start: "13:00:00", End: "14:00:00"},
	}

	if !HasConflict(Interval{Start: "09:00:00", End: "10:00:00"}, existing) {
		t.Fatal("window inside an existing period must conflict")
	}
	if HasConflict(Interval{Start: "11:00:00", End: "12:00:00"}, existing) {
		t.Fatal("back-to-back window must not conflict")
	}
	if HasConflict(Interval{Start: "14:00:00", End: "15:00:00"}, existing) {
		t.Fatal("disjoint window must not conflict")
	}
}

func TestHasConflictExcludesSelf(t *testing.T) {
	existing := []Interval{{ID: 7, Start: "08:00:00", End: "11:00:00"}}

	// An update that does not move the window must not collide with the
	// row's own stored interval.
	if HasConflict(Interval{ID: 7, Start: "08:00:00", End: "11:00:00"}, existing) {
		t.Fatal("row conflicted with itself on update")
	}
	if !HasConflict(Interval{ID: 8, Start: "08:00:00", End: "11:00:00"}, existing) {
		t.Fatal("different row must still conflict")
	}
}
