package validation

// Interval is a half-open [Start, End) time-of-day window in HH:MM:SS.
// Zero-padded 24-hour strings order lexicographically, so no parsing is
// needed for the comparison itself.
type Interval struct {
	ID    uint
	Start string
	End   string
}

// Overlaps reports whether two intervals on the same room+day intersect.
// Strict comparisons keep back-to-back windows (08:00-09:00, 09:00-10:00)
// from being flagged.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

// HasConflict tests candidate against every existing interval sharing
// its (room, day), short-circuiting on the first hit. A non-zero ID on
// candidate skips the stored version of the row being updated.
func HasConflict(candidate Interval, existing []Interval) bool {
	for _, iv := range existing {
		if candidate.ID != 0 && iv.ID == candidate.ID {
			continue
		}
		if Overlaps(candidate, iv) {
			return true
		}
	}
	return false
}
