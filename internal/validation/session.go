package validation

import "time"

// SessionActive reports whether now falls inside the session's
// [start_date, end_date] window, comparing dates only. A missing bound
// leaves that side open; a session with no dates at all is inactive.
// Enforced when attendance is created, not on update.
func SessionActive(startDate, endDate *string, now time.Time) bool {
	if startDate == nil && endDate == nil {
		return false
	}
	today := now.Format(DateLayout)
	if startDate != nil {
		if _, err := ParseDate(*startDate); err != nil {
			return false
		}
		if today < *startDate {
			return false
		}
	}
	if endDate != nil {
		if _, err := ParseDate(*endDate); err != nil {
			return false
		}
		if today > *endDate {
			return false
		}
	}
	return true
}
