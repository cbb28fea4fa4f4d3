package db

import (
	"gorm.io/gorm"

	"github.com/accesshub/campus-back/internal/models"
)

// SessionComboExists probes (section_subject_schedule, start_date).
// A NULL start_date is its own bucket: drafted sessions without a date
// collide with each other, not with dated ones.
func SessionComboExists(tx *gorm.DB, sectionSubjectScheduleID uint, startDate *string, excludeID uint) (bool, error) {
	q := tx.Model(&models.ScheduleSession{}).
		Where("section_subject_schedule_id = ?", sectionSubjectScheduleID)
	if startDate == nil {
		q = q.Where("start_date IS NULL")
	} else {
		q = q.Where("start_date = ?", *startDate)
	}
	return exists(q, excludeID)
}

// AttendanceComboExists probes (session, student, date_in) with the
// same NULL-bucket rule on date_in.
func AttendanceComboExists(tx *gorm.DB, sessionID, studentID uint, dateIn *string, excludeID uint) (bool, error) {
	q := tx.Model(&models.ScheduleAttendance{}).
		Where("schedule_session_id = ? AND student_id = ?", sessionID, studentID)
	if dateIn == nil {
		q = q.Where("date_in IS NULL")
	} else {
		q = q.Where("date_in = ?", *dateIn)
	}
	return exists(q, excludeID)
}
