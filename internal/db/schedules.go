package db

import (
	"gorm.io/gorm"

	"github.com/accesshub/campus-back/internal/models"
	"github.com/accesshub/campus-back/internal/validation"
)

// Composite-key existence probes. excludeID skips the row being updated.

func ScheduleComboExists(tx *gorm.DB, userID uint, dayOfWeek string, roomID, subjectID, excludeID uint) (bool, error) {
	q := tx.Model(&models.Schedule{}).
		Where("user_id = ? AND day_of_week = ? AND room_id = ? AND subject_id = ?", userID, dayOfWeek, roomID, subjectID)
	return exists(q, excludeID)
}

func SectionSubjectComboExists(tx *gorm.DB, sectionID, subjectID, facultyID, excludeID uint) (bool, error) {
	q := tx.Model(&models.SectionSubject{}).
		Where("section_id = ? AND subject_id = ? AND faculty_id = ?", sectionID, subjectID, facultyID)
	return exists(q, excludeID)
}

func SectionSubjectStudentExists(tx *gorm.DB, sectionSubjectID, studentID, excludeID uint) (bool, error) {
	q := tx.Model(&models.SectionSubjectStudent{}).
		Where("section_subject_id = ? AND student_id = ?", sectionSubjectID, studentID)
	return exists(q, excludeID)
}

func StudentScheduleExists(tx *gorm.DB, studentID, subjectID, scheduleID, periodID, excludeID uint) (bool, error) {
	q := tx.Model(&models.StudentSchedule{}).
		Where("student_id = ? AND subject_id = ? AND schedule_id = ? AND schedule_period_id = ?",
			studentID, subjectID, scheduleID, periodID)
	return exists(q, excludeID)
}

func SectionSubjectScheduleComboExists(tx *gorm.DB, sectionSubjectID uint, dayOfWeek string, roomID uint, startTime, endTime string, excludeID uint) (bool, error) {
	q := tx.Model(&models.SectionSubjectSchedule{}).
		Where("section_subject_id = ? AND day_of_week = ? AND room_id = ? AND start_time = ? AND end_time = ?",
			sectionSubjectID, dayOfWeek, roomID, startTime, endTime)
	return exists(q, excludeID)
}

func exists(q *gorm.DB, excludeID uint) (bool, error) {
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// PeriodIntervals loads every SchedulePeriod window booked in the room
// on the given day. The overlap test itself runs in validation.
func PeriodIntervals(tx *gorm.DB, roomID uint, dayOfWeek string) ([]validation.Interval, error) {
	var periods []models.SchedulePeriod
	err := tx.Joins("JOIN schedules ON schedules.id = schedule_periods.schedule_id").
		Where("schedules.room_id = ? AND schedules.day_of_week = ?", roomID, dayOfWeek).
		Find(&periods).Error
	if err != nil {
		return nil, err
	}
	intervals := make([]validation.Interval, 0, len(periods))
	for _, p := range periods {
		intervals = append(intervals, validation.Interval{ID: p.ID, Start: p.StartTime, End: p.EndTime})
	}
	return intervals, nil
}

// SlotIntervals is PeriodIntervals for SectionSubjectSchedule rows.
func SlotIntervals(tx *gorm.DB, roomID uint, dayOfWeek string) ([]validation.Interval, error) {
	var slots []models.SectionSubjectSchedule
	err := tx.Where("room_id = ? AND day_of_week = ?", roomID, dayOfWeek).
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	intervals := make([]validation.Interval, 0, len(slots))
	for _, s := range slots {
		intervals = append(intervals, validation.Interval{ID: s.ID, Start: s.StartTime, End: s.EndTime})
	}
	return intervals, nil
}
