package db

import (
	"context"
	"time"

	"github.com/accesshub/campus-back/internal/models"
)

func DeviceByToken(ctx context.Context, token string) (*models.DeviceBoard, error) {
	var device models.DeviceBoard
	if err := DB.WithContext(ctx).Where("token = ?", token).First(&device).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

func TouchDeviceLastSeen(ctx context.Context, deviceID uint, at time.Time) error {
	return DB.WithContext(ctx).Model(&models.DeviceBoard{}).
		Where("id = ?", deviceID).
		Update("last_seen_at", at).Error
}

func CredentialByValue(ctx context.Context, credType, value string) (*models.Credential, error) {
	var cred models.Credential
	if err := DB.WithContext(ctx).Preload("User").
		Where("type = ? AND value = ?", credType, value).
		First(&cred).Error; err != nil {
		return nil, err
	}
	return &cred, nil
}

// UserHasRoomBooking decides whether a user belongs in a room at the
// given local moment: an own weekly schedule period, an enrolled
// student-schedule period, or an active dated session covering now.
func UserHasRoomBooking(ctx context.Context, userID, roomID uint, dayOfWeek, timeOfDay, date string) (bool, error) {
	var n int64

	// Own weekly schedule with a period covering the moment.
	err := DB.WithContext(ctx).Model(&models.SchedulePeriod{}).
		Joins("JOIN schedules ON schedules.id = schedule_periods.schedule_id").
		Where("schedules.user_id = ? AND schedules.room_id = ? AND schedules.day_of_week = ?", userID, roomID, dayOfWeek).
		Where("schedule_periods.start_time <= ? AND schedule_periods.end_time > ?", timeOfDay, timeOfDay).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	// Enrollment through a StudentSchedule link.
	err = DB.WithContext(ctx).Model(&models.StudentSchedule{}).
		Joins("JOIN schedules ON schedules.id = student_schedules.schedule_id").
		Joins("JOIN schedule_periods ON schedule_periods.id = student_schedules.schedule_period_id").
		Where("student_schedules.student_id = ? AND schedules.room_id = ? AND schedules.day_of_week = ?", userID, roomID, dayOfWeek).
		Where("schedule_periods.start_time <= ? AND schedule_periods.end_time > ?", timeOfDay, timeOfDay).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	// Active dated session where the user teaches or is enrolled.
	active := DB.WithContext(ctx).Model(&models.ScheduleSession{}).
		Joins("JOIN section_subject_schedules ON section_subject_schedules.id = schedule_sessions.section_subject_schedule_id").
		Where("schedule_sessions.room_id = ?", roomID).
		Where("schedule_sessions.start_date IS NOT NULL AND schedule_sessions.start_date <= ?", date).
		Where("(schedule_sessions.end_date IS NULL OR schedule_sessions.end_date >= ?)", date).
		Where("schedule_sessions.start_time <= ? AND schedule_sessions.end_time > ?", timeOfDay, timeOfDay)

	err = active.
		Joins("LEFT JOIN section_subject_students ON section_subject_students.section_subject_id = section_subject_schedules.section_subject_id").
		Where("schedule_sessions.faculty_id = ? OR section_subject_students.student_id = ?", userID, userID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
