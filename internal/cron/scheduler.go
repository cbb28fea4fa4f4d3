package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/accesshub/campus-back/internal/config"
	"github.com/accesshub/campus-back/internal/db"
	"github.com/accesshub/campus-back/internal/models"
	"github.com/accesshub/campus-back/internal/validation"
)

// StartJobs wires the recurring maintenance work: a nightly absence
// sweep and a periodic report of device boards that stopped
// heartbeating.
func StartJobs(cfg *config.Config) *cron.Cron {
	c := cron.New()

	c.AddFunc("@daily", func() {
		if err := MarkAbsences(context.Background(), time.Now()); err != nil {
			slog.Error("absence sweep failed", "error", err)
		}
	})

	c.AddFunc("@every 5m", func() {
		ReportSilentDevices(context.Background(), cfg.HeartbeatWindow)
	})

	c.Start()
	return c
}

// MarkAbsences inserts ABSENT attendance for every enrolled student of
// a session that ended the previous day without a record for them. The
// insert goes through the same (session, student, date_in) probe the
// API uses, so a manually recorded row is never shadowed.
func MarkAbsences(ctx context.Context, now time.Time) error {
	yesterday := now.AddDate(0, 0, -1).Format(validation.DateLayout)

	var sessions []models.ScheduleSession
	err := db.DB.WithContext(ctx).
		Where("end_date = ?", yesterday).
		Find(&sessions).Error
	if err != nil {
		return err
	}

	for _, session := range sessions {
		var enrolled []models.SectionSubjectStudent
		err := db.DB.WithContext(ctx).
			Joins("JOIN section_subject_schedules ON section_subject_schedules.section_subject_id = section_subject_students.section_subject_id").
			Where("section_subject_schedules.id = ?", session.SectionSubjectScheduleID).
			Find(&enrolled).Error
		if err != nil {
			return err
		}

		marked := 0
		for _, e := range enrolled {
			dateIn := yesterday
			taken, err := db.AttendanceComboExists(db.DB.WithContext(ctx), session.ID, e.StudentID, &dateIn, 0)
			if err != nil {
				return err
			}
			if taken {
				continue
			}
			row := models.ScheduleAttendance{
				ScheduleSessionID: session.ID,
				StudentID:         e.StudentID,
				DateIn:            &dateIn,
				Status:            models.AttendanceAbsent,
			}
			if err := db.DB.WithContext(ctx).Create(&row).Error; err != nil {
				return err
			}
			marked++
		}
		if marked > 0 {
			slog.Info("absence sweep", "session_id", session.ID, "marked", marked)
		}
	}
	return nil
}

// ReportSilentDevices logs boards whose last heartbeat is older than
// the configured window. Logged only; operators act on it.
func ReportSilentDevices(ctx context.Context, window time.Duration) {
	cutoff := time.Now().Add(-window)

	var devices []models.DeviceBoard
	err := db.DB.WithContext(ctx).
		Where("last_seen_at IS NULL OR last_seen_at < ?", cutoff).
		Find(&devices).Error
	if err != nil {
		slog.Error("silent device scan failed", "error", err)
		return
	}
	for _, d := range devices {
		slog.Warn("device board silent", "device_id", d.ID, "room_id", d.RoomID, "last_seen_at", d.LastSeenAt)
	}
}
