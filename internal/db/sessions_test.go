package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/accesshub/campus-back/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// A second pooled connection would see its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Subject{},
		&models.Section{},
		&models.SectionSubject{},
		&models.SectionSubjectSchedule{},
		&models.ScheduleSession{},
		&models.ScheduleAttendance{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func strptr(s string) *string { return &s }

func mustProbe(t *testing.T) func(taken bool, err error) bool {
	t.Helper()
	return func(taken bool, err error) bool {
		t.Helper()
		if err != nil {
			t.Fatalf("probe failed: %v", err)
		}
		return taken
	}
}

func TestSessionComboExistsNullBucket(t *testing.T) {
	gdb := openTestDB(t)

	draft := models.ScheduleSession{
		SectionSubjectScheduleID: 1,
		FacultyID:                1,
		RoomID:                   1,
		StartTime:                "08:00:00",
		EndTime:                  "10:00:00",
	}
	if err := gdb.Create(&draft).Error; err != nil {
		t.Fatalf("create draft session: %v", err)
	}

	// A second undated session for the same slot lands in the NULL bucket.
	if !mustProbe(t)(SessionComboExists(gdb, 1, nil, 0)) {
		t.Fatal("two undated sessions for the same slot must collide")
	}
	// A dated session does not share that bucket.
	if mustProbe(t)(SessionComboExists(gdb, 1, strptr("2026-03-02"), 0)) {
		t.Fatal("dated session collided with the undated one")
	}
	// Other slots are unaffected.
	if mustProbe(t)(SessionComboExists(gdb, 2, nil, 0)) {
		t.Fatal("undated session leaked into another slot")
	}
	// Updating the draft itself skips its own row.
	if mustProbe(t)(SessionComboExists(gdb, 1, nil, draft.ID)) {
		t.Fatal("draft collided with itself on update")
	}
}

func TestSessionComboExistsDated(t *testing.T) {
	gdb := openTestDB(t)

	dated := models.ScheduleSession{
		SectionSubjectScheduleID: 1,
		FacultyID:                1,
		RoomID:                   1,
		StartDate:                strptr("2026-03-02"),
		EndDate:                  strptr("2026-03-02"),
		StartTime:                "08:00:00",
		EndTime:                  "10:00:00",
	}
	if err := gdb.Create(&dated).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}

	if !mustProbe(t)(SessionComboExists(gdb, 1, strptr("2026-03-02"), 0)) {
		t.Fatal("same slot and date must collide")
	}
	if mustProbe(t)(SessionComboExists(gdb, 1, strptr("2026-03-03"), 0)) {
		t.Fatal("different date collided")
	}
	if mustProbe(t)(SessionComboExists(gdb, 1, nil, 0)) {
		t.Fatal("NULL probe collided with a dated session")
	}
}

func TestAttendanceComboExists(t *testing.T) {
	gdb := openTestDB(t)

	row := models.ScheduleAttendance{
		ScheduleSessionID: 1,
		StudentID:         2,
		DateIn:            strptr("2026-03-02"),
		Status:            models.AttendancePresent,
	}
	if err := gdb.Create(&row).Error; err != nil {
		t.Fatalf("create attendance: %v", err)
	}

	if !mustProbe(t)(AttendanceComboExists(gdb, 1, 2, strptr("2026-03-02"), 0)) {
		t.Fatal("identical (session, student, date_in) triple must collide")
	}
	if mustProbe(t)(AttendanceComboExists(gdb, 1, 2, strptr("2026-03-03"), 0)) {
		t.Fatal("different date_in collided")
	}
	if mustProbe(t)(AttendanceComboExists(gdb, 1, 3, strptr("2026-03-02"), 0)) {
		t.Fatal("different student collided")
	}
	if mustProbe(t)(AttendanceComboExists(gdb, 1, 2, nil, 0)) {
		t.Fatal("NULL date_in collided with a dated record")
	}
	if mustProbe(t)(AttendanceComboExists(gdb, 1, 2, strptr("2026-03-02"), row.ID)) {
		t.Fatal("record collided with itself on update")
	}
}

func TestAttendanceComboExistsNullBucket(t *testing.T) {
	gdb := openTestDB(t)

	undated := models.ScheduleAttendance{
		ScheduleSessionID: 1,
		StudentID:         2,
		Status:            models.AttendanceAbsent,
	}
	if err := gdb.Create(&undated).Error; err != nil {
		t.Fatalf("create undated attendance: %v", err)
	}

	if !mustProbe(t)(AttendanceComboExists(gdb, 1, 2, nil, 0)) {
		t.Fatal("two undated records for the same student must collide")
	}
	if mustProbe(t)(AttendanceComboExists(gdb, 1, 2, strptr("2026-03-02"), 0)) {
		t.Fatal("dated record collided with the undated one")
	}
}
