package models

import "time"

// Days of week as stored on schedules. Uppercase English names on the wire.
const (
	Sunday    = "SUNDAY"
	Monday    = "MONDAY"
	Tuesday   = "TUESDAY"
	Wednesday = "WEDNESDAY"
	Thursday  = "THURSDAY"
	Friday    = "FRIDAY"
	Saturday  = "SATURDAY"
)

var DaysOfWeek = []string{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Schedule is a weekly recurring slot assignment for a user (faculty or
// student) in a room. (user, day, room, subject) is unique; the concrete
// time windows live in SchedulePeriod rows.
type Schedule struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"not null;index:idx_schedule_combo,unique" json:"user_id"`
	DayOfWeek string `gorm:"not null;index:idx_schedule_combo,unique" json:"day_of_week"`
	RoomID    uint   `gorm:"not null;index:idx_schedule_combo,unique" json:"room_id"`
	SubjectID uint   `gorm:"not null;index:idx_schedule_combo,unique" json:"subject_id"`

	User    User             `json:"user,omitempty"`
	Room    Room             `json:"room,omitempty"`
	Subject Subject          `json:"subject,omitempty"`
	Periods []SchedulePeriod `gorm:"foreignKey:ScheduleID" json:"periods,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SchedulePeriod is a concrete HH:MM:SS window inside its Schedule's day.
// Periods in the same room on the same day must not overlap.
type SchedulePeriod struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ScheduleID uint   `gorm:"not null;index" json:"schedule_id"`
	StartTime  string `gorm:"type:time;not null" json:"start_time"`
	EndTime    string `gorm:"type:time;not null" json:"end_time"`

	Schedule Schedule `gorm:"constraint:OnDelete:CASCADE;" json:"schedule,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SectionSubjectSchedule is the weekly meeting slot of a SectionSubject.
// The exact (section_subject, day, room, start, end) tuple is unique and
// the room+day window must not overlap other slots.
type SectionSubjectSchedule struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	SectionSubjectID uint   `gorm:"not null;index" json:"section_subject_id"`
	DayOfWeek        string `gorm:"not null" json:"day_of_week"`
	RoomID           uint   `gorm:"not null;index" json:"room_id"`
	StartTime        string `gorm:"type:time;not null" json:"start_time"`
	EndTime          string `gorm:"type:time;not null" json:"end_time"`

	SectionSubject SectionSubject `gorm:"constraint:OnDelete:CASCADE;" json:"section_subject,omitempty"`
	Room           Room           `json:"room,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentSchedule links a student to a schedule and one of its periods.
type StudentSchedule struct {
	ID               uint `gorm:"primaryKey" json:"id"`
	StudentID        uint `gorm:"not null;index:idx_student_schedule,unique" json:"student_id"`
	SubjectID        uint `gorm:"not null;index:idx_student_schedule,unique" json:"subject_id"`
	ScheduleID       uint `gorm:"not null;index:idx_student_schedule,unique" json:"schedule_id"`
	SchedulePeriodID uint `gorm:"not null;index:idx_student_schedule,unique" json:"schedule_period_id"`

	Student        User           `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Subject        Subject        `json:"subject,omitempty"`
	Schedule       Schedule       `gorm:"constraint:OnDelete:CASCADE;" json:"schedule,omitempty"`
	SchedulePeriod SchedulePeriod `gorm:"constraint:OnDelete:CASCADE;" json:"schedule_period,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
