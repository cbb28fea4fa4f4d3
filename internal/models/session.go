package models

import "time"

const (
	AttendancePresent = "PRESENT"
	AttendanceLate    = "LATE"
	AttendanceAbsent  = "ABSENT"
)

// ScheduleSession is one dated occurrence of a SectionSubjectSchedule.
// A NULL StartDate is allowed (session drafted before it is pinned to a
// date) and forms its own uniqueness bucket per parent slot.
type ScheduleSession struct {
	ID                       uint    `gorm:"primaryKey" json:"id"`
	SectionSubjectScheduleID uint    `gorm:"not null;index" json:"section_subject_schedule_id"`
	FacultyID                uint    `gorm:"not null;index" json:"faculty_id"`
	RoomID                   uint    `gorm:"not null;index" json:"room_id"`
	StartDate                *string `gorm:"type:date" json:"start_date"`
	EndDate                  *string `gorm:"type:date" json:"end_date"`
	StartTime                string  `gorm:"type:time;not null" json:"start_time"`
	EndTime                  string  `gorm:"type:time;not null" json:"end_time"`

	SectionSubjectSchedule SectionSubjectSchedule `gorm:"constraint:OnDelete:CASCADE;" json:"section_subject_schedule,omitempty"`
	Faculty                User                   `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
	Room                   Room                   `json:"room,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScheduleAttendance is a student's check-in/out against a session.
// (session, student, date_in) is unique, with NULL date_in as one bucket.
type ScheduleAttendance struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	ScheduleSessionID uint    `gorm:"not null;index" json:"schedule_session_id"`
	StudentID         uint    `gorm:"not null;index" json:"student_id"`
	DateIn            *string `gorm:"type:date" json:"date_in"`
	TimeIn            *string `gorm:"type:time" json:"time_in"`
	DateOut           *string `gorm:"type:date" json:"date_out"`
	TimeOut           *string `gorm:"type:time" json:"time_out"`
	Status            string  `gorm:"not null" json:"status"`

	ScheduleSession ScheduleSession `gorm:"constraint:OnDelete:CASCADE;" json:"schedule_session,omitempty"`
	Student         User            `gorm:"foreignKey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
