package models

import "time"

type Subject struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"uniqueIndex;not null" json:"code"`
	Name string `gorm:"not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Section struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	Year int    `json:"year"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SectionSubject assigns a faculty member to teach a subject for a section.
// (section, subject, faculty) is unique.
type SectionSubject struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	SectionID uint `gorm:"not null;index:idx_section_subject_faculty,unique" json:"section_id"`
	SubjectID uint `gorm:"not null;index:idx_section_subject_faculty,unique" json:"subject_id"`
	FacultyID uint `gorm:"not null;index:idx_section_subject_faculty,unique" json:"faculty_id"`

	Section Section `gorm:"constraint:OnDelete:CASCADE;" json:"section,omitempty"`
	Subject Subject `gorm:"constraint:OnDelete:CASCADE;" json:"subject,omitempty"`
	Faculty User    `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SectionSubjectStudent enrolls a student into a SectionSubject.
type SectionSubjectStudent struct {
	ID               uint `gorm:"primaryKey" json:"id"`
	SectionSubjectID uint `gorm:"not null;index:idx_section_subject_student,unique" json:"section_subject_id"`
	StudentID        uint `gorm:"not null;index:idx_section_subject_student,unique" json:"student_id"`

	SectionSubject SectionSubject `gorm:"constraint:OnDelete:CASCADE;" json:"section_subject,omitempty"`
	Student        User           `gorm:"foreignKey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
