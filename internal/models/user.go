package models

import "time"

const (
	RoleAdmin   = "ADMIN"
	RoleFaculty = "FACULTY"
	RoleStudent = "STUDENT"
)

const (
	CredentialRFID        = "RFID"
	CredentialFingerprint = "FINGERPRINT"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `gorm:"not null" json:"first_name"`
	LastName     string `gorm:"not null" json:"last_name"`
	Role         string `gorm:"not null;index" json:"role"`

	Credentials []Credential `gorm:"foreignKey:UserID" json:"credentials,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Credential is an enrolled RFID card or fingerprint template reference.
// Value is the card UID or the template slot reported by the device board.
type Credential struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Type   string `gorm:"not null" json:"type"`
	Value  string `gorm:"uniqueIndex;not null" json:"value"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
