package models

import "time"

type Room struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	Building string `json:"building"`
	Floor    int    `json:"floor"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeviceBoard is an ESP32-class lock controller mounted at a room. It
// authenticates with its Token and reports liveness over /device/heartbeat.
type DeviceBoard struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"not null" json:"name"`
	RoomID     uint       `gorm:"not null;index" json:"room_id"`
	Token      string     `gorm:"uniqueIndex;not null" json:"-"`
	LastSeenAt *time.Time `json:"last_seen_at"`

	Room Room `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"room,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AccessLog struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	DeviceID     uint   `gorm:"not null;index" json:"device_id"`
	RoomID       uint   `gorm:"not null;index" json:"room_id"`
	UserID       *uint  `gorm:"index" json:"user_id"`
	CredentialID *uint  `json:"credential_id"`
	Granted      bool   `gorm:"not null" json:"granted"`
	Reason       string `json:"reason"`

	Device DeviceBoard `gorm:"constraint:OnDelete:CASCADE;" json:"device,omitempty"`
	Room   Room        `json:"room,omitempty"`
	User   *User       `json:"user,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
