package models

import (
	"time"
)

// CleaningLog is the append-only history of cleaning assignments.
type CleaningLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookingID string    `gorm:"type:varchar(36);not null;index" json:"booking_id"`
	CleanerID string    `gorm:"type:varchar(36);not null;index" json:"cleaner_id"`
	Cleaner   Employee  `gorm:"foreignKey:CleanerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"cleaner"`
	RoomName  string    `gorm:"type:varchar(100)" json:"room_name"`
	Action    string    `gorm:"type:varchar(20);not null;default:'assigned'" json:"action"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
