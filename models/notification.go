package models

import (
	"time"
)

type Notification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID *string   `gorm:"type:varchar(36);index" json:"employee_id,omitempty"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"employee,omitempty"`
	BookingID  *string   `gorm:"type:varchar(36);index" json:"booking_id,omitempty"`
	Title      *string   `gorm:"type:varchar(100)" json:"title"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
