package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Raw cleaning_status values as stored on a booking row.
const (
	CleaningStatusPending    = "pending"
	CleaningStatusInProgress = "in-progress"
	CleaningStatusCleaned    = "cleaned"
	CleaningStatusInspected  = "inspected"
)

// Booking status values used by the bookings page filters.
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedIn  = "checked-in"
	BookingStatusCheckedOut = "checked-out"
	BookingStatusCancelled  = "cancelled"
)

// Booking is a guest stay. CheckOutDate and CheckOutTime are kept as the
// strings the front desk entered; the cleaning queue orders on them as text.
type Booking struct {
	ID                string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	BookingID         string     `gorm:"type:varchar(50);index" json:"booking_id"`
	RoomName          *string    `gorm:"type:varchar(100)" json:"room_name"`
	GuestFirstName    string     `gorm:"type:varchar(100)" json:"guest_first_name"`
	GuestLastName     string     `gorm:"type:varchar(100)" json:"guest_last_name"`
	GuestEmail        string     `gorm:"type:varchar(255)" json:"guest_email,omitempty"`
	GuestPhone        string     `gorm:"type:varchar(50)" json:"guest_phone,omitempty"`
	CheckInDate       string     `gorm:"type:varchar(20)" json:"check_in_date"`
	CheckInTime       string     `gorm:"type:varchar(10)" json:"check_in_time"`
	CheckOutDate      string     `gorm:"type:varchar(20);index" json:"check_out_date"`
	CheckOutTime      string     `gorm:"type:varchar(10)" json:"check_out_time"`
	Status            string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount       float64    `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	PaymentMethodID   *string    `gorm:"type:varchar(36)" json:"payment_method_id,omitempty"`
	CleaningStatus    string     `gorm:"type:varchar(20);index" json:"cleaning_status"`
	AssignedCleanerID *string    `gorm:"type:varchar(36);index" json:"assigned_cleaner_id"`
	CleaningTimeIn    *time.Time `json:"cleaning_time_in"`
	CleaningTimeOut   *time.Time `json:"cleaning_time_out"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
