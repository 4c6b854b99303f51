package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/rental-backoffice/cleaning"
	"github.com/yeremiapane/rental-backoffice/models"
	"github.com/yeremiapane/rental-backoffice/utils"
	"gorm.io/gorm"
)

const staleCleaningTitle = "Cleaning overdue"

// StaleCleaningJob flags active cleanings that have run longer than After.
// Each cleaning session is flagged at most once.
type StaleCleaningJob struct {
	DB     *gorm.DB
	After  time.Duration
	Notify func(models.Notification)
	now    func() time.Time
}

func NewStaleCleaningJob(db *gorm.DB, after time.Duration, notify func(models.Notification)) *StaleCleaningJob {
	return &StaleCleaningJob{DB: db, After: after, Notify: notify, now: time.Now}
}

// Run performs one sweep and returns how many notifications it created.
func (j *StaleCleaningJob) Run(ctx context.Context) (int, error) {
	cutoff := j.now().Add(-j.After).UTC()

	var bookings []models.Booking
	err := j.DB.WithContext(ctx).
		Where("cleaning_status = ? AND assigned_cleaner_id IS NOT NULL AND cleaning_time_out IS NULL", models.CleaningStatusInProgress).
		Where("cleaning_time_in IS NOT NULL AND cleaning_time_in <= ?", cutoff).
		Find(&bookings).Error
	if err != nil {
		return 0, err
	}

	created := 0
	for _, b := range bookings {
		if !cleaning.IsActiveCleaning(b) {
			continue
		}

		var existing int64
		if err := j.DB.WithContext(ctx).Model(&models.Notification{}).
			Where("booking_id = ? AND title = ? AND created_at >= ?", b.ID, staleCleaningTitle, *b.CleaningTimeIn).
			Count(&existing).Error; err != nil {
			return created, err
		}
		if existing > 0 {
			continue
		}

		room := cleaning.RoomNotSpecified
		if b.RoomName != nil {
			room = *b.RoomName
		}
		title := staleCleaningTitle
		bookingID := b.ID
		notif := models.Notification{
			EmployeeID: b.AssignedCleanerID,
			BookingID:  &bookingID,
			Title:      &title,
			Message: fmt.Sprintf("%s has been in cleaning for %s",
				room, cleaning.FormatElapsed(j.now().Sub(*b.CleaningTimeIn))),
		}
		if err := j.DB.WithContext(ctx).Create(&notif).Error; err != nil {
			return created, err
		}
		created++

		utils.InfoLogger.WithFields(logrus.Fields{
			"booking_id": b.ID,
			"cleaner_id": *b.AssignedCleanerID,
		}).Info("Stale cleaning flagged")

		if j.Notify != nil {
			j.Notify(notif)
		}
	}
	return created, nil
}
