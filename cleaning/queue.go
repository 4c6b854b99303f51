package cleaning

import (
	"sort"
	"strings"

	"github.com/yeremiapane/rental-backoffice/models"
)

// IsQueueable reports whether a booking is waiting for a cleaner: pending (or
// no status at all) and nobody assigned.
func IsQueueable(b models.Booking) bool {
	status := b.CleaningStatus
	return (status == "" || status == models.CleaningStatusPending) && !hasCleaner(b.AssignedCleanerID)
}

// CheckoutKey is the sort key of the queue. It is compared as plain text, so
// only zero-padded YYYY-MM-DD dates and HH:MM times order chronologically.
func CheckoutKey(b models.Booking) string {
	return strings.TrimSpace(b.CheckOutDate + " " + b.CheckOutTime)
}

// BuildQueue returns the queueable bookings ordered by CheckoutKey. The
// input slice is not modified; ties keep their input order.
func BuildQueue(bookings []models.Booking) []models.Booking {
	queue := make([]models.Booking, 0)
	for _, b := range bookings {
		if IsQueueable(b) {
			queue = append(queue, b)
		}
	}
	sort.SliceStable(queue, func(i, j int) bool {
		return CheckoutKey(queue[i]) < CheckoutKey(queue[j])
	})
	return queue
}

// QueueHead is the next room offered to operators, or nil.
func QueueHead(queue []models.Booking) *models.Booking {
	if len(queue) == 0 {
		return nil
	}
	head := queue[0]
	return &head
}
