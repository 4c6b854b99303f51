package cleaning

import (
	"time"

	"github.com/yeremiapane/rental-backoffice/models"
)

type BookingView struct {
	models.Booking
	Cleaning StatusView `json:"cleaning"`
}

// Board is every derived view for one snapshot of bookings and cleaners.
type Board struct {
	Bookings     []BookingView         `json:"bookings"`
	Cleaners     []models.Employee     `json:"cleaners"`
	Availability AvailabilityIndex     `json:"availability"`
	Queue        []models.Booking      `json:"queue"`
	Next         *models.Booking       `json:"next"`
	Summary      map[DisplayStatus]int `json:"summary"`
	RefreshedAt  time.Time             `json:"refreshed_at"`
}

func BuildBoard(bookings []models.Booking, cleaners []models.Employee, now time.Time) Board {
	views := make([]BookingView, 0, len(bookings))
	summary := map[DisplayStatus]int{
		StatusUnassigned: 0,
		StatusAssigned:   0,
		StatusInProgress: 0,
		StatusCompleted:  0,
	}
	for _, b := range bookings {
		view := ClassifyBooking(b)
		summary[view.Status]++
		views = append(views, BookingView{Booking: b, Cleaning: view})
	}

	queue := BuildQueue(bookings)
	return Board{
		Bookings:     views,
		Cleaners:     cleaners,
		Availability: BuildAvailability(bookings, cleaners, now),
		Queue:        queue,
		Next:         QueueHead(queue),
		Summary:      summary,
		RefreshedAt:  now,
	}
}
