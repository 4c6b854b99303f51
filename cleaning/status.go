// Package cleaning derives the cleaning board (status badges, cleaner
// availability and the next-room queue) from a snapshot of bookings.
// Everything here is a pure function of its inputs.
package cleaning

import "github.com/yeremiapane/rental-backoffice/models"

type DisplayStatus string

const (
	StatusUnassigned DisplayStatus = "Unassigned"
	StatusAssigned   DisplayStatus = "Assigned"
	StatusInProgress DisplayStatus = "In Progress"
	StatusCompleted  DisplayStatus = "Completed"
)

type ColorToken string

const (
	ColorGray   ColorToken = "gray"
	ColorBlue   ColorToken = "blue"
	ColorYellow ColorToken = "yellow"
	ColorGreen  ColorToken = "green"
)

type StatusView struct {
	Status DisplayStatus `json:"status"`
	Color  ColorToken    `json:"color"`
}

// Classify maps a booking's raw cleaning status and assigned cleaner to the
// badge shown to operators. Rules are checked in order; anything unknown is
// Unassigned.
func Classify(cleaningStatus string, assignedCleanerID *string) StatusView {
	switch {
	case cleaningStatus == models.CleaningStatusPending && hasCleaner(assignedCleanerID):
		return StatusView{Status: StatusAssigned, Color: ColorBlue}
	case cleaningStatus == models.CleaningStatusInProgress:
		return StatusView{Status: StatusInProgress, Color: ColorYellow}
	case cleaningStatus == models.CleaningStatusCleaned || cleaningStatus == models.CleaningStatusInspected:
		return StatusView{Status: StatusCompleted, Color: ColorGreen}
	default:
		return StatusView{Status: StatusUnassigned, Color: ColorGray}
	}
}

// ClassifyBooking is Classify applied to a booking row.
func ClassifyBooking(b models.Booking) StatusView {
	return Classify(b.CleaningStatus, b.AssignedCleanerID)
}

// IsActiveCleaning reports whether the booking is the one shape that marks
// its cleaner busy: assigned, in-progress and not yet timed out. A pending
// booking with a cleaner ("Assigned") does not count.
func IsActiveCleaning(b models.Booking) bool {
	return hasCleaner(b.AssignedCleanerID) &&
		b.CleaningStatus == models.CleaningStatusInProgress &&
		b.CleaningTimeOut == nil
}

func hasCleaner(id *string) bool {
	return id != nil && *id != ""
}
