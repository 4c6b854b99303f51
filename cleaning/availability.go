package cleaning

import (
	"fmt"
	"time"

	"github.com/yeremiapane/rental-backoffice/models"
)

type Availability string

const (
	Available Availability = "Available"
	Cleaning  Availability = "Cleaning"
)

// RoomNotSpecified replaces a missing room name on an active cleaning.
const RoomNotSpecified = "Not specified"

type AvailabilityEntry struct {
	Status    Availability `json:"status"`
	Room      *string      `json:"room,omitempty"`
	StartedAt *time.Time   `json:"started_at,omitempty"`
	Elapsed   string       `json:"elapsed,omitempty"`
}

// AvailabilityIndex is keyed by cleaner id.
type AvailabilityIndex map[string]AvailabilityEntry

// BuildAvailability marks every cleaner Available, then overwrites the entry
// of each cleaner referenced by an active cleaning. Bookings are scanned once
// in slice order, so when one cleaner holds several active cleanings the last
// one wins. now only feeds the Elapsed readout.
func BuildAvailability(bookings []models.Booking, cleaners []models.Employee, now time.Time) AvailabilityIndex {
	index := make(AvailabilityIndex, len(cleaners))
	for _, c := range cleaners {
		index[c.ID] = AvailabilityEntry{Status: Available}
	}

	for _, b := range bookings {
		if !IsActiveCleaning(b) {
			continue
		}
		room := RoomNotSpecified
		if b.RoomName != nil {
			room = *b.RoomName
		}
		entry := AvailabilityEntry{Status: Cleaning, Room: &room}
		if b.CleaningTimeIn != nil {
			started := *b.CleaningTimeIn
			entry.StartedAt = &started
			entry.Elapsed = FormatElapsed(now.Sub(started))
		}
		index[*b.AssignedCleanerID] = entry
	}
	return index
}

// IsAvailable treats a cleaner missing from the index as not available.
func (idx AvailabilityIndex) IsAvailable(cleanerID string) bool {
	entry, ok := idx[cleanerID]
	return ok && entry.Status == Available
}

// FormatElapsed renders d as H:MM:SS, or MM:SS when under an hour.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h == 0 {
		return fmt.Sprintf("%02d:%02d", m, s)
	}
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
