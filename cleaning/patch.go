package cleaning

import (
	"time"

	"github.com/yeremiapane/rental-backoffice/models"
)

// AssignmentPatch is the whole write performed when a cleaner is assigned.
// It never depends on the booking's previous state.
type AssignmentPatch struct {
	CleaningStatus    string     `json:"cleaning_status"`
	AssignedCleanerID string     `json:"assigned_cleaner_id"`
	CleaningTimeIn    time.Time  `json:"cleaning_time_in"`
	CleaningTimeOut   *time.Time `json:"cleaning_time_out"`
}

func NewAssignmentPatch(cleanerID string, now time.Time) AssignmentPatch {
	return AssignmentPatch{
		CleaningStatus:    models.CleaningStatusInProgress,
		AssignedCleanerID: cleanerID,
		CleaningTimeIn:    now.UTC(),
		CleaningTimeOut:   nil,
	}
}

// Columns renders the patch as a gorm update map. A nil time is written as NULL.
func (p AssignmentPatch) Columns() map[string]interface{} {
	return map[string]interface{}{
		"cleaning_status":     p.CleaningStatus,
		"assigned_cleaner_id": p.AssignedCleanerID,
		"cleaning_time_in":    p.CleaningTimeIn,
		"cleaning_time_out":   nil,
	}
}

// Apply copies the patch onto an in-memory booking, mirroring what the update wrote.
func (p AssignmentPatch) Apply(b *models.Booking) {
	cleanerID := p.AssignedCleanerID
	timeIn := p.CleaningTimeIn
	b.CleaningStatus = p.CleaningStatus
	b.AssignedCleanerID = &cleanerID
	b.CleaningTimeIn = &timeIn
	b.CleaningTimeOut = nil
}
