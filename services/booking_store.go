package services

import (
	"context"
	"errors"

	"github.com/yeremiapane/rental-backoffice/cleaning"
	"github.com/yeremiapane/rental-backoffice/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingSource is what the poller reads on every tick.
type BookingSource interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	ListCleaners(ctx context.Context) ([]models.Employee, error)
}

// AssignmentStore is the write side used by AssignmentService.
type AssignmentStore interface {
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	ApplyAssignment(ctx context.Context, bookingID string, patch cleaning.AssignmentPatch, guarded bool) error
	AppendCleaningLog(ctx context.Context, entry *models.CleaningLog) error
}

type GormBookingStore struct {
	DB *gorm.DB
}

func NewGormBookingStore(db *gorm.DB) *GormBookingStore {
	return &GormBookingStore{DB: db}
}

func (s *GormBookingStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *GormBookingStore) ListCleaners(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.DB.WithContext(ctx).
		Scopes(cleaning.CleanerScope).
		Order("first_name ASC, last_name ASC").
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return cleaning.FilterCleaners(employees), nil
}

func (s *GormBookingStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *GormBookingStore) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	var employee models.Employee
	if err := s.DB.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCleanerNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// ApplyAssignment writes the patch to one booking row. Unguarded, it is a
// single UPDATE and two operators may still give one cleaner two rooms.
// Guarded, the write runs in a transaction that refuses a cleaner who already
// holds another active cleaning.
func (s *GormBookingStore) ApplyAssignment(ctx context.Context, bookingID string, patch cleaning.AssignmentPatch, guarded bool) error {
	if !guarded {
		return updateAssignment(s.DB.WithContext(ctx), bookingID, patch)
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lookup := tx
		// sqlite has no row locks
		if tx.Dialector.Name() != "sqlite" {
			lookup = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var booking models.Booking
		if err := lookup.First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		var active int64
		if err := tx.Model(&models.Booking{}).
			Where("assigned_cleaner_id = ? AND cleaning_status = ? AND cleaning_time_out IS NULL AND id <> ?",
				patch.AssignedCleanerID, models.CleaningStatusInProgress, bookingID).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrCleanerBusy
		}

		return updateAssignment(tx, bookingID, patch)
	})
}

func updateAssignment(db *gorm.DB, bookingID string, patch cleaning.AssignmentPatch) error {
	res := db.Model(&models.Booking{}).Where("id = ?", bookingID).Updates(patch.Columns())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (s *GormBookingStore) AppendCleaningLog(ctx context.Context, entry *models.CleaningLog) error {
	return s.DB.WithContext(ctx).Create(entry).Error
}
