package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/rental-backoffice/cleaning"
	"github.com/yeremiapane/rental-backoffice/models"
	"github.com/yeremiapane/rental-backoffice/utils"
)

// BoardReader is the cached read side AssignNext selects from.
type BoardReader interface {
	Snapshot() (cleaning.Board, bool)
	Refresh(ctx context.Context) error
}

type AssignmentService struct {
	store     AssignmentStore
	board     BoardReader
	publisher EventPublisher
	// Guard rejects a cleaner who already holds an active cleaning.
	Guard bool

	now     func() time.Time
	metrics metricsRecorder
}

func NewAssignmentService(store AssignmentStore, board BoardReader, publisher EventPublisher) *AssignmentService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &AssignmentService{
		store:     store,
		board:     board,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *AssignmentService) Metrics() AssignmentMetrics {
	return s.metrics.snapshot()
}

// Assign puts a cleaner on a booking. The write is a single four-field
// update; nothing is retried or rolled back on failure.
func (s *AssignmentService) Assign(ctx context.Context, bookingID, cleanerID string) (booking *models.Booking, err error) {
	defer s.measure(time.Now(), &err)
	return s.assign(ctx, bookingID, cleanerID)
}

// measure records one outcome per public call.
func (s *AssignmentService) measure(start time.Time, err *error) {
	s.metrics.record(*err, time.Since(start), errors.Is(*err, ErrCleanerBusy))
}

func (s *AssignmentService) assign(ctx context.Context, bookingID, cleanerID string) (booking *models.Booking, err error) {
	cleanerID = strings.TrimSpace(cleanerID)
	if cleanerID == "" {
		return nil, ErrCleanerRequired
	}

	cleaner, err := s.store.GetEmployee(ctx, cleanerID)
	if err != nil {
		return nil, err
	}
	if !cleaning.IsCleaner(*cleaner) {
		return nil, ErrNotCleaner
	}

	booking, err = s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	patch := cleaning.NewAssignmentPatch(cleanerID, s.now())
	if err := s.store.ApplyAssignment(ctx, booking.ID, patch, s.Guard); err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"cleaner_id": cleanerID,
		}).WithError(err).Error("Failed to assign cleaner")
		return nil, fmt.Errorf("assign cleaner: %w", err)
	}
	patch.Apply(booking)

	room := cleaning.RoomNotSpecified
	if booking.RoomName != nil && *booking.RoomName != "" {
		room = *booking.RoomName
	}

	entry := &models.CleaningLog{
		BookingID: booking.ID,
		CleanerID: cleanerID,
		RoomName:  room,
		Action:    "assigned",
	}
	if err := s.store.AppendCleaningLog(ctx, entry); err != nil {
		// the booking row is already written
		utils.ErrorLogger.WithField("booking_id", booking.ID).WithError(err).Error("Failed to append cleaning log")
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"cleaner_id": cleanerID,
		"room":       room,
	}).Info("Cleaner assigned")

	event := AssignmentEvent{BookingID: booking.ID, CleanerID: cleanerID, RoomName: room}
	if err := s.publisher.Publish(ctx, EventCleanerAssigned, event); err != nil {
		utils.ErrorLogger.WithError(err).Error("Failed to publish cleaner_assigned")
	}

	if s.board != nil {
		if err := s.board.Refresh(ctx); err != nil {
			utils.ErrorLogger.WithError(err).Error("Refresh after assignment failed")
		}
	}

	return booking, nil
}

// AssignNext assigns the head of the cached queue. Availability is read from
// the cached board and is not checked again against the database.
func (s *AssignmentService) AssignNext(ctx context.Context, cleanerID string) (booking *models.Booking, err error) {
	defer s.measure(time.Now(), &err)

	cleanerID = strings.TrimSpace(cleanerID)
	if cleanerID == "" {
		return nil, ErrCleanerRequired
	}
	if s.board == nil {
		return nil, ErrBoardUnavailable
	}

	board, ok := s.board.Snapshot()
	if !ok {
		if err := s.board.Refresh(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBoardUnavailable, err)
		}
		if board, ok = s.board.Snapshot(); !ok {
			return nil, ErrBoardUnavailable
		}
	}

	if board.Next == nil {
		return nil, ErrQueueEmpty
	}
	if _, known := board.Availability[cleanerID]; !known {
		return nil, ErrCleanerNotFound
	}
	if !board.Availability.IsAvailable(cleanerID) {
		return nil, ErrCleanerBusy
	}

	return s.assign(ctx, board.Next.ID, cleanerID)
}
