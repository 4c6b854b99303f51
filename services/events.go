package services

import (
	"context"
	"errors"
)

// Event names shared by the websocket hub and the message broker.
const (
	EventBoardUpdate     = "board_update"
	EventCleanerAssigned = "cleaner_assigned"
	EventStaffNotif      = "staff_notification"
)

type EventPublisher interface {
	Publish(ctx context.Context, event string, payload interface{}) error
}

// MultiPublisher sends every event to each publisher and joins their errors.
type MultiPublisher []EventPublisher

func (m MultiPublisher) Publish(ctx context.Context, event string, payload interface{}) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// AssignmentEvent is the payload of EventCleanerAssigned.
type AssignmentEvent struct {
	BookingID string `json:"booking_id"`
	CleanerID string `json:"cleaner_id"`
	RoomName  string `json:"room_name"`
}
