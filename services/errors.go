package services

import "errors"

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrCleanerRequired  = errors.New("a cleaner must be selected")
	ErrCleanerNotFound  = errors.New("cleaner not found")
	ErrNotCleaner       = errors.New("employee is not a cleaner")
	ErrQueueEmpty       = errors.New("no room is waiting for cleaning")
	ErrCleanerBusy      = errors.New("cleaner is not available")
	ErrBoardUnavailable = errors.New("cleaning board has not been loaded yet")
)
