package schedule

import "errors"

var (
	ErrNotFound        = errors.New("schedule not found")
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrInvalidRange    = errors.New("invalid time range")
	ErrInPast          = errors.New("class starts in the past")
	ErrHasBookings     = errors.New("class has live bookings")
)
