package booking

import "errors"

var (
	ErrNotFound                = errors.New("booking not found")
	ErrScheduleNotFound        = errors.New("schedule not found")
	ErrNoMemberProfile         = errors.New("no member profile for this account")
	ErrMemberInactive          = errors.New("member is not active")
	ErrClassStarted            = errors.New("class already started")
	ErrAlreadyBooked           = errors.New("already booked")
	ErrClassFull               = errors.New("class is full")
	ErrClassLimitReached       = errors.New("monthly class limit reached")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrForbidden               = errors.New("booking belongs to another member")
)
