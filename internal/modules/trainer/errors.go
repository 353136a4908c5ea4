package trainer

import "errors"

var (
	ErrNotFound     = errors.New("trainer not found")
	ErrNoProfile    = errors.New("no trainer profile for this account")
	ErrUserAssigned = errors.New("user already has a trainer profile")
	ErrUserNotFound = errors.New("user not found")
	ErrNotTrainer   = errors.New("user does not have the trainer role")
)
