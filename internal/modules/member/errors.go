package member

import "errors"

var (
	ErrNotFound               = errors.New("member not found")
	ErrEmailTaken             = errors.New("email already used by another member")
	ErrMembershipTypeNotFound = errors.New("membership type not found")
	ErrNoProfile              = errors.New("no member profile for this account")
)
