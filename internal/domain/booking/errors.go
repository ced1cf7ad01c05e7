package booking

import "errors"

var (
	ErrUnknownField      = errors.New("unknown booking field")
	ErrInvalidFieldValue = errors.New("invalid value for booking field")
	ErrInvalidRank       = errors.New("priority rank must be between 1 and 3")
	ErrInvalidSlot       = errors.New("timeslot id must be non-negative")
)
