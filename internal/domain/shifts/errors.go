package shifts

import "errors"

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrTimeslotNotFound   = errors.New("timeslot not found")
	ErrDuplicate          = errors.New("booking is already assigned to this timeslot")
	ErrQuotaMet           = errors.New("booking already has all requested shifts")
	ErrTimeslotFull       = errors.New("timeslot has no open places")
)
