package registration

import "errors"

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrIncompleteBooking   = errors.New("booking has missing or invalid fields")
	ErrDuplicatePriorities = errors.New("a timeslot is referenced by more than one priority")
	ErrInvalidPaymentDate  = errors.New("invalid payment date")
)
