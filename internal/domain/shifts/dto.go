package shifts

import "github.com/google/uuid"

// CreateAssignmentRequest assigns one booking to one timeslot.
type CreateAssignmentRequest struct {
	BookingID  uuid.UUID `json:"booking_id" validate:"required"`
	TimeslotID int       `json:"timeslot_id" validate:"required,gt=0"`
}

// UpdateAssignmentRequest moves an existing assignment to another slot.
type UpdateAssignmentRequest struct {
	TimeslotID int `json:"timeslot_id" validate:"required,gt=0"`
}

// AutoAssignResponse reports what a dry or committed auto-assignment
// run produced.
type AutoAssignResponse struct {
	Created    []*Assignment `json:"created"`
	NumCreated int           `json:"num_created"`
	Unassigned []uuid.UUID   `json:"unassigned_bookings"`
}
