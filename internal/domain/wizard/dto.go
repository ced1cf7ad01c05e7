package wizard

import "github.com/festhub/festival-api/internal/domain/booking"

// StateResponse mirrors what the booking form needs to render: step, draft,
// validation map and the submission sub-state.
type StateResponse struct {
	ActiveStep   int               `json:"active_step"`
	StepName     string            `json:"step_name"`
	Booking      *booking.Booking  `json:"booking"`
	Validation   map[string]string `json:"form_validation"`
	BookingState SubmissionState   `json:"booking_state"`
	CurrentError string            `json:"current_error,omitempty"`
}

// ToStateResponse converts a machine into its wire form.
func ToStateResponse(m *Machine) *StateResponse {
	return &StateResponse{
		ActiveStep:   int(m.ActiveStep),
		StepName:     m.ActiveStep.String(),
		Booking:      m.Draft,
		Validation:   m.Validation,
		BookingState: m.Submission,
		CurrentError: m.CurrentError,
	}
}

// UpdateFieldRequest carries one field edit.
type UpdateFieldRequest struct {
	Value any `json:"value"`
}

// AssignPriorityRequest promotes a timeslot to the rank in the URL.
type AssignPriorityRequest struct {
	TimeslotID int `json:"timeslot_id"`
}

// RankOptionsResponse lists the ranks offerable for one timeslot.
type RankOptionsResponse struct {
	TimeslotID int   `json:"timeslot_id"`
	Ranks      []int `json:"ranks"`
}
