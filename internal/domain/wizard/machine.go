package wizard

import (
	"github.com/festhub/festival-api/internal/domain/booking"
)

// SubmissionState is the confirmation step's sub-state.
type SubmissionState string

const (
	SubmissionNone    SubmissionState = ""
	SubmissionPending SubmissionState = "pending"
	SubmissionSuccess SubmissionState = "success"
	SubmissionError   SubmissionState = "error"
)

// Machine is the booking form state machine: the current step, the draft
// being edited, the per-field validation map and the submission outcome.
// It is persisted after every mutation and restored on session resume.
type Machine struct {
	Draft        *booking.Booking
	ActiveStep   Step
	Validation   map[string]string
	CurrentError string
	Submission   SubmissionState
}

// NewMachine returns a machine at the first step with an empty draft.
func NewMachine() *Machine {
	return &Machine{
		Draft:      booking.NewDraft(),
		ActiveStep: StepPersonal,
		Validation: make(map[string]string),
	}
}

// UpdateField mutates one draft field, re-validates it and clears a
// previously surfaced blocking error for it.
func (m *Machine) UpdateField(key string, value any) error {
	if err := booking.ApplyField(m.Draft, key, value); err != nil {
		return err
	}
	if msg := booking.Validate(key, m.Draft.Field(key)); msg != "" {
		m.Validation[key] = msg
	} else {
		delete(m.Validation, key)
		if m.CurrentError != "" {
			m.CurrentError = ""
		}
	}
	return nil
}

// Next validates every required field of the current step. If all pass the
// machine advances one step and reports true; otherwise it stays, surfaces
// the first error and reports false. The confirmation step is terminal.
func (m *Machine) Next() bool {
	for _, field := range RequiredFields(m.ActiveStep) {
		if msg := booking.Validate(field, m.Draft.Field(field)); msg != "" {
			m.Validation[field] = msg
			m.CurrentError = msg
			return false
		}
	}
	if m.ActiveStep >= LastStep {
		return false
	}
	m.ActiveStep++
	m.CurrentError = ""
	return true
}

// Previous steps back without validation, a no-op at the first step.
func (m *Machine) Previous() bool {
	if m.ActiveStep <= StepPersonal {
		return false
	}
	m.ActiveStep--
	return true
}

// AssignPriority promotes a timeslot to the given rank, displacing the slot
// from any other rank it held, then re-validates the three priority fields.
func (m *Machine) AssignPriority(rank, slotID int) error {
	if err := booking.AssignPriority(m.Draft, rank, slotID); err != nil {
		return err
	}
	m.revalidatePriorities()
	return nil
}

// ClearPriority resets the given rank.
func (m *Machine) ClearPriority(rank int) error {
	if err := booking.ClearPriority(m.Draft, rank); err != nil {
		return err
	}
	m.revalidatePriorities()
	return nil
}

func (m *Machine) revalidatePriorities() {
	for _, field := range []string{
		booking.FieldTimeslotPriority1,
		booking.FieldTimeslotPriority2,
		booking.FieldTimeslotPriority3,
	} {
		if msg := booking.Validate(field, m.Draft.Field(field)); msg != "" {
			m.Validation[field] = msg
		} else {
			delete(m.Validation, field)
		}
	}
}
