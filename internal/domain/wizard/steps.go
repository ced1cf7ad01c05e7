package wizard

import "github.com/festhub/festival-api/internal/domain/booking"

// Step is one screen of the booking wizard, in fixed order.
type Step int

const (
	StepPersonal Step = iota
	StepTicket
	StepBeverage
	StepFood
	StepWorkShift
	StepMaterials
	StepAwareness
	StepSignature
	StepSummary
	StepConfirmation
)

var stepNames = [...]string{
	"personal",
	"ticket",
	"beverage",
	"food",
	"workshift",
	"materials",
	"awareness",
	"signature",
	"summary",
	"confirmation",
}

// String returns the step's wire name.
func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "unknown"
	}
	return stepNames[s]
}

// LastStep is the terminal confirmation step.
const LastStep = StepConfirmation

// requiredFields lists the fields that must validate clean before leaving a
// step. Steps without an entry advance unconditionally (beverage, food and
// materials are optional; awareness is an acknowledgment screen without
// draft fields).
var requiredFields = map[Step][]string{
	StepPersonal: {
		booking.FieldFirstName,
		booking.FieldLastName,
		booking.FieldEmail,
		booking.FieldPhone,
	},
	StepTicket: {
		booking.FieldTicketID,
	},
	StepWorkShift: {
		booking.FieldTimeslotPriority1,
		booking.FieldTimeslotPriority2,
		booking.FieldTimeslotPriority3,
		booking.FieldSupporterBuddy,
	},
	StepSignature: {
		booking.FieldSignature,
	},
}

// RequiredFields returns the blocking fields of a step.
func RequiredFields(s Step) []string {
	return requiredFields[s]
}
