package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// None is the sentinel for "nothing selected" in every integer selection
// field (ticket, beverage, food, timeslot priorities).
const None = -1

// Booking is the registration draft a single participant fills out across
// the wizard steps. It is owned by one wizard session, persisted after
// every mutation and discarded on successful submission.
type Booking struct {
	// Identity
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`
	Phone     string `json:"phone" db:"phone"`

	// Selections, None when unselected
	TicketID   int `json:"ticket_id" db:"ticket_id"`
	BeverageID int `json:"beverage_id" db:"beverage_id"`
	FoodID     int `json:"food_id" db:"food_id"`

	// Ranked work-shift preferences, None when unset. No timeslot may hold
	// two ranks at once.
	TimeslotPriority1 int `json:"timeslot_priority_1" db:"timeslot_priority_1"`
	TimeslotPriority2 int `json:"timeslot_priority_2" db:"timeslot_priority_2"`
	TimeslotPriority3 int `json:"timeslot_priority_3" db:"timeslot_priority_3"`

	MaterialIDs    []int  `json:"material_ids"`
	AmountShifts   int    `json:"amount_shifts" db:"amount_shifts"`
	SupporterBuddy string `json:"supporter_buddy" db:"supporter_buddy"`

	// Signature is an opaque image data URL captured on the signature step.
	Signature string `json:"signature" db:"signature"`

	// Derived by the pricing calculator, recomputed authoritatively on
	// submission.
	TotalPrice decimal.Decimal `json:"total_price" db:"total_price"`

	// Payment bookkeeping, maintained by admins after the festival office
	// reconciles transfers.
	IsPaid       bool            `json:"is_paid" db:"is_paid"`
	PaidAmount   decimal.Decimal `json:"paid_amount" db:"paid_amount"`
	PaymentNotes string          `json:"payment_notes" db:"payment_notes"`
	PaymentDate  *time.Time      `json:"payment_date" db:"payment_date"`
}

// NewDraft returns an empty draft: all selections unset, one shift.
func NewDraft() *Booking {
	return &Booking{
		TicketID:          None,
		BeverageID:        None,
		FoodID:            None,
		TimeslotPriority1: None,
		TimeslotPriority2: None,
		TimeslotPriority3: None,
		MaterialIDs:       []int{},
		AmountShifts:      1,
		TotalPrice:        decimal.Zero,
		PaidAmount:        decimal.Zero,
	}
}

// Clone returns a deep copy of the draft.
func (b *Booking) Clone() *Booking {
	c := *b
	c.MaterialIDs = append([]int(nil), b.MaterialIDs...)
	if b.PaymentDate != nil {
		d := *b.PaymentDate
		c.PaymentDate = &d
	}
	return &c
}
