package registration

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubmittedResponse acknowledges a stored booking.
type SubmittedResponse struct {
	BookingID uuid.UUID `json:"booking_id"`
}

// UpdatePaymentRequest updates the payment bookkeeping of a booking.
type UpdatePaymentRequest struct {
	IsPaid       bool            `json:"is_paid"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	PaymentNotes string          `json:"payment_notes,omitempty" validate:"omitempty,max=1000"`
	PaymentDate  string          `json:"payment_date,omitempty"` // RFC3339
}
