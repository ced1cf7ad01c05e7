// Package queue defines message payloads exchanged over the message broker.
package queue

import "github.com/shopspring/decimal"

// BookingSubmittedEvent is published when a registration is successfully
// stored. Downstream consumers (mail, accounting) act on it without querying
// the primary database.
type BookingSubmittedEvent struct {
	BookingID     string          `json:"booking_id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Email         string          `json:"email"`
	TicketID      int             `json:"ticket_id"`
	AmountShifts  int             `json:"amount_shifts"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	SubmittedAt   string          `json:"submitted_at"`
	SignatureURL  string          `json:"signature_url,omitempty"`
	PriorityOrder []int           `json:"priority_order"`
}
