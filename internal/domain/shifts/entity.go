package shifts

import (
	"time"

	"github.com/google/uuid"
)

// Assignment binds a booking to a concrete timeslot.
type Assignment struct {
	ID         uuid.UUID `json:"id" db:"id"`
	BookingID  uuid.UUID `json:"booking_id" db:"booking_id"`
	TimeslotID int       `json:"timeslot_id" db:"timeslot_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// BookingSummary is the per-booking view of the assignment dashboard:
// how many shifts a helper signed up for, how many they already have,
// and which slots they asked for.
type BookingSummary struct {
	BookingID         uuid.UUID `json:"booking_id" db:"booking_id"`
	FirstName         string    `json:"first_name" db:"first_name"`
	LastName          string    `json:"last_name" db:"last_name"`
	Email             string    `json:"email" db:"email"`
	AmountShifts      int       `json:"amount_shifts" db:"amount_shifts"`
	SupporterBuddy    string    `json:"supporter_buddy" db:"supporter_buddy"`
	TimeslotPriority1 int       `json:"timeslot_priority_1" db:"timeslot_priority_1"`
	TimeslotPriority2 int       `json:"timeslot_priority_2" db:"timeslot_priority_2"`
	TimeslotPriority3 int       `json:"timeslot_priority_3" db:"timeslot_priority_3"`
	NumAssigned       int       `json:"num_assigned" db:"num_assigned"`
}

// QuotaMet reports whether the booking already holds as many
// assignments as it signed up for.
func (b *BookingSummary) QuotaMet() bool {
	return b.NumAssigned >= b.AmountShifts
}

// Priorities returns the requested slot IDs in rank order, skipping
// unset entries.
func (b *BookingSummary) Priorities() []int {
	out := make([]int, 0, 3)
	for _, id := range []int{b.TimeslotPriority1, b.TimeslotPriority2, b.TimeslotPriority3} {
		if id > 0 {
			out = append(out, id)
		}
	}
	return out
}

// TimeslotSummary is the per-slot view: capacity against headcount.
type TimeslotSummary struct {
	TimeslotID int    `json:"timeslot_id" db:"timeslot_id"`
	Title      string `json:"title" db:"title"`
	ShiftID    int    `json:"workshift_id" db:"workshift_id"`
	StartTime  string `json:"start_time" db:"start_time"`
	EndTime    string `json:"end_time" db:"end_time"`
	NumNeeded  int    `json:"num_needed" db:"num_needed"`
	NumBooked  int    `json:"num_booked" db:"num_booked"`
}

// Full reports whether the slot reached its headcount.
func (t *TimeslotSummary) Full() bool {
	return t.NumBooked >= t.NumNeeded
}
