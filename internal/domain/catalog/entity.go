package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketOption is a purchasable ticket tier.
type TicketOption struct {
	ID        int             `json:"id" db:"id"`
	Title     string          `json:"title" db:"title"`
	Price     decimal.Decimal `json:"price" db:"price"`
	NumBooked int             `json:"num_booked" db:"num_booked"`
}

// BeverageOption is an optional beverage flatrate.
type BeverageOption struct {
	ID    int             `json:"id" db:"id"`
	Title string          `json:"title" db:"title"`
	Price decimal.Decimal `json:"price" db:"price"`
}

// FoodOption is an optional food flatrate.
type FoodOption struct {
	ID    int             `json:"id" db:"id"`
	Title string          `json:"title" db:"title"`
	Price decimal.Decimal `json:"price" db:"price"`
}

// TimeSlot is one shift slot inside a work shift. Capacity is a soft cap:
// a full slot is flagged but selecting it is still allowed, the server-side
// assignment is the authoritative gate.
type TimeSlot struct {
	ID        int       `json:"id" db:"id"`
	ShiftID   int       `json:"-" db:"workshift_id"`
	Title     string    `json:"title" db:"title"`
	StartTime time.Time `json:"start_time" db:"start_time"`
	EndTime   time.Time `json:"end_time" db:"end_time"`
	NumBooked int       `json:"num_booked" db:"num_booked"`
	NumNeeded int       `json:"num_needed" db:"num_needed"`
}

// IsFull reports whether the slot has reached its needed headcount.
func (t TimeSlot) IsFull() bool {
	return t.NumBooked >= t.NumNeeded
}

// WorkShift groups ordered timeslots under one task.
type WorkShift struct {
	ID          int        `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	TimeSlots   []TimeSlot `json:"time_slots"`
}

// Material is borrowable festival material with capacity counters.
type Material struct {
	ID        int    `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	NumBooked int    `json:"num_booked" db:"num_booked"`
	NumNeeded int    `json:"num_needed" db:"num_needed"`
}

// Profession is a self-declared skill used by shift planning.
type Profession struct {
	ID    int    `json:"id" db:"id"`
	Title string `json:"title" db:"title"`
}

// FormContent is the read-only reference data the booking form renders:
// every selectable option plus live capacity counters.
type FormContent struct {
	Tickets     []TicketOption   `json:"tickets"`
	Beverages   []BeverageOption `json:"beverages"`
	Food        []FoodOption     `json:"food"`
	WorkShifts  []WorkShift      `json:"workshifts"`
	Materials   []Material       `json:"materials"`
	Professions []Profession     `json:"professions"`

	// Placeholder marks content that has not been loaded from the server
	// yet. Totals derived from it are not final.
	Placeholder bool `json:"-"`
}

// NewPlaceholder returns the stand-in catalog used before the first
// successful fetch. Prices carry a -1 sentinel so a derived total is
// recognizably non-final.
func NewPlaceholder() *FormContent {
	sentinel := decimal.NewFromInt(-1)
	return &FormContent{
		Tickets:     []TicketOption{{ID: 0, Title: "", Price: sentinel}},
		Beverages:   []BeverageOption{{ID: 0, Title: "", Price: sentinel}},
		Food:        []FoodOption{{ID: 0, Title: "", Price: sentinel}},
		WorkShifts:  []WorkShift{},
		Materials:   []Material{},
		Professions: []Profession{},
		Placeholder: true,
	}
}

// TicketPrice returns the price of the given ticket, zero for the unset
// sentinel (-1) and for unknown IDs.
func (c *FormContent) TicketPrice(id int) decimal.Decimal {
	for _, t := range c.Tickets {
		if t.ID == id {
			return t.Price
		}
	}
	return decimal.Zero
}

// BeveragePrice returns the price of the given beverage option, zero when
// unset or unknown.
func (c *FormContent) BeveragePrice(id int) decimal.Decimal {
	for _, b := range c.Beverages {
		if b.ID == id {
			return b.Price
		}
	}
	return decimal.Zero
}

// FoodPrice returns the price of the given food option, zero when unset or
// unknown.
func (c *FormContent) FoodPrice(id int) decimal.Decimal {
	for _, f := range c.Food {
		if f.ID == id {
			return f.Price
		}
	}
	return decimal.Zero
}

// TimeSlotByID finds a timeslot across all work shifts.
func (c *FormContent) TimeSlotByID(id int) (TimeSlot, bool) {
	for _, ws := range c.WorkShifts {
		for _, ts := range ws.TimeSlots {
			if ts.ID == id {
				return ts, true
			}
		}
	}
	return TimeSlot{}, false
}
