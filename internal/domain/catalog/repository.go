package catalog

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Repository defines catalog data access. All reads derive live capacity
// counters: num_booked is counted from stored bookings and assignments, it
// is never maintained as a separate counter.
type Repository interface {
	Tickets(ctx context.Context) ([]TicketOption, error)
	Beverages(ctx context.Context) ([]BeverageOption, error)
	Food(ctx context.Context) ([]FoodOption, error)
	WorkShifts(ctx context.Context) ([]WorkShift, error)
	Materials(ctx context.Context) ([]Material, error)
	Professions(ctx context.Context) ([]Profession, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates catalog repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Tickets(ctx context.Context) ([]TicketOption, error) {
	query := `
		SELECT t.id, t.title, t.price, COUNT(b.id) AS num_booked
		FROM tickets t
		LEFT JOIN bookings b ON b.ticket_id = t.id
		GROUP BY t.id, t.title, t.price
		ORDER BY t.id
	`
	var tickets []TicketOption
	if err := r.db.SelectContext(ctx, &tickets, query); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *repository) Beverages(ctx context.Context) ([]BeverageOption, error) {
	query := `SELECT id, title, price FROM beverages ORDER BY id`
	var beverages []BeverageOption
	if err := r.db.SelectContext(ctx, &beverages, query); err != nil {
		return nil, err
	}
	return beverages, nil
}

func (r *repository) Food(ctx context.Context) ([]FoodOption, error) {
	query := `SELECT id, title, price FROM food_options ORDER BY id`
	var food []FoodOption
	if err := r.db.SelectContext(ctx, &food, query); err != nil {
		return nil, err
	}
	return food, nil
}

func (r *repository) WorkShifts(ctx context.Context) ([]WorkShift, error) {
	shiftQuery := `SELECT id, title, description FROM workshifts ORDER BY id`
	var shifts []WorkShift
	if err := r.db.SelectContext(ctx, &shifts, shiftQuery); err != nil {
		return nil, err
	}

	slotQuery := `
		SELECT ts.id, ts.workshift_id, ts.title, ts.start_time, ts.end_time,
		       ts.num_needed, COUNT(sa.id) AS num_booked
		FROM timeslots ts
		LEFT JOIN shift_assignments sa ON sa.timeslot_id = ts.id
		GROUP BY ts.id, ts.workshift_id, ts.title, ts.start_time, ts.end_time, ts.num_needed
		ORDER BY ts.workshift_id, ts.start_time, ts.id
	`
	var slots []TimeSlot
	if err := r.db.SelectContext(ctx, &slots, slotQuery); err != nil {
		return nil, err
	}

	byShift := make(map[int][]TimeSlot, len(shifts))
	for _, slot := range slots {
		byShift[slot.ShiftID] = append(byShift[slot.ShiftID], slot)
	}
	for i := range shifts {
		shifts[i].TimeSlots = byShift[shifts[i].ID]
		if shifts[i].TimeSlots == nil {
			shifts[i].TimeSlots = []TimeSlot{}
		}
	}
	return shifts, nil
}

func (r *repository) Materials(ctx context.Context) ([]Material, error) {
	query := `
		SELECT m.id, m.title, m.num_needed, COUNT(bm.booking_id) AS num_booked
		FROM materials m
		LEFT JOIN booking_materials bm ON bm.material_id = m.id
		GROUP BY m.id, m.title, m.num_needed
		ORDER BY m.id
	`
	var materials []Material
	if err := r.db.SelectContext(ctx, &materials, query); err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *repository) Professions(ctx context.Context) ([]Profession, error) {
	query := `SELECT id, title FROM professions ORDER BY id`
	var professions []Profession
	if err := r.db.SelectContext(ctx, &professions, query); err != nil {
		return nil, err
	}
	return professions, nil
}
