package shifts

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines shift assignment persistence
type Repository interface {
	Create(ctx context.Context, a *Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Assignment, error)
	List(ctx context.Context) ([]*Assignment, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*Assignment, error)
	UpdateTimeslot(ctx context.Context, id uuid.UUID, timeslotID int) error
	Delete(ctx context.Context, id uuid.UUID) error
	BookingSummaries(ctx context.Context) ([]*BookingSummary, error)
	TimeslotSummaries(ctx context.Context) ([]*TimeslotSummary, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates shift assignment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Assignment) error {
	query := `
		INSERT INTO shift_assignments (id, booking_id, timeslot_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.BookingID, a.TimeslotID, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return ErrDuplicate
			case "foreign_key_violation":
				if pqErr.Constraint == "shift_assignments_booking_id_fkey" {
					return ErrBookingNotFound
				}
				return ErrTimeslotNotFound
			}
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Assignment, error) {
	var a Assignment
	query := `SELECT id, booking_id, timeslot_id, created_at, updated_at FROM shift_assignments WHERE id = $1`
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) List(ctx context.Context) ([]*Assignment, error) {
	var out []*Assignment
	query := `SELECT id, booking_id, timeslot_id, created_at, updated_at FROM shift_assignments ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*Assignment, error) {
	var out []*Assignment
	query := `SELECT id, booking_id, timeslot_id, created_at, updated_at FROM shift_assignments WHERE booking_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &out, query, bookingID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) UpdateTimeslot(ctx context.Context, id uuid.UUID, timeslotID int) error {
	query := `UPDATE shift_assignments SET timeslot_id = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, timeslotID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return ErrDuplicate
			case "foreign_key_violation":
				return ErrTimeslotNotFound
			}
		}
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shift_assignments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func (r *repository) BookingSummaries(ctx context.Context) ([]*BookingSummary, error) {
	query := `
		SELECT b.id AS booking_id, b.first_name, b.last_name, b.email,
		       b.amount_shifts, b.supporter_buddy,
		       b.timeslot_priority_1, b.timeslot_priority_2, b.timeslot_priority_3,
		       COUNT(sa.id) AS num_assigned
		FROM bookings b
		LEFT JOIN shift_assignments sa ON sa.booking_id = b.id
		GROUP BY b.id, b.first_name, b.last_name, b.email,
		         b.amount_shifts, b.supporter_buddy,
		         b.timeslot_priority_1, b.timeslot_priority_2, b.timeslot_priority_3
		ORDER BY b.created_at
	`
	var out []*BookingSummary
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) TimeslotSummaries(ctx context.Context) ([]*TimeslotSummary, error) {
	query := `
		SELECT t.id AS timeslot_id, t.title, t.workshift_id, t.start_time, t.end_time,
		       t.num_needed, COUNT(sa.id) AS num_booked
		FROM timeslots t
		LEFT JOIN shift_assignments sa ON sa.timeslot_id = t.id
		GROUP BY t.id, t.title, t.workshift_id, t.start_time, t.end_time, t.num_needed
		ORDER BY t.workshift_id, t.start_time, t.id
	`
	var out []*TimeslotSummary
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, err
	}
	return out, nil
}
