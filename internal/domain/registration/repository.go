package registration

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines booking persistence
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, isPaid bool, paidAmount string, notes string, date sql.NullTime) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const recordColumns = `
	id, first_name, last_name, email, phone,
	ticket_id, beverage_id, food_id,
	timeslot_priority_1, timeslot_priority_2, timeslot_priority_3,
	amount_shifts, supporter_buddy, signature, signature_url,
	total_price, is_paid, paid_amount, payment_notes, payment_date, created_at
`

func (r *repository) Create(ctx context.Context, rec *Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO bookings (
			id, first_name, last_name, email, phone,
			ticket_id, beverage_id, food_id,
			timeslot_priority_1, timeslot_priority_2, timeslot_priority_3,
			amount_shifts, supporter_buddy, signature, signature_url,
			total_price, is_paid, paid_amount, payment_notes, payment_date, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10, $11,
			$12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21
		)
	`
	_, err = tx.ExecContext(ctx, query,
		rec.ID, rec.FirstName, rec.LastName, rec.Email, rec.Phone,
		rec.TicketID, rec.BeverageID, rec.FoodID,
		rec.TimeslotPriority1, rec.TimeslotPriority2, rec.TimeslotPriority3,
		rec.AmountShifts, rec.SupporterBuddy, rec.Signature, rec.SignatureURL,
		rec.TotalPrice, rec.IsPaid, rec.PaidAmount, rec.PaymentNotes, rec.PaymentDate, rec.CreatedAt,
	)
	if err != nil {
		return err
	}

	for _, materialID := range rec.MaterialIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO booking_materials (booking_id, material_id) VALUES ($1, $2)`,
			rec.ID, materialID,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM bookings WHERE id = $1`
	var rec Record
	err := r.db.GetContext(ctx, &rec, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if err := r.loadMaterials(ctx, []*Record{&rec}); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) List(ctx context.Context) ([]*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM bookings ORDER BY created_at DESC`
	var recs []*Record
	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, err
	}
	if err := r.loadMaterials(ctx, recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *repository) loadMaterials(ctx context.Context, recs []*Record) error {
	if len(recs) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(recs))
	byID := make(map[uuid.UUID]*Record, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ID
		byID[rec.ID] = rec
		rec.MaterialIDs = []int{}
	}

	type row struct {
		BookingID  uuid.UUID `db:"booking_id"`
		MaterialID int       `db:"material_id"`
	}
	var rows []row
	query := `SELECT booking_id, material_id FROM booking_materials WHERE booking_id = ANY($1) ORDER BY material_id`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return err
	}

	for _, row := range rows {
		if rec, ok := byID[row.BookingID]; ok {
			rec.MaterialIDs = append(rec.MaterialIDs, row.MaterialID)
		}
	}
	return nil
}

func (r *repository) UpdatePayment(ctx context.Context, id uuid.UUID, isPaid bool, paidAmount string, notes string, date sql.NullTime) error {
	query := `
		UPDATE bookings SET
			is_paid = $2, paid_amount = $3, payment_notes = $4, payment_date = $5
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, isPaid, paidAmount, notes, date)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
