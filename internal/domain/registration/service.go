package registration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/festhub/festival-api/internal/domain/booking"
	"github.com/festhub/festival-api/internal/domain/catalog"
	"github.com/festhub/festival-api/internal/pkg/signature"
	"github.com/festhub/festival-api/internal/queue"
)

// Service handles booking submission and admin bookkeeping.
type Service struct {
	repo      Repository
	catalogs  *catalog.Service
	archiver  signature.Archiver // nil disables archival
	publisher *queue.Publisher   // nil disables events
}

// NewService creates registration service
func NewService(repo Repository, catalogs *catalog.Service, archiver signature.Archiver, publisher *queue.Publisher) *Service {
	return &Service{
		repo:      repo,
		catalogs:  catalogs,
		archiver:  archiver,
		publisher: publisher,
	}
}

// Submit validates and stores a completed draft. The client-computed total
// is discarded and recomputed against the live catalog before the insert.
func (s *Service) Submit(ctx context.Context, draft *booking.Booking) (uuid.UUID, error) {
	if errs := booking.ValidateAll(draft); errs != nil {
		return uuid.Nil, ErrIncompleteBooking
	}
	if !booking.PrioritiesDistinct(draft) {
		return uuid.Nil, ErrDuplicatePriorities
	}

	content, err := s.catalogs.Content(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	rec := &Record{
		ID:        uuid.New(),
		Booking:   *draft.Clone(),
		CreatedAt: time.Now(),
	}
	rec.TotalPrice = booking.ComputeTotal(draft, content)
	if rec.PaidAmount.IsZero() {
		rec.PaidAmount = decimal.Zero
	}

	if s.archiver != nil {
		key := fmt.Sprintf("signatures/%s.png", rec.ID)
		url, err := s.archiver.Archive(ctx, key, draft.Signature)
		if err != nil {
			// The booking is still stored; the raw data URL remains in the
			// signature column.
			log.Warn().Err(err).Str("booking_id", rec.ID.String()).Msg("Failed to archive signature")
		} else {
			rec.SignatureURL = url
		}
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return uuid.Nil, err
	}

	s.publisher.PublishBookingSubmitted(ctx, queue.BookingSubmittedEvent{
		BookingID:    rec.ID.String(),
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		Email:        rec.Email,
		TicketID:     rec.TicketID,
		AmountShifts: rec.AmountShifts,
		TotalPrice:   rec.TotalPrice,
		SubmittedAt:  rec.CreatedAt.Format(time.RFC3339),
		SignatureURL: rec.SignatureURL,
		PriorityOrder: []int{
			rec.TimeslotPriority1,
			rec.TimeslotPriority2,
			rec.TimeslotPriority3,
		},
	})

	log.Info().
		Str("booking_id", rec.ID.String()).
		Str("total_price", rec.TotalPrice.String()).
		Msg("Booking submitted")

	return rec.ID, nil
}

// List returns all submitted bookings.
func (s *Service) List(ctx context.Context) ([]*Record, error) {
	return s.repo.List(ctx)
}

// GetByID returns one booking.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdatePayment records an office-side payment reconciliation.
func (s *Service) UpdatePayment(ctx context.Context, id uuid.UUID, req *UpdatePaymentRequest) error {
	var date sql.NullTime
	if req.PaymentDate != "" {
		t, err := time.Parse(time.RFC3339, req.PaymentDate)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPaymentDate, err)
		}
		date = sql.NullTime{Time: t, Valid: true}
	}
	return s.repo.UpdatePayment(ctx, id, req.IsPaid, req.PaidAmount.String(), req.PaymentNotes, date)
}
