package shifts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/festhub/festival-api/internal/pkg/metrics"
)

// Service handles shift assignment logic
type Service struct {
	repo Repository
}

// NewService creates shifts service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CanAssign checks one candidate pairing against the current state.
// It returns ErrDuplicate, ErrQuotaMet or ErrTimeslotFull, or nil when
// the pairing is allowed.
func CanAssign(b *BookingSummary, slot *TimeslotSummary, existing []*Assignment) error {
	for _, a := range existing {
		if a.BookingID == b.BookingID && a.TimeslotID == slot.TimeslotID {
			return ErrDuplicate
		}
	}
	if b.QuotaMet() {
		return ErrQuotaMet
	}
	if slot.Full() {
		return ErrTimeslotFull
	}
	return nil
}

// Assign creates one assignment after re-checking quota and capacity.
func (s *Service) Assign(ctx context.Context, req *CreateAssignmentRequest) (*Assignment, error) {
	b, err := s.bookingSummary(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	slot, err := s.timeslotSummary(ctx, req.TimeslotID)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.ListByBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if err := CanAssign(b, slot, existing); err != nil {
		metrics.RecordAssignment("create", "rejected")
		return nil, err
	}

	now := time.Now()
	a := &Assignment{
		ID:         uuid.New(),
		BookingID:  req.BookingID,
		TimeslotID: req.TimeslotID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		metrics.RecordAssignment("create", "error")
		return nil, err
	}

	metrics.RecordAssignment("create", "ok")
	log.Info().
		Str("assignment_id", a.ID.String()).
		Str("booking_id", a.BookingID.String()).
		Int("timeslot_id", a.TimeslotID).
		Msg("Shift assigned")
	return a, nil
}

// Move changes the timeslot of an existing assignment. Quota is
// unaffected; only the target slot's capacity is checked.
func (s *Service) Move(ctx context.Context, id uuid.UUID, req *UpdateAssignmentRequest) (*Assignment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.TimeslotID == req.TimeslotID {
		return a, nil
	}

	slot, err := s.timeslotSummary(ctx, req.TimeslotID)
	if err != nil {
		return nil, err
	}
	if slot.Full() {
		metrics.RecordAssignment("move", "rejected")
		return nil, ErrTimeslotFull
	}

	if err := s.repo.UpdateTimeslot(ctx, id, req.TimeslotID); err != nil {
		metrics.RecordAssignment("move", "error")
		return nil, err
	}
	metrics.RecordAssignment("move", "ok")
	return s.repo.GetByID(ctx, id)
}

// Remove deletes an assignment.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		metrics.RecordAssignment("delete", "error")
		return err
	}
	metrics.RecordAssignment("delete", "ok")
	return nil
}

// List returns all assignments.
func (s *Service) List(ctx context.Context) ([]*Assignment, error) {
	return s.repo.List(ctx)
}

// BookingSummaries returns the per-booking dashboard rows.
func (s *Service) BookingSummaries(ctx context.Context) ([]*BookingSummary, error) {
	return s.repo.BookingSummaries(ctx)
}

// TimeslotSummaries returns the per-slot dashboard rows.
func (s *Service) TimeslotSummaries(ctx context.Context) ([]*TimeslotSummary, error) {
	return s.repo.TimeslotSummaries(ctx)
}

// AutoAssign walks all bookings in submission order and fills their
// remaining quota from their priority list, first rank first, skipping
// slots that are full or already held. Bookings whose priorities are
// exhausted before the quota is met are reported as unassigned.
func (s *Service) AutoAssign(ctx context.Context) (*AutoAssignResponse, error) {
	bookings, err := s.repo.BookingSummaries(ctx)
	if err != nil {
		return nil, err
	}
	slots, err := s.repo.TimeslotSummaries(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	created, unassigned := planAutoAssign(bookings, slots, existing)

	resp := &AutoAssignResponse{
		Created:    make([]*Assignment, 0, len(created)),
		Unassigned: unassigned,
	}
	for _, a := range created {
		if err := s.repo.Create(ctx, a); err != nil {
			metrics.RecordAssignment("auto", "error")
			return nil, err
		}
		resp.Created = append(resp.Created, a)
	}
	resp.NumCreated = len(resp.Created)

	metrics.RecordAssignment("auto", "ok")
	log.Info().
		Int("created", resp.NumCreated).
		Int("unassigned", len(resp.Unassigned)).
		Msg("Auto-assignment finished")
	return resp, nil
}

// planAutoAssign is the pure planning step. It mutates nothing it was
// given; counts are tracked in local copies.
func planAutoAssign(bookings []*BookingSummary, slots []*TimeslotSummary, existing []*Assignment) ([]*Assignment, []uuid.UUID) {
	slotByID := make(map[int]*TimeslotSummary, len(slots))
	booked := make(map[int]int, len(slots))
	for _, slot := range slots {
		slotByID[slot.TimeslotID] = slot
		booked[slot.TimeslotID] = slot.NumBooked
	}

	held := make(map[uuid.UUID]map[int]bool, len(bookings))
	for _, a := range existing {
		if held[a.BookingID] == nil {
			held[a.BookingID] = make(map[int]bool)
		}
		held[a.BookingID][a.TimeslotID] = true
	}

	var created []*Assignment
	var unassigned []uuid.UUID
	now := time.Now()

	for _, b := range bookings {
		remaining := b.AmountShifts - b.NumAssigned
		for _, slotID := range b.Priorities() {
			if remaining <= 0 {
				break
			}
			slot, ok := slotByID[slotID]
			if !ok || held[b.BookingID][slotID] {
				continue
			}
			if booked[slotID] >= slot.NumNeeded {
				continue
			}
			created = append(created, &Assignment{
				ID:         uuid.New(),
				BookingID:  b.BookingID,
				TimeslotID: slotID,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
			booked[slotID]++
			if held[b.BookingID] == nil {
				held[b.BookingID] = make(map[int]bool)
			}
			held[b.BookingID][slotID] = true
			remaining--
		}
		if remaining > 0 {
			unassigned = append(unassigned, b.BookingID)
		}
	}
	return created, unassigned
}

func (s *Service) bookingSummary(ctx context.Context, bookingID uuid.UUID) (*BookingSummary, error) {
	all, err := s.repo.BookingSummaries(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range all {
		if b.BookingID == bookingID {
			return b, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (s *Service) timeslotSummary(ctx context.Context, timeslotID int) (*TimeslotSummary, error) {
	all, err := s.repo.TimeslotSummaries(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range all {
		if t.TimeslotID == timeslotID {
			return t, nil
		}
	}
	return nil, ErrTimeslotNotFound
}
