package wizard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/festhub/festival-api/internal/domain/booking"
	"github.com/festhub/festival-api/internal/domain/catalog"
	"github.com/festhub/festival-api/internal/pkg/metrics"
)

// CatalogProvider supplies the current form content for pricing.
type CatalogProvider interface {
	Content(ctx context.Context) (*catalog.FormContent, error)
}

// Submitter stores a completed draft as a booking.
type Submitter interface {
	Submit(ctx context.Context, draft *booking.Booking) (uuid.UUID, error)
}

// SessionInvalidator schedules forced logouts.
type SessionInvalidator interface {
	RevokeAfter(sessionID uuid.UUID, delay time.Duration)
}

// Service drives one wizard machine per session: it loads the snapshot,
// applies the transition, recomputes the derived total and saves.
type Service struct {
	store     Store
	catalogs  CatalogProvider
	submitter Submitter
	sessions  SessionInvalidator

	logoutAfterSuccess time.Duration
	logoutAfterFailure time.Duration
}

// NewService creates a wizard service
func NewService(store Store, catalogs CatalogProvider, submitter Submitter, sessions SessionInvalidator, logoutAfterSuccess, logoutAfterFailure time.Duration) *Service {
	return &Service{
		store:              store,
		catalogs:           catalogs,
		submitter:          submitter,
		sessions:           sessions,
		logoutAfterSuccess: logoutAfterSuccess,
		logoutAfterFailure: logoutAfterFailure,
	}
}

// State returns the session's machine, resuming a stored snapshot when its
// form version matches.
func (s *Service) State(ctx context.Context, sessionID uuid.UUID) (*Machine, error) {
	return s.store.Load(ctx, sessionID)
}

// UpdateField applies a field edit, reprices the draft and persists.
func (s *Service) UpdateField(ctx context.Context, sessionID uuid.UUID, field string, value any) (*Machine, error) {
	m, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := m.UpdateField(field, value); err != nil {
		return nil, err
	}
	s.reprice(ctx, m)
	if err := s.store.Save(ctx, sessionID, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Next advances the machine when the current step validates.
func (s *Service) Next(ctx context.Context, sessionID uuid.UUID) (*Machine, error) {
	m, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if m.Next() {
		metrics.RecordStepTransition("next", "advanced")
	} else {
		metrics.RecordStepTransition("next", "blocked")
	}
	if err := s.store.Save(ctx, sessionID, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Previous steps back unconditionally.
func (s *Service) Previous(ctx context.Context, sessionID uuid.UUID) (*Machine, error) {
	m, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	m.Previous()
	metrics.RecordStepTransition("previous", "advanced")
	if err := s.store.Save(ctx, sessionID, m); err != nil {
		return nil, err
	}
	return m, nil
}

// AssignPriority promotes a timeslot to a rank, displacing duplicates.
func (s *Service) AssignPriority(ctx context.Context, sessionID uuid.UUID, rank, slotID int) (*Machine, error) {
	m, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := m.AssignPriority(rank, slotID); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sessionID, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ClearPriority unsets a rank.
func (s *Service) ClearPriority(ctx context.Context, sessionID uuid.UUID, rank int) (*Machine, error) {
	m, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := m.ClearPriority(rank); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sessionID, m); err != nil {
		return nil, err
	}
	return m, nil
}

// RankOptions returns the ranks currently offerable for a timeslot. Pure
// view over the draft, nothing is persisted.
func (s *Service) RankOptions(ctx context.Context, sessionID uuid.UUID, slotID int) ([]int, error) {
	m, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return booking.AvailableRanks(m.Draft, slotID), nil
}

// Submit posts the stored draft. On success the snapshot is destroyed and
// the session is scheduled for invalidation after the long grace period;
// on failure the error state is persisted and the short period applies.
func (s *Service) Submit(ctx context.Context, sessionID uuid.UUID) (*Machine, error) {
	m, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if m.Submission == SubmissionSuccess {
		return nil, ErrAlreadySubmitted
	}
	if m.ActiveStep < StepSummary {
		return nil, ErrNotAtSummary
	}

	if errs := booking.ValidateAll(m.Draft); errs != nil {
		for k, v := range errs {
			m.Validation[k] = v
		}
		m.CurrentError = firstMessage(errs)
		if err := s.store.Save(ctx, sessionID, m); err != nil {
			return nil, err
		}
		return nil, ErrDraftIncomplete
	}
	if !booking.PrioritiesDistinct(m.Draft) {
		return nil, ErrDraftIncomplete
	}

	m.ActiveStep = StepConfirmation
	m.Submission = SubmissionPending
	s.reprice(ctx, m)

	if _, err := s.submitter.Submit(ctx, m.Draft); err != nil {
		m.Submission = SubmissionError
		m.CurrentError = "Submission failed, please try again"
		metrics.RecordSubmission("failure")
		if saveErr := s.store.Save(ctx, sessionID, m); saveErr != nil {
			log.Error().Err(saveErr).Msg("Failed to persist submission error state")
		}
		s.sessions.RevokeAfter(sessionID, s.logoutAfterFailure)
		return m, nil
	}

	m.Submission = SubmissionSuccess
	m.CurrentError = ""
	metrics.RecordSubmission("success")

	// Draft is destroyed once the booking is stored; the session only
	// lives long enough to show the confirmation.
	if err := s.store.Clear(ctx, sessionID); err != nil {
		log.Error().Err(err).Msg("Failed to clear wizard snapshot after submission")
	}
	s.sessions.RevokeAfter(sessionID, s.logoutAfterSuccess)
	return m, nil
}

// reprice recomputes the derived total against the live catalog, falling
// back to the placeholder (non-final sentinel prices) when the catalog is
// unavailable.
func (s *Service) reprice(ctx context.Context, m *Machine) {
	content, err := s.catalogs.Content(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Catalog unavailable, pricing against placeholder")
		content = catalog.NewPlaceholder()
	}
	m.Draft.TotalPrice = booking.ComputeTotal(m.Draft, content)
}

func firstMessage(errs map[string]string) string {
	for _, msg := range errs {
		return msg
	}
	return ""
}
