package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/festhub/festival-api/internal/domain/booking"
)

const snapshotPrefix = "wizard:snapshot:"

// snapshot is the wire form of a persisted machine. The form version gates
// recovery: a mismatch discards the snapshot instead of migrating it.
type snapshot struct {
	FormVersion  string             `json:"form_version"`
	ActiveStep   int                `json:"active_step"`
	Booking      *booking.Booking   `json:"booking"`
	Validation   map[string]string  `json:"form_validation"`
	BookingState SubmissionState    `json:"booking_state"`
	CurrentError string             `json:"current_error"`
	SavedAt      time.Time          `json:"saved_at"`
}

// Store persists wizard machines across requests and reconnects.
type Store interface {
	// Load returns the machine for the session, or a fresh one when no
	// usable snapshot exists.
	Load(ctx context.Context, sessionID uuid.UUID) (*Machine, error)
	// Save writes the machine unconditionally.
	Save(ctx context.Context, sessionID uuid.UUID, m *Machine) error
	// Clear discards the session's snapshot.
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

// RedisStore keeps one snapshot per session in Redis, the Go-side stand-in
// for the browser's local storage.
type RedisStore struct {
	rdb     *redis.Client
	version string
	ttl     time.Duration
}

// NewRedisStore creates a snapshot store gated on the given form version.
func NewRedisStore(rdb *redis.Client, version string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, version: version, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, sessionID uuid.UUID) (*Machine, error) {
	raw, err := s.rdb.Get(ctx, snapshotPrefix+sessionID.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewMachine(), nil
	}
	if err != nil {
		return nil, err
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// Unreadable snapshots are treated like a version mismatch.
		log.Warn().Err(err).Str("session_id", sessionID.String()).Msg("Discarding corrupt wizard snapshot")
		s.Clear(ctx, sessionID)
		return NewMachine(), nil
	}

	if snap.FormVersion != s.version {
		log.Info().
			Str("stored_version", snap.FormVersion).
			Str("current_version", s.version).
			Msg("Form version changed, discarding wizard snapshot")
		s.Clear(ctx, sessionID)
		return NewMachine(), nil
	}

	m := &Machine{
		Draft:        snap.Booking,
		ActiveStep:   Step(snap.ActiveStep),
		Validation:   snap.Validation,
		CurrentError: snap.CurrentError,
		Submission:   snap.BookingState,
	}
	if m.Draft == nil {
		m.Draft = booking.NewDraft()
	}
	if m.Validation == nil {
		m.Validation = make(map[string]string)
	}
	return m, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID uuid.UUID, m *Machine) error {
	snap := snapshot{
		FormVersion:  s.version,
		ActiveStep:   int(m.ActiveStep),
		Booking:      m.Draft,
		Validation:   m.Validation,
		BookingState: m.Submission,
		CurrentError: m.CurrentError,
		SavedAt:      time.Now(),
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, snapshotPrefix+sessionID.String(), string(raw), s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	return s.rdb.Del(ctx, snapshotPrefix+sessionID.String()).Err()
}
