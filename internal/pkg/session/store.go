package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const denylistPrefix = "session:revoked:"

// How long a revocation entry outlives the longest token TTL.
const denylistTTL = 24 * time.Hour

// Store tracks revoked sessions in Redis. Tokens are stateless JWTs, so a
// forced logout is a denylist entry checked by the auth middleware.
type Store struct {
	rdb *redis.Client
}

// NewStore creates a session store
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Revoke invalidates a session immediately.
func (s *Store) Revoke(ctx context.Context, sessionID uuid.UUID) error {
	return s.rdb.Set(ctx, denylistPrefix+sessionID.String(), "1", denylistTTL).Err()
}

// RevokeAfter invalidates a session once the delay elapses. Used after a
// submission attempt: one hour on success, ten seconds on failure.
func (s *Store) RevokeAfter(sessionID uuid.UUID, delay time.Duration) {
	time.AfterFunc(delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Revoke(ctx, sessionID); err != nil {
			log.Error().Err(err).Str("session_id", sessionID.String()).Msg("Failed to revoke session")
		}
	})
}

// IsRevoked reports whether the session has been invalidated.
func (s *Store) IsRevoked(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	n, err := s.rdb.Exists(ctx, denylistPrefix+sessionID.String()).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
