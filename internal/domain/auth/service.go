package auth

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/festhub/festival-api/internal/pkg/jwt"
	"github.com/festhub/festival-api/internal/pkg/password"
)

// Service authenticates role passwords and mints session tokens.
// The shared passwords come from configuration; they are hashed once
// at startup so that login compares bcrypt digests, not plaintext.
type Service struct {
	jwtService *jwt.Service
	hashes     map[string]string
}

// NewService creates auth service. Roles with an empty password are
// left out of the hash map and can never log in.
func NewService(jwtService *jwt.Service, registrationPassword, adminPassword, artistPassword string) (*Service, error) {
	hashes := make(map[string]string, 3)
	for role, plain := range map[string]string{
		jwt.RoleParticipant: registrationPassword,
		jwt.RoleAdmin:       adminPassword,
		jwt.RoleArtist:      artistPassword,
	} {
		if plain == "" {
			continue
		}
		hash, err := password.Hash(plain)
		if err != nil {
			return nil, fmt.Errorf("hash %s password: %w", role, err)
		}
		hashes[role] = hash
	}
	return &Service{jwtService: jwtService, hashes: hashes}, nil
}

// Login verifies the shared password for the role and returns a token
// bound to a fresh session ID.
func (s *Service) Login(role, plaintext string) (*LoginResponse, error) {
	hash, ok := s.hashes[role]
	if !ok {
		return nil, ErrUnknownRole
	}
	if !password.Verify(plaintext, hash) {
		log.Warn().Str("role", role).Msg("Login rejected")
		return nil, ErrInvalidPassword
	}

	sessionID := uuid.New()
	token, err := s.jwtService.GenerateAccessToken(sessionID, role)
	if err != nil {
		return nil, err
	}

	log.Info().Str("role", role).Str("session_id", sessionID.String()).Msg("Session opened")
	return &LoginResponse{AccessToken: token, Role: role}, nil
}
