package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/festhub/festival-api/internal/pkg/jwt"
	"github.com/festhub/festival-api/internal/pkg/response"
	"github.com/festhub/festival-api/internal/pkg/session"
)

type contextKey string

const (
	SessionIDKey contextKey = "session_id"
	RoleKey      contextKey = "role"
)

// Auth returns middleware that validates the bearer JWT and rejects revoked
// sessions (forced logout after a submission attempt).
func Auth(jwtService *jwt.Service, sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateAccessToken(parts[1])
			if err != nil {
				if err == jwt.ErrExpiredToken {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			if sessions != nil {
				revoked, err := sessions.IsRevoked(r.Context(), claims.SessionID)
				if err != nil {
					response.InternalError(w)
					return
				}
				if revoked {
					response.Unauthorized(w, "Session has been invalidated")
					return
				}
			}

			ctx := context.WithValue(r.Context(), SessionIDKey, claims.SessionID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionID extracts the session ID from context
func GetSessionID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(SessionIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetRole extracts the role from context
func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(RoleKey).(string); ok {
		return role
	}
	return ""
}

// RequireRole returns middleware that checks the session role
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionRole := GetRole(r.Context())

			for _, role := range roles {
				if sessionRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "Insufficient permissions")
		})
	}
}

// RequireAdmin returns middleware that requires the admin role
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(jwt.RoleAdmin)
}
