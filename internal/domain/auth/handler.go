package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/festhub/festival-api/internal/pkg/jwt"
	"github.com/festhub/festival-api/internal/pkg/response"
	"github.com/festhub/festival-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates auth handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Login handles POST / (participant password)
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, jwt.RoleParticipant)
}

// LoginAdmin handles POST /admin
func (h *Handler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, jwt.RoleAdmin)
}

// LoginArtist handles POST /artist
func (h *Handler) LoginArtist(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, jwt.RoleArtist)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, role string) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.svc.Login(role, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidPassword) || errors.Is(err, ErrUnknownRole) {
			response.Unauthorized(w, "Invalid password")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, resp)
}
