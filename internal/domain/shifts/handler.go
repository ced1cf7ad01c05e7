package shifts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/festhub/festival-api/internal/pkg/response"
	"github.com/festhub/festival-api/internal/pkg/validator"
)

// Handler handles shift assignment HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates shifts handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListAssignments handles GET /assignments
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, out)
}

// CreateAssignment handles POST /assignments
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	a, err := h.svc.Assign(r.Context(), &req)
	if err != nil {
		h.writeAssignError(w, err)
		return
	}
	response.Created(w, a)
}

// UpdateAssignment handles PUT /assignments/{id}
func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid assignment ID")
		return
	}

	var req UpdateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	a, err := h.svc.Move(r.Context(), id, &req)
	if err != nil {
		h.writeAssignError(w, err)
		return
	}
	response.OK(w, a)
}

// DeleteAssignment handles DELETE /assignments/{id}
func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid assignment ID")
		return
	}
	if err := h.svc.Remove(r.Context(), id); err != nil {
		if errors.Is(err, ErrAssignmentNotFound) {
			response.NotFound(w, "Assignment not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.NoContent(w)
}

// BookingSummaries handles GET /summary/bookings
func (h *Handler) BookingSummaries(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.BookingSummaries(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, out)
}

// TimeslotSummaries handles GET /summary/timeslots
func (h *Handler) TimeslotSummaries(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.TimeslotSummaries(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, out)
}

// AutoAssign handles POST /autoassign
func (h *Handler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.AutoAssign(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, resp)
}

func (h *Handler) writeAssignError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAssignmentNotFound):
		response.NotFound(w, "Assignment not found")
	case errors.Is(err, ErrBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, ErrTimeslotNotFound):
		response.NotFound(w, "Timeslot not found")
	case errors.Is(err, ErrDuplicate):
		response.Conflict(w, "Booking is already assigned to this timeslot")
	case errors.Is(err, ErrQuotaMet):
		response.Conflict(w, "Booking already has all requested shifts")
	case errors.Is(err, ErrTimeslotFull):
		response.Conflict(w, "Timeslot has no open places")
	default:
		response.InternalError(w)
	}
}
