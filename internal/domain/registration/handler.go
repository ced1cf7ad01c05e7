package registration

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/festhub/festival-api/internal/domain/booking"
	"github.com/festhub/festival-api/internal/pkg/response"
	"github.com/festhub/festival-api/internal/pkg/validator"
)

// Handler handles registration HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates registration handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// SubmitForm handles POST /submitForm
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	draft := booking.NewDraft()
	if err := json.NewDecoder(r.Body).Decode(draft); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := booking.ValidateAll(draft); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	id, err := h.svc.Submit(r.Context(), draft)
	if err != nil {
		switch {
		case errors.Is(err, ErrIncompleteBooking):
			response.BadRequest(w, "Booking has missing or invalid fields")
		case errors.Is(err, ErrDuplicatePriorities):
			response.BadRequest(w, "Each priority must reference a distinct timeslot")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, &SubmittedResponse{BookingID: id})
}

// Data handles GET /data (admin)
func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, records)
}

// GetByID handles GET /data/{id} (admin)
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	rec, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.NotFound(w, "Booking not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, rec)
}

// UpdatePayment handles PATCH /data/{id}/payment (admin)
func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.svc.UpdatePayment(r.Context(), id, &req); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, ErrInvalidPaymentDate):
			response.BadRequest(w, "payment_date must be RFC3339")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"status": "updated"})
}
