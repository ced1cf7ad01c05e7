package wizard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/festhub/festival-api/internal/domain/booking"
	"github.com/festhub/festival-api/internal/middleware"
	"github.com/festhub/festival-api/internal/pkg/response"
)

// Handler handles wizard HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates wizard handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// State handles GET /wizard
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.State(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, ToStateResponse(m))
}

// UpdateField handles PUT /wizard/fields/{field}
func (h *Handler) UpdateField(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")

	var req UpdateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	m, err := h.svc.UpdateField(r.Context(), middleware.GetSessionID(r.Context()), field, req.Value)
	if err != nil {
		if errors.Is(err, booking.ErrUnknownField) {
			response.NotFound(w, "Unknown field: "+field)
			return
		}
		if errors.Is(err, booking.ErrInvalidFieldValue) {
			response.BadRequest(w, "Invalid value for field "+field)
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ToStateResponse(m))
}

// Next handles POST /wizard/next
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Next(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, ToStateResponse(m))
}

// Previous handles POST /wizard/previous
func (h *Handler) Previous(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Previous(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, ToStateResponse(m))
}

// AssignPriority handles PUT /wizard/priorities/{rank}
func (h *Handler) AssignPriority(w http.ResponseWriter, r *http.Request) {
	rank, err := strconv.Atoi(chi.URLParam(r, "rank"))
	if err != nil {
		response.BadRequest(w, "Invalid priority rank")
		return
	}

	var req AssignPriorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	m, err := h.svc.AssignPriority(r.Context(), middleware.GetSessionID(r.Context()), rank, req.TimeslotID)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidRank) || errors.Is(err, booking.ErrInvalidSlot) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ToStateResponse(m))
}

// ClearPriority handles DELETE /wizard/priorities/{rank}
func (h *Handler) ClearPriority(w http.ResponseWriter, r *http.Request) {
	rank, err := strconv.Atoi(chi.URLParam(r, "rank"))
	if err != nil {
		response.BadRequest(w, "Invalid priority rank")
		return
	}

	m, err := h.svc.ClearPriority(r.Context(), middleware.GetSessionID(r.Context()), rank)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidRank) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ToStateResponse(m))
}

// RankOptions handles GET /wizard/priorities/options?timeslot_id=N
func (h *Handler) RankOptions(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.Atoi(r.URL.Query().Get("timeslot_id"))
	if err != nil {
		response.BadRequest(w, "Invalid timeslot_id")
		return
	}

	ranks, err := h.svc.RankOptions(r.Context(), middleware.GetSessionID(r.Context()), slotID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, &RankOptionsResponse{TimeslotID: slotID, Ranks: ranks})
}

// Submit handles POST /wizard/submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Submit(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAtSummary):
			response.Conflict(w, "Wizard has not reached the summary step")
		case errors.Is(err, ErrAlreadySubmitted):
			response.Conflict(w, "Booking was already submitted")
		case errors.Is(err, ErrDraftIncomplete):
			response.BadRequest(w, "Draft has validation errors")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ToStateResponse(m))
}
