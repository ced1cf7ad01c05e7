package catalog

import (
	"net/http"

	"github.com/festhub/festival-api/internal/pkg/response"
)

// Handler handles catalog HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates catalog handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// FormContent handles GET /formcontent
func (h *Handler) FormContent(w http.ResponseWriter, r *http.Request) {
	content, err := h.svc.Content(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, content)
}
