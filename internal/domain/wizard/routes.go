package wizard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns wizard routes, all session-scoped.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.State)
	r.Put("/fields/{field}", h.UpdateField)
	r.Post("/next", h.Next)
	r.Post("/previous", h.Previous)
	r.Get("/priorities/options", h.RankOptions)
	r.Put("/priorities/{rank}", h.AssignPriority)
	r.Delete("/priorities/{rank}", h.ClearPriority)
	r.Post("/submit", h.Submit)

	return r
}
