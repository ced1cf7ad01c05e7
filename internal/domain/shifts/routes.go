package shifts

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/festhub/festival-api/internal/middleware"
)

// Routes returns shift assignment routes, all admin only.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequireAdmin())

	r.Get("/assignments", h.ListAssignments)
	r.Post("/assignments", h.CreateAssignment)
	r.Put("/assignments/{id}", h.UpdateAssignment)
	r.Delete("/assignments/{id}", h.DeleteAssignment)
	r.Get("/summary/bookings", h.BookingSummaries)
	r.Get("/summary/timeslots", h.TimeslotSummaries)
	r.Post("/autoassign", h.AutoAssign)

	return r
}
