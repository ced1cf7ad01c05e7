package registration

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/festhub/festival-api/internal/middleware"
)

// Routes returns registration routes: submission for any authenticated
// session, booking data for admins only.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/submitForm", h.SubmitForm)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin())
		r.Get("/data", h.Data)
		r.Get("/data/{id}", h.GetByID)
		r.Patch("/data/{id}/payment", h.UpdatePayment)
	})

	return r
}
