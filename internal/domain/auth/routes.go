package auth

import "github.com/go-chi/chi/v5"

// Routes returns auth routes. No auth middleware: these endpoints
// open sessions.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Login)
	r.Post("/admin", h.LoginAdmin)
	r.Post("/artist", h.LoginArtist)

	return r
}
