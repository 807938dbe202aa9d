package search

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the availability search router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Search)
	r.Get("/session", h.GetSession)
	r.Get("/constraints", h.GetConstraints)

	return r
}
