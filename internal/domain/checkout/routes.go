package checkout

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the checkout router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/reserve", h.Reserve)
	r.Post("/pay", h.PayNow)

	return r
}
