package paymentreturn

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/catalinahotel/booking-api/internal/pkg/response"
)

// Handler handles payment return HTTP requests.
type Handler struct{}

// NewHandler creates a new payment return handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Return handles GET /api/v1/payments/return
// The gateway sends the browser here after its hosted checkout; the query
// parameters are read once and classified into a terminal render model.
func (h *Handler) Return(w http.ResponseWriter, r *http.Request) {
	response.OK(w, Interpret(r.URL.Query()))
}

// Routes returns the payment return router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/return", h.Return)

	return r
}
