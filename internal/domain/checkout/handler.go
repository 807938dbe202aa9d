package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/catalinahotel/booking-api/internal/domain/search"
	"github.com/catalinahotel/booking-api/internal/pkg/hotelapi"
	"github.com/catalinahotel/booking-api/internal/pkg/response"
	"github.com/catalinahotel/booking-api/internal/pkg/validator"
)

// Handler handles checkout HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new checkout handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Reserve handles POST /api/v1/checkout/reserve
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	sessionID, req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	confirmation, err := h.service.Reserve(r.Context(), sessionID, req)
	if err != nil {
		h.writeError(w, sessionID, "RESERVATION_FAILED", "Failed to register the reservation", err)
		return
	}

	response.Created(w, confirmation)
}

// PayNow handles POST /api/v1/checkout/pay
func (h *Handler) PayNow(w http.ResponseWriter, r *http.Request) {
	sessionID, req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	handoff, err := h.service.PayNow(r.Context(), sessionID, req)
	if err != nil {
		h.writeError(w, sessionID, "PAYMENT_FAILED", "Failed to process the payment", err)
		return
	}

	response.OK(w, handoff)
}

// parseRequest reads the session header and the checkout body. Contact
// violations are reported aggregated, before any network call.
func (h *Handler) parseRequest(w http.ResponseWriter, r *http.Request) (string, CheckoutRequest, bool) {
	sessionID := r.Header.Get(search.SessionHeader)
	if sessionID == "" {
		response.BadRequest(w, "X-Session-ID header is required")
		return "", CheckoutRequest{}, false
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return "", CheckoutRequest{}, false
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return "", CheckoutRequest{}, false
	}

	return sessionID, req, true
}

func (h *Handler) writeError(w http.ResponseWriter, sessionID, failCode, failMessage string, err error) {
	switch {
	case errors.Is(err, ErrCheckoutInProgress):
		response.Conflict(w, "CHECKOUT_IN_PROGRESS", err.Error())
	case errors.Is(err, ErrNoActiveResults):
		response.Error(w, http.StatusNotFound, "NO_ACTIVE_RESULTS", "Search session expired, please search again")
	case errors.Is(err, ErrRoomNotInResults):
		response.Error(w, http.StatusNotFound, "ROOM_NOT_IN_RESULTS", err.Error())
	case errors.Is(err, ErrMissingRedirectTarget):
		log.Error().Err(err).Str("session_id", sessionID).Msg("Payment preference without redirect URL")
		response.BadGateway(w, "MISSING_REDIRECT_TARGET", "Payment could not be started, please try again")
	default:
		log.Error().Err(err).Str("session_id", sessionID).Msg("Checkout action failed")

		// Surface the upstream-provided detail when there is one.
		var apiErr *hotelapi.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			response.BadGateway(w, failCode, apiErr.Message)
			return
		}
		response.BadGateway(w, failCode, failMessage)
	}
}
