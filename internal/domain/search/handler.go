package search

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/catalinahotel/booking-api/internal/pkg/response"
)

// SessionHeader carries the search session ID. The server mints one on the
// first search and echoes it back; the frontend replays it on every call.
const SessionHeader = "X-Session-ID"

// Handler handles availability search HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new search handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Search handles POST /api/v1/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionID(r)
	w.Header().Set(SessionHeader, sessionID)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	criteria, err := ParseCriteria(req.CheckIn, req.CheckOut, req.Adults, req.Children)
	if err != nil {
		writeCriteriaError(w, err)
		return
	}

	results, err := h.service.Search(r.Context(), sessionID, criteria)
	if err != nil {
		if errors.Is(err, ErrSearchSuperseded) {
			response.Conflict(w, "SEARCH_SUPERSEDED", "A newer search was started; these results were discarded")
			return
		}
		log.Error().Err(err).Str("session_id", sessionID).Msg("Availability search failed")
		response.BadGateway(w, "SEARCH_FAILED", "Failed to search available rooms")
		return
	}

	response.OK(w, results)
}

// GetSession handles GET /api/v1/search/session
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		response.BadRequest(w, "X-Session-ID header is required")
		return
	}

	state, err := h.service.SessionState(r.Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to load search session")
		response.InternalError(w)
		return
	}

	response.OK(w, state)
}

// GetConstraints handles GET /api/v1/search/constraints
// Serves the date input bounds for the search form.
func (h *Handler) GetConstraints(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	checkIn := r.URL.Query().Get("check_in")

	response.OK(w, ConstraintsResponse{
		MinCheckIn:  MinCheckIn(now),
		MinCheckOut: MinCheckOut(now, checkIn),
	})
}

func sessionID(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	return uuid.New().String()
}

func writeCriteriaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingDates):
		response.UnprocessableEntity(w, "MISSING_DATES", err.Error())
	case errors.Is(err, ErrInvalidDateFormat):
		response.UnprocessableEntity(w, "INVALID_DATE_FORMAT", err.Error())
	case errors.Is(err, ErrInvalidDateOrder):
		response.UnprocessableEntity(w, "INVALID_DATE_ORDER", err.Error())
	case errors.Is(err, ErrNoAdultGuest):
		response.UnprocessableEntity(w, "NO_ADULT_GUEST", err.Error())
	case errors.Is(err, ErrNegativeChildren):
		response.UnprocessableEntity(w, "NEGATIVE_CHILDREN", err.Error())
	default:
		response.BadRequest(w, err.Error())
	}
}
