package search

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/catalinahotel/booking-api/internal/domain/pricing"
	"github.com/catalinahotel/booking-api/internal/pkg/hotelapi"
)

// InventoryAPI is the slice of the booking API the search flow needs.
type InventoryAPI interface {
	SearchAvailability(ctx context.Context, q hotelapi.AvailabilityQuery) ([]hotelapi.Room, error)
}

// Service runs availability searches and owns the session render state.
type Service struct {
	api      InventoryAPI
	sessions SessionStore
}

func NewService(api InventoryAPI, sessions SessionStore) *Service {
	return &Service{
		api:      api,
		sessions: sessions,
	}
}

// Search queries the inventory for the given criteria and commits the
// results to the session. If a newer search for the same session started
// while this one was in flight, the results are discarded and
// ErrSearchSuperseded is returned; the newer search's outcome wins.
func (s *Service) Search(ctx context.Context, sessionID string, c Criteria) (*SearchResponse, error) {
	seq, err := s.sessions.BeginSearch(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("begin search: %w", err)
	}

	rooms, err := s.api.SearchAvailability(ctx, hotelapi.AvailabilityQuery{
		CheckIn:     c.CheckInString(),
		CheckOut:    c.CheckOutString(),
		TotalGuests: c.TotalGuests(),
	})
	if err != nil {
		if _, failErr := s.sessions.FailSearch(ctx, sessionID, seq); failErr != nil {
			log.Error().Err(failErr).Str("session_id", sessionID).Msg("Failed to reset search session")
		}
		return nil, fmt.Errorf("availability search: %w", err)
	}

	applied, err := s.sessions.CompleteSearch(ctx, sessionID, seq, c, rooms)
	if err != nil {
		return nil, fmt.Errorf("commit search: %w", err)
	}
	if !applied {
		return nil, ErrSearchSuperseded
	}

	return buildResponse(sessionID, c, rooms), nil
}

// SessionState reports the current render state for a session. A session
// that was never searched, or whose TTL lapsed, is idle.
func (s *Service) SessionState(ctx context.Context, sessionID string) (*SessionStateResponse, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return &SessionStateResponse{SessionID: sessionID, State: StateIdle}, nil
	}

	resp := &SessionStateResponse{SessionID: sessionID, State: sess.State}
	if sess.State == StateResults {
		c, err := sess.Criteria()
		if err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
		resp.Results = buildResponse(sessionID, c, sess.Rooms)
	}
	return resp, nil
}

// buildResponse quotes every offer for the criteria. Quotes are computed
// here on every render, never persisted with the session.
func buildResponse(sessionID string, c Criteria, rooms []hotelapi.Room) *SearchResponse {
	results := make([]RoomResult, len(rooms))
	for i, room := range rooms {
		quote := pricing.ForStay(room, c.CheckIn, c.CheckOut)
		results[i] = RoomResult{
			ID:           room.ID,
			Title:        room.Title,
			Description:  room.Description,
			Capacity:     room.Capacity,
			Images:       room.Images,
			Amenities:    room.Amenities,
			BaseRate:     room.Price,
			PromoRate:    room.PromoPrice,
			RatePerNight: quote.RatePerNight,
			Total:        quote.Total,
		}
	}

	return &SearchResponse{
		SessionID:   sessionID,
		CheckIn:     c.CheckInString(),
		CheckOut:    c.CheckOutString(),
		Adults:      c.Adults,
		Children:    c.Children,
		TotalGuests: c.TotalGuests(),
		Nights:      pricing.Nights(c.CheckIn, c.CheckOut),
		Rooms:       results,
	}
}
