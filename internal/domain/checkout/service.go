package checkout

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/catalinahotel/booking-api/internal/domain/pricing"
	"github.com/catalinahotel/booking-api/internal/domain/search"
	"github.com/catalinahotel/booking-api/internal/pkg/hotelapi"
)

// ActionReserve and ActionPay are the two terminal checkout actions.
const (
	ActionReserve = "reserve"
	ActionPay     = "pay"
)

// ReservationsAPI is the slice of the booking API the checkout flow needs.
type ReservationsAPI interface {
	CreateReservation(ctx context.Context, req hotelapi.ReservationRequest) (*hotelapi.Reservation, error)
	CreatePaymentPreference(ctx context.Context, req hotelapi.PaymentPreferenceRequest) (*hotelapi.PaymentPreference, error)
}

// SessionReader loads the search session a checkout runs against.
type SessionReader interface {
	Get(ctx context.Context, id string) (*search.Session, error)
}

// Service orchestrates the two checkout paths. It never retries: any
// failure returns the flow to the guest in a retryable state.
type Service struct {
	api      ReservationsAPI
	sessions SessionReader
	locks    ActionLocker
}

func NewService(api ReservationsAPI, sessions SessionReader, locks ActionLocker) *Service {
	return &Service{
		api:      api,
		sessions: sessions,
		locks:    locks,
	}
}

// Reserve submits a direct reservation for the selected room and returns
// the server-assigned confirmation code.
func (s *Service) Reserve(ctx context.Context, sessionID string, req CheckoutRequest) (*ReservationConfirmation, error) {
	release, err := s.acquire(ctx, sessionID, ActionReserve)
	if err != nil {
		return nil, err
	}
	defer release()

	stay, err := s.loadStay(ctx, sessionID, req.RoomID)
	if err != nil {
		return nil, err
	}

	reservation, err := s.api.CreateReservation(ctx, s.reservationRequest(req, stay))
	if err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	return &ReservationConfirmation{
		Code:    reservation.Code,
		Summary: stay.summary(),
	}, nil
}

// PayNow creates a gateway payment preference for the selected room and
// returns the redirect target together with the summary the guest must
// acknowledge before leaving the application's origin.
func (s *Service) PayNow(ctx context.Context, sessionID string, req CheckoutRequest) (*PaymentHandoff, error) {
	release, err := s.acquire(ctx, sessionID, ActionPay)
	if err != nil {
		return nil, err
	}
	defer release()

	stay, err := s.loadStay(ctx, sessionID, req.RoomID)
	if err != nil {
		return nil, err
	}

	preference, err := s.api.CreatePaymentPreference(ctx, hotelapi.PaymentPreferenceRequest{
		ReservationRequest: s.reservationRequest(req, stay),
		RoomTitle:          stay.room.Title,
		RoomNumber:         stay.room.Number,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment preference: %w", err)
	}

	redirectURL := preference.RedirectURL()
	if redirectURL == "" {
		return nil, ErrMissingRedirectTarget
	}

	return &PaymentHandoff{
		RedirectURL: redirectURL,
		Summary:     stay.summary(),
	}, nil
}

func (s *Service) acquire(ctx context.Context, sessionID, action string) (func(), error) {
	acquired, current, err := s.locks.Acquire(ctx, sessionID, action)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%w (action: %s)", ErrCheckoutInProgress, current)
	}
	return func() {
		if err := s.locks.Release(context.WithoutCancel(ctx), sessionID, action); err != nil {
			log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to release checkout lock")
		}
	}, nil
}

// stay is the resolved room + criteria + freshly computed quote for one
// checkout attempt. The total is always recomputed here; a client-displayed
// price is never trusted.
type stay struct {
	room     hotelapi.Room
	criteria search.Criteria
	quote    pricing.Quote
}

func (s *Service) loadStay(ctx context.Context, sessionID, roomID string) (*stay, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil || sess.State != search.StateResults {
		return nil, ErrNoActiveResults
	}

	room, ok := sess.Room(roomID)
	if !ok {
		return nil, ErrRoomNotInResults
	}

	criteria, err := sess.Criteria()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	return &stay{
		room:     room,
		criteria: criteria,
		quote:    pricing.ForStay(room, criteria.CheckIn, criteria.CheckOut),
	}, nil
}

func (s *Service) reservationRequest(req CheckoutRequest, st *stay) hotelapi.ReservationRequest {
	return hotelapi.ReservationRequest{
		GuestName:  req.FullName,
		GuestEmail: req.Email,
		GuestPhone: req.Phone,
		RoomID:     st.room.ID,
		Adults:     st.criteria.Adults,
		Children:   st.criteria.Children,
		CheckIn:    st.criteria.CheckInString(),
		CheckOut:   st.criteria.CheckOutString(),
		TotalPrice: st.quote.Total,
	}
}

func (st *stay) summary() StaySummary {
	return StaySummary{
		RoomTitle: st.room.Title,
		CheckIn:   st.criteria.CheckInString(),
		CheckOut:  st.criteria.CheckOutString(),
		Adults:    st.criteria.Adults,
		Children:  st.criteria.Children,
		Nights:    st.quote.Nights,
		Total:     st.quote.Total,
	}
}
