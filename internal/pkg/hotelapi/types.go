package hotelapi

// Wire types for the remote booking API. Field names follow the upstream
// contract, which is Spanish throughout.

// Room represents a room offer as returned by the inventory for a search.
// A zero PromoPrice means no promotion; the effective nightly rate is then
// the base Price.
type Room struct {
	ID          string   `json:"_id"`
	Title       string   `json:"titulo"`
	Description string   `json:"descripcion"`
	Number      string   `json:"numero"`
	Capacity    int      `json:"capacidadPersonas"`
	Price       float64  `json:"precio"`
	PromoPrice  float64  `json:"precioPromocion,omitempty"`
	Images      []string `json:"imagenes"`
	Amenities   []string `json:"amenidades"`
}

// AvailabilityQuery carries the search parameters for the inventory call.
type AvailabilityQuery struct {
	CheckIn     string // YYYY-MM-DD
	CheckOut    string // YYYY-MM-DD
	TotalGuests int
}

type availabilityResponse struct {
	Rooms []Room `json:"habitaciones"`
}

// ReservationRequest is the payload for creating a pending reservation.
type ReservationRequest struct {
	GuestName  string  `json:"nombreCliente"`
	GuestEmail string  `json:"emailCliente"`
	GuestPhone string  `json:"telefonoCliente"`
	RoomID     string  `json:"habitacionId"`
	Adults     int     `json:"numAdultos"`
	Children   int     `json:"numNinos"`
	CheckIn    string  `json:"fechaCheckIn"`
	CheckOut   string  `json:"fechaCheckOut"`
	TotalPrice float64 `json:"precioTotal"`
}

// Reservation is the server-assigned reservation record. Code is the
// human-readable confirmation code shown to the guest.
type Reservation struct {
	ID     string `json:"_id"`
	Code   string `json:"codigoReserva"`
	Status string `json:"estado"`
}

type reservationResponse struct {
	Reservation Reservation `json:"reserva"`
}

// PaymentPreferenceRequest is the payload for initiating a gateway payment.
// It extends the reservation payload with room display metadata the gateway
// shows on its hosted checkout.
type PaymentPreferenceRequest struct {
	ReservationRequest
	RoomTitle  string `json:"tituloHabitacion"`
	RoomNumber string `json:"numeroHabitacion"`
}

// PaymentPreference carries the gateway redirect target. The sandbox URL is
// only populated by non-production upstream environments.
type PaymentPreference struct {
	InitPoint        string `json:"initPoint"`
	SandboxInitPoint string `json:"sandboxInitPoint"`
}

// RedirectURL returns the usable gateway URL, preferring the production
// init point. Empty when the upstream returned neither.
func (p PaymentPreference) RedirectURL() string {
	if p.InitPoint != "" {
		return p.InitPoint
	}
	return p.SandboxInitPoint
}
