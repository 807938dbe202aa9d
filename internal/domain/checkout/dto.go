package checkout

// CheckoutRequest carries the selected room and the guest contact data.
// All contact fields are required before either action may run.
type CheckoutRequest struct {
	RoomID   string `json:"room_id" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
}

// StaySummary is the recap shown to the guest before or after a terminal
// action: which room, which dates, what total.
type StaySummary struct {
	RoomTitle string  `json:"room_title"`
	CheckIn   string  `json:"check_in"`
	CheckOut  string  `json:"check_out"`
	Adults    int     `json:"adults"`
	Children  int     `json:"children"`
	Nights    int     `json:"nights"`
	Total     float64 `json:"total"`
}

// ReservationConfirmation is the reserve-path success payload. Code is the
// durable proof-of-booking and must be rendered prominently.
type ReservationConfirmation struct {
	Code    string      `json:"code"`
	Summary StaySummary `json:"summary"`
}

// PaymentHandoff is the pay-path success payload. The frontend shows the
// summary as a blocking confirmation and only then navigates the browsing
// context to RedirectURL, which leaves the application's origin.
type PaymentHandoff struct {
	RedirectURL string      `json:"redirect_url"`
	Summary     StaySummary `json:"summary"`
}
