package search

// SearchRequest is the availability search input from the frontend.
// Validation runs through ParseCriteria so rule order and short-circuiting
// match the checkout-blocking behavior the UI relies on.
type SearchRequest struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
}

// RoomResult is one offer with its quote for the searched date range.
type RoomResult struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Capacity     int      `json:"capacity"`
	Images       []string `json:"images"`
	Amenities    []string `json:"amenities"`
	BaseRate     float64  `json:"base_rate"`
	PromoRate    float64  `json:"promo_rate,omitempty"`
	RatePerNight float64  `json:"rate_per_night"`
	Total        float64  `json:"total"`
}

// SearchResponse carries the committed result set together with the
// criteria that produced it.
type SearchResponse struct {
	SessionID   string       `json:"session_id"`
	CheckIn     string       `json:"check_in"`
	CheckOut    string       `json:"check_out"`
	Adults      int          `json:"adults"`
	Children    int          `json:"children"`
	TotalGuests int          `json:"total_guests"`
	Nights      int          `json:"nights"`
	Rooms       []RoomResult `json:"rooms"`
}

// SessionStateResponse reports the session render state. Results is set
// only in the results state, so the three states stay mutually exclusive
// on the wire too.
type SessionStateResponse struct {
	SessionID string          `json:"session_id"`
	State     State           `json:"state"`
	Results   *SearchResponse `json:"results,omitempty"`
}

// ConstraintsResponse carries the date input bounds for the search form.
type ConstraintsResponse struct {
	MinCheckIn  string `json:"min_check_in"`
	MinCheckOut string `json:"min_check_out"`
}
