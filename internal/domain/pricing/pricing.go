package pricing

import (
	"math"
	"time"

	"github.com/catalinahotel/booking-api/internal/pkg/hotelapi"
)

// Quote is the priced stay for one room over one date range. It is derived
// on demand and never stored; callers recompute it whenever the dates or the
// selected room change.
type Quote struct {
	Nights       int     `json:"nights"`
	RatePerNight float64 `json:"rate_per_night"`
	Promo        bool    `json:"promo"`
	Total        float64 `json:"total"`
}

// Nights returns the number of nights between check-in and check-out,
// counted on calendar days. Both instants are normalized to midnight first
// so a stray time-of-day component can never shift the count.
func Nights(checkIn, checkOut time.Time) int {
	in := midnight(checkIn)
	out := midnight(checkOut)
	days := out.Sub(in).Hours() / 24
	return int(math.Ceil(days))
}

// EffectiveRate returns the nightly rate for a room: the promotional rate
// when one is set, otherwise the base rate.
func EffectiveRate(room hotelapi.Room) float64 {
	if room.PromoPrice > 0 {
		return room.PromoPrice
	}
	return room.Price
}

// ForStay computes the quote for a room over the given date range.
func ForStay(room hotelapi.Room, checkIn, checkOut time.Time) Quote {
	nights := Nights(checkIn, checkOut)
	rate := EffectiveRate(room)
	return Quote{
		Nights:       nights,
		RatePerNight: rate,
		Promo:        room.PromoPrice > 0,
		Total:        rate * float64(nights),
	}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
