package pricing

import (
	"testing"
	"time"

	"github.com/catalinahotel/booking-api/internal/pkg/hotelapi"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNights(t *testing.T) {
	cases := []struct {
		checkIn  string
		checkOut string
		want     int
	}{
		{"2025-03-10", "2025-03-12", 2},
		{"2025-03-10", "2025-03-11", 1},
		{"2025-02-27", "2025-03-02", 3},
		{"2025-12-30", "2026-01-02", 3},
	}
	for _, c := range cases {
		got := Nights(date(c.checkIn), date(c.checkOut))
		if got != c.want {
			t.Fatalf("Nights(%s, %s) = %d, want %d", c.checkIn, c.checkOut, got, c.want)
		}
	}
}

func TestNightsIgnoresTimeOfDay(t *testing.T) {
	// A late check-in instant and an early check-out instant must not
	// change the calendar-day count.
	in := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	out := time.Date(2025, 3, 12, 0, 15, 0, 0, time.UTC)
	if got := Nights(in, out); got != 2 {
		t.Fatalf("expected 2 nights, got %d", got)
	}
}

func TestEffectiveRate(t *testing.T) {
	promo := hotelapi.Room{Price: 100, PromoPrice: 80}
	if got := EffectiveRate(promo); got != 80 {
		t.Fatalf("expected promo rate 80, got %v", got)
	}

	regular := hotelapi.Room{Price: 100}
	if got := EffectiveRate(regular); got != 100 {
		t.Fatalf("expected base rate 100, got %v", got)
	}

	zeroPromo := hotelapi.Room{Price: 100, PromoPrice: 0}
	if got := EffectiveRate(zeroPromo); got != 100 {
		t.Fatalf("zero promo must fall back to base rate, got %v", got)
	}
}

func TestForStay(t *testing.T) {
	room := hotelapi.Room{Price: 100, PromoPrice: 80}
	q := ForStay(room, date("2025-03-10"), date("2025-03-13"))

	if q.Nights != 3 {
		t.Fatalf("expected 3 nights, got %d", q.Nights)
	}
	if q.RatePerNight != 80 || !q.Promo {
		t.Fatalf("expected promo rate 80, got %+v", q)
	}
	if q.Total != 240 {
		t.Fatalf("expected total 240, got %v", q.Total)
	}

	// Same inputs, same quote.
	again := ForStay(room, date("2025-03-10"), date("2025-03-13"))
	if again != q {
		t.Fatalf("quote not deterministic: %+v vs %+v", q, again)
	}
}
