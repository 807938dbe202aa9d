package search

import "time"

const dateLayout = "2006-01-02"

// Criteria is a validated search request: check-in, check-out and occupancy.
// It is immutable once built; downstream code receives it by value.
type Criteria struct {
	CheckIn  time.Time
	CheckOut time.Time
	Adults   int
	Children int
}

// ParseCriteria validates raw search input and builds the criteria.
// Rules run in order and stop at the first failure:
//  1. both dates present
//  2. both dates well-formed calendar dates
//  3. check-out strictly after check-in (calendar-day comparison)
//  4. at least one adult
//  5. children not negative
//
// No I/O happens here; a failed parse must never reach the inventory.
func ParseCriteria(checkIn, checkOut string, adults, children int) (Criteria, error) {
	if checkIn == "" || checkOut == "" {
		return Criteria{}, ErrMissingDates
	}

	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return Criteria{}, ErrInvalidDateFormat
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return Criteria{}, ErrInvalidDateFormat
	}

	if !out.After(in) {
		return Criteria{}, ErrInvalidDateOrder
	}

	if adults < 1 {
		return Criteria{}, ErrNoAdultGuest
	}
	if children < 0 {
		return Criteria{}, ErrNegativeChildren
	}

	return Criteria{
		CheckIn:  in,
		CheckOut: out,
		Adults:   adults,
		Children: children,
	}, nil
}

// TotalGuests returns the guest count sent to the inventory.
func (c Criteria) TotalGuests() int {
	return c.Adults + c.Children
}

// CheckInString returns the check-in date in wire format.
func (c Criteria) CheckInString() string {
	return c.CheckIn.Format(dateLayout)
}

// CheckOutString returns the check-out date in wire format.
func (c Criteria) CheckOutString() string {
	return c.CheckOut.Format(dateLayout)
}

// MinCheckIn returns the earliest selectable check-in date: today in the
// given clock's local date. This is the UI input bound; it layers on top of
// ParseCriteria, it does not replace it.
func MinCheckIn(now time.Time) string {
	return now.Format(dateLayout)
}

// MinCheckOut returns the earliest selectable check-out date: the chosen
// check-in when set, otherwise today.
func MinCheckOut(now time.Time, checkIn string) string {
	if checkIn == "" {
		return MinCheckIn(now)
	}
	if _, err := time.Parse(dateLayout, checkIn); err != nil {
		return MinCheckIn(now)
	}
	return checkIn
}
