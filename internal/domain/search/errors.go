package search

import "errors"

var (
	ErrMissingDates      = errors.New("check-in and check-out dates are required")
	ErrInvalidDateFormat = errors.New("dates must be in YYYY-MM-DD format")
	ErrInvalidDateOrder  = errors.New("check-out date must be after check-in date")
	ErrNoAdultGuest      = errors.New("at least one adult guest is required")
	ErrNegativeChildren  = errors.New("children count cannot be negative")

	// ErrSearchSuperseded means a newer search for the same session was
	// started while this one was in flight; its results were discarded.
	ErrSearchSuperseded = errors.New("search superseded by a newer search")
)
