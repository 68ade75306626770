// Package booking implements the ticket-purchase transaction engine.  It
// validates a purchase request, checks remaining capacity for the requested
// seat class under a row lock, computes the charged price and records the
// ticket together with its purchase row as one atomic unit.  The sentinel
// errors below let handlers map failures onto HTTP statuses with errors.Is
// and errors.As, mirroring how repository-level sentinels are used elsewhere
// in this codebase.
package booking

import (
	"errors"
	"fmt"
)

// ErrMissingFields is returned before any storage interaction when a
// required purchase field is empty.  Handlers should translate this into
// an HTTP 400 response.
var ErrMissingFields = errors.New("missing purchase fields")

// ErrFlightNotFound is returned when no flight exists for the requested
// (airline, flight number) pair.  Handlers should translate this into an
// HTTP 404 response.
var ErrFlightNotFound = errors.New("flight not found")

// ErrSeatClassUnavailable is returned when the airplane serving the flight
// has no row for the requested seat class.  Handlers should translate this
// into an HTTP 400 response.
var ErrSeatClassUnavailable = errors.New("seat class not available for this airplane")

// SoldOutError is returned when every seat of the requested class has
// already been sold.  It carries the class name so the client-facing
// message can identify which tier ran out.  Handlers should translate it
// into an HTTP 400 response.
type SoldOutError struct {
	Class string
}

func (e *SoldOutError) Error() string {
	return fmt.Sprintf("%s is sold out", e.Class)
}
