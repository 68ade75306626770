package booking

import (
	"context"

	"github.com/skyora/flight-ticketing/internal/model"
)

// Store is the persistence gateway the engine runs against.  The MySQL
// implementation lives in internal/repository; tests substitute an
// in-memory store.  WithinTx must provide all-or-nothing semantics: if fn
// returns an error nothing fn did through the Tx may remain visible.
// Implementations may transparently retry fn a bounded number of times on
// serialization conflicts, so fn must be safe to re-run from the top.
type Store interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of operations available inside one transaction.  Lookup
// methods return (nil, nil) when the row does not exist; the engine turns
// that into its own not-found errors.
type Tx interface {
	// Flight loads a flight by airline and flight number.
	Flight(ctx context.Context, airline, flightNum string) (*model.Flight, error)

	// SeatClass loads a seat-class row without locking it.  Used by
	// read-only inventory probes.
	SeatClass(ctx context.Context, airline string, airplaneID uint64, class string) (*model.SeatClass, error)

	// SeatClassForUpdate loads a seat-class row and holds an exclusive
	// lock on it until the transaction ends.  Every purchase for the same
	// (airline, airplane, class) serializes on this lock, which is what
	// closes the check-then-insert race on capacity.
	SeatClassForUpdate(ctx context.Context, airline string, airplaneID uint64, class string) (*model.SeatClass, error)

	// CountTickets returns how many tickets have been issued for the
	// given airline, flight number and seat class.
	CountTickets(ctx context.Context, airline, flightNum, class string) (int, error)

	// InsertTicket persists a new ticket and populates its generated ID.
	InsertTicket(ctx context.Context, t *model.Ticket) error

	// InsertPurchase persists the purchase row for a ticket created
	// earlier in the same transaction.
	InsertPurchase(ctx context.Context, p *model.Purchase) error
}
