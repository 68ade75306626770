package booking

import (
	"context"
	"time"

	"github.com/skyora/flight-ticketing/internal/model"
	"github.com/skyora/flight-ticketing/internal/pricing"
)

// PurchaseRequest carries the fields of a purchase attempt.  AgentEmail is
// empty for direct customer sales; all other fields are required.
type PurchaseRequest struct {
	CustomerEmail string `json:"customer_email"`
	AgentEmail    string `json:"agent_email,omitempty"`
	AirlineName   string `json:"airline_name"`
	FlightNum     string `json:"flight_num"`
	SeatClass     string `json:"seat_class"`
}

// PurchaseResult reports the outcome of a successful purchase.
type PurchaseResult struct {
	TicketID     uint64  `json:"ticket_id"`
	PriceCharged float64 `json:"price_charged"`
}

// Inventory is the read-only sold/remaining view for one seat class of a
// flight, as exposed by the sold probe endpoint.
type Inventory struct {
	Airline   string `json:"airline"`
	FlightNum string `json:"flight_num"`
	SeatClass string `json:"seat_class"`
	Sold      int    `json:"sold"`
	Capacity  int    `json:"capacity"`
	Remaining int    `json:"remaining"`
}

// Engine orchestrates ticket purchases against a Store.  It owns the
// capacity invariant: for any (airline, flight, seat class) the number of
// tickets never exceeds the seat class capacity, regardless of how many
// purchases run concurrently.  The engine keeps no state between calls;
// every request is one transaction against the store.
type Engine struct {
	store Store
}

// NewEngine returns an Engine bound to the given store.
func NewEngine(store Store) *Engine {
	if store == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{store: store}
}

// Purchase executes one ticket purchase.  The flow inside the transaction:
//
//  1. load the flight (ErrFlightNotFound when absent)
//  2. load the seat class FOR UPDATE (ErrSeatClassUnavailable when absent)
//  3. count issued tickets under that lock; refuse with SoldOutError when
//     the class is at capacity
//  4. price the ticket and insert the ticket and purchase rows
//
// Field validation happens before the transaction starts, so malformed
// requests never touch the database.  Any error after step 1 rolls the
// whole transaction back, so a ticket row can never outlive a failed
// purchase row insert or vice versa.
func (e *Engine) Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error) {
	if req.CustomerEmail == "" || req.AirlineName == "" || req.FlightNum == "" || req.SeatClass == "" {
		return nil, ErrMissingFields
	}

	var result PurchaseResult
	err := e.store.WithinTx(ctx, func(tx Tx) error {
		flight, err := tx.Flight(ctx, req.AirlineName, req.FlightNum)
		if err != nil {
			return err
		}
		if flight == nil {
			return ErrFlightNotFound
		}

		// The lock taken here is held until commit and serializes all
		// purchases for this seat class, making the sold count below
		// stable for the rest of the transaction.
		sc, err := tx.SeatClassForUpdate(ctx, req.AirlineName, flight.AirplaneID, req.SeatClass)
		if err != nil {
			return err
		}
		if sc == nil {
			return ErrSeatClassUnavailable
		}

		sold, err := tx.CountTickets(ctx, req.AirlineName, req.FlightNum, req.SeatClass)
		if err != nil {
			return err
		}
		if sold >= sc.Capacity {
			return &SoldOutError{Class: req.SeatClass}
		}

		ticket := &model.Ticket{
			SeatClass:    req.SeatClass,
			AirplaneID:   flight.AirplaneID,
			FlightNum:    req.FlightNum,
			AirlineName:  req.AirlineName,
			PriceCharged: pricing.Resolve(flight.Price, sc.PriceFactor),
		}
		if err := tx.InsertTicket(ctx, ticket); err != nil {
			return err
		}

		purchase := &model.Purchase{
			TicketID:      ticket.ID,
			CustomerEmail: req.CustomerEmail,
			PurchaseDate:  time.Now().UTC(),
		}
		if req.AgentEmail != "" {
			agent := req.AgentEmail
			purchase.AgentEmail = &agent
		}
		if err := tx.InsertPurchase(ctx, purchase); err != nil {
			return err
		}

		result = PurchaseResult{TicketID: ticket.ID, PriceCharged: ticket.PriceCharged}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SoldCount reports how many tickets have been sold for one seat class of a
// flight, together with the class capacity and the remaining seats.  The
// probe runs in a transaction for a consistent snapshot but takes no locks;
// the answer may be stale by the time the caller acts on it.
func (e *Engine) SoldCount(ctx context.Context, airline, flightNum, class string) (*Inventory, error) {
	var inv Inventory
	err := e.store.WithinTx(ctx, func(tx Tx) error {
		flight, err := tx.Flight(ctx, airline, flightNum)
		if err != nil {
			return err
		}
		if flight == nil {
			return ErrFlightNotFound
		}
		sc, err := tx.SeatClass(ctx, airline, flight.AirplaneID, class)
		if err != nil {
			return err
		}
		if sc == nil {
			return ErrSeatClassUnavailable
		}
		sold, err := tx.CountTickets(ctx, airline, flightNum, class)
		if err != nil {
			return err
		}
		remaining := sc.Capacity - sold
		if remaining < 0 {
			remaining = 0
		}
		inv = Inventory{
			Airline:   airline,
			FlightNum: flightNum,
			SeatClass: class,
			Sold:      sold,
			Capacity:  sc.Capacity,
			Remaining: remaining,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
