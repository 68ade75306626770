package model

// Ticket is a single sold seat on a flight.  Rows are created only by the
// purchase engine, inside the same transaction as their Purchase row, and
// are immutable afterwards.  The charged price is fixed at purchase time so
// later base-price changes never rewrite history.
type Ticket struct {
	ID           uint64  // ticket.id (auto increment)
	SeatClass    string  // ticket.seat_class
	AirplaneID   uint64  // ticket.airplane_id
	FlightNum    string  // ticket.flight_num
	AirlineName  string  // ticket.airline_name
	PriceCharged float64 // ticket.price_charged, rounded to 2 decimals
}
