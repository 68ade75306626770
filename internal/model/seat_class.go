package model

// SeatClass describes a fare tier (economy, business, ...) on a specific
// airplane.  Exactly one row exists per (airline, airplane, class).  The
// capacity bounds how many tickets may ever be sold for that class on any
// flight using the airplane, and the price factor scales the flight's base
// price into the charged price.  Both capacity and price factor are
// positive by schema constraint.
type SeatClass struct {
	AirlineName string  // seat_class.airline_name
	AirplaneID  uint64  // seat_class.airplane_id
	Class       string  // seat_class.class
	Capacity    int     // seat_class.capacity
	PriceFactor float64 // seat_class.price_factor
}
