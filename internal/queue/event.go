// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// TicketPurchasedEvent is published after a ticket purchase has committed.
// It carries enough information for downstream consumers (notifications,
// revenue reporting) to act without querying the primary database.
type TicketPurchasedEvent struct {
	TicketID      uint64  `json:"ticket_id"`
	AirlineName   string  `json:"airline_name"`
	FlightNum     string  `json:"flight_num"`
	SeatClass     string  `json:"seat_class"`
	CustomerEmail string  `json:"customer_email"`
	AgentEmail    string  `json:"agent_email,omitempty"`
	PriceCharged  float64 `json:"price_charged"`
	PurchasedAt   string  `json:"purchased_at"`
}
