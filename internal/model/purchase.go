package model

import "time"

// Purchase links a ticket to the customer who bought it and, when the sale
// went through a booking agent, to that agent.  ticket_id carries a UNIQUE
// constraint so the 1:1 pairing with Ticket is enforced by the schema as
// well as by the engine's transaction.  purchase_date has date-only
// granularity on the wire.
type Purchase struct {
	ID            uint64    // purchase.id (auto increment)
	TicketID      uint64    // purchase.ticket_id (unique)
	CustomerEmail string    // purchase.customer_email
	AgentEmail    *string   // purchase.agent_email, nil for direct sales
	PurchaseDate  time.Time // purchase.purchase_date (DATE column)
}
