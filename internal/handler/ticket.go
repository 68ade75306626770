package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/skyora/flight-ticketing/internal/booking" // purchase transaction engine
	"github.com/skyora/flight-ticketing/internal/queue"   // event payloads for the broker
)

// TicketHandler exposes the ticket purchase and sold-count endpoints.  The
// transactional work lives in the booking engine; this layer only binds the
// typed request body, maps engine errors onto HTTP statuses and publishes
// the purchase event once the transaction has committed.  Publish may be
// nil when no broker is configured.
type TicketHandler struct {
	Engine  *booking.Engine
	Publish func(ctx context.Context, ev queue.TicketPurchasedEvent) error
}

// NewTicketHandler constructs a TicketHandler.  The engine must be non-nil.
func NewTicketHandler(engine *booking.Engine, publish func(ctx context.Context, ev queue.TicketPurchasedEvent) error) *TicketHandler {
	if engine == nil {
		panic("nil engine passed to NewTicketHandler")
	}
	return &TicketHandler{Engine: engine, Publish: publish}
}

// Purchase handles POST /tickets/purchase.  The body must contain
// customer_email, airline_name, flight_num and seat_class; agent_email is
// optional and records the booking agent for commission tracking.  On
// success it responds 200 with the new ticket ID and the charged price.
// Failures map to 400 (missing fields, unknown seat class, sold out),
// 404 (unknown flight) or 500 (storage failure, no internal detail leaked).
func (h *TicketHandler) Purchase(c echo.Context) error {
	var req booking.PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	res, err := h.Engine.Purchase(ctx, req)
	if err != nil {
		var soldOut *booking.SoldOutError
		switch {
		case errors.Is(err, booking.ErrMissingFields):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, booking.ErrFlightNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		case errors.Is(err, booking.ErrSeatClassUnavailable):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.As(err, &soldOut):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": soldOut.Error()})
		default:
			log.Printf("ticket: purchase failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	// The purchase is durable at this point; a publish failure is logged
	// inside the publisher and must not fail the request.
	if h.Publish != nil {
		_ = h.Publish(ctx, queue.TicketPurchasedEvent{
			TicketID:      res.TicketID,
			AirlineName:   req.AirlineName,
			FlightNum:     req.FlightNum,
			SeatClass:     req.SeatClass,
			CustomerEmail: req.CustomerEmail,
			AgentEmail:    req.AgentEmail,
			PriceCharged:  res.PriceCharged,
			PurchasedAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":       "ticket purchased successfully",
		"ticket_id":     res.TicketID,
		"price_charged": res.PriceCharged,
	})
}

// Sold handles GET /tickets/sold/:airline/:flight_num/:seat_class.  It is a
// read-only inventory probe returning the sold count, the class capacity
// and the remaining seats.  Unknown flights yield 404 and unknown seat
// classes 400, matching the purchase endpoint's failure mapping.
func (h *TicketHandler) Sold(c echo.Context) error {
	airline := c.Param("airline")
	flightNum := c.Param("flight_num")
	class := c.Param("seat_class")
	if airline == "" || flightNum == "" || class == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing path parameters"})
	}
	inv, err := h.Engine.SoldCount(c.Request().Context(), airline, flightNum, class)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrFlightNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		case errors.Is(err, booking.ErrSeatClassUnavailable):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			log.Printf("ticket: sold probe failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.JSON(http.StatusOK, inv)
}
