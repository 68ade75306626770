package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/skyora/flight-ticketing/internal/booking"
	"github.com/skyora/flight-ticketing/internal/model"
	"github.com/skyora/flight-ticketing/internal/queue"
)

// stubStore is a canned single-flight store: "Jet Blue" AA100 on airplane 7
// at base price 100.00, with an economy class (factor 1.5) of configurable
// capacity and pre-sold count.  Inserts are recorded so tests can assert
// what reached the gateway.
type stubStore struct {
	capacity  int
	sold      int
	tickets   []model.Ticket
	purchases []model.Purchase
}

func (s *stubStore) WithinTx(ctx context.Context, fn func(tx booking.Tx) error) error {
	return fn(&stubTx{store: s})
}

type stubTx struct {
	store *stubStore
}

func (t *stubTx) Flight(ctx context.Context, airline, flightNum string) (*model.Flight, error) {
	if airline == "Jet Blue" && flightNum == "AA100" {
		return &model.Flight{AirlineName: airline, FlightNum: flightNum, AirplaneID: 7, Price: 100.00}, nil
	}
	return nil, nil
}

func (t *stubTx) SeatClass(ctx context.Context, airline string, airplaneID uint64, class string) (*model.SeatClass, error) {
	if class == "economy" {
		return &model.SeatClass{AirlineName: airline, AirplaneID: airplaneID, Class: class, Capacity: t.store.capacity, PriceFactor: 1.5}, nil
	}
	return nil, nil
}

func (t *stubTx) SeatClassForUpdate(ctx context.Context, airline string, airplaneID uint64, class string) (*model.SeatClass, error) {
	return t.SeatClass(ctx, airline, airplaneID, class)
}

func (t *stubTx) CountTickets(ctx context.Context, airline, flightNum, class string) (int, error) {
	return t.store.sold + len(t.store.tickets), nil
}

func (t *stubTx) InsertTicket(ctx context.Context, tk *model.Ticket) error {
	tk.ID = uint64(len(t.store.tickets) + 1)
	t.store.tickets = append(t.store.tickets, *tk)
	return nil
}

func (t *stubTx) InsertPurchase(ctx context.Context, p *model.Purchase) error {
	p.ID = uint64(len(t.store.purchases) + 1)
	t.store.purchases = append(t.store.purchases, *p)
	return nil
}

func newTestHandler(store *stubStore, published *[]queue.TicketPurchasedEvent) *TicketHandler {
	publish := func(ctx context.Context, ev queue.TicketPurchasedEvent) error {
		if published != nil {
			*published = append(*published, ev)
		}
		return nil
	}
	return NewTicketHandler(booking.NewEngine(store), publish)
}

func doPurchase(t *testing.T, h *TicketHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/tickets/purchase", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Purchase(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func doSold(t *testing.T, h *TicketHandler, airline, flightNum, class string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/tickets/sold/:airline/:flight_num/:seat_class")
	c.SetParamNames("airline", "flight_num", "seat_class")
	c.SetParamValues(airline, flightNum, class)
	if err := h.Sold(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestPurchaseEndpoint_Success(t *testing.T) {
	store := &stubStore{capacity: 1}
	var published []queue.TicketPurchasedEvent
	h := newTestHandler(store, &published)

	rec := doPurchase(t, h, `{"customer_email":"a@x.com","airline_name":"Jet Blue","flight_num":"AA100","seat_class":"economy"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message      string  `json:"message"`
		TicketID     uint64  `json:"ticket_id"`
		PriceCharged float64 `json:"price_charged"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.TicketID == 0 || resp.PriceCharged != 150.00 || resp.Message == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(published))
	}
	ev := published[0]
	if ev.TicketID != resp.TicketID || ev.PriceCharged != 150.00 || ev.CustomerEmail != "a@x.com" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestPurchaseEndpoint_MissingFields(t *testing.T) {
	h := newTestHandler(&stubStore{capacity: 1}, nil)

	rec := doPurchase(t, h, `{"customer_email":"a@x.com","airline_name":"Jet Blue","flight_num":"AA100"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing purchase fields") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestPurchaseEndpoint_FlightNotFound(t *testing.T) {
	h := newTestHandler(&stubStore{capacity: 1}, nil)

	rec := doPurchase(t, h, `{"customer_email":"a@x.com","airline_name":"Jet Blue","flight_num":"ZZ999","seat_class":"economy"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "flight not found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestPurchaseEndpoint_SeatClassUnavailable(t *testing.T) {
	h := newTestHandler(&stubStore{capacity: 1}, nil)

	rec := doPurchase(t, h, `{"customer_email":"a@x.com","airline_name":"Jet Blue","flight_num":"AA100","seat_class":"first"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "seat class not available") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestPurchaseEndpoint_SoldOut(t *testing.T) {
	store := &stubStore{capacity: 1, sold: 1}
	var published []queue.TicketPurchasedEvent
	h := newTestHandler(store, &published)

	rec := doPurchase(t, h, `{"customer_email":"a@x.com","airline_name":"Jet Blue","flight_num":"AA100","seat_class":"economy"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "economy is sold out") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
	if len(published) != 0 {
		t.Errorf("no event should be published for a failed purchase")
	}
}

func TestSoldEndpoint(t *testing.T) {
	h := newTestHandler(&stubStore{capacity: 5, sold: 3}, nil)

	rec := doSold(t, h, "Jet Blue", "AA100", "economy")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var inv booking.Inventory
	if err := json.Unmarshal(rec.Body.Bytes(), &inv); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if inv.Sold != 3 || inv.Capacity != 5 || inv.Remaining != 2 {
		t.Errorf("got sold=%d capacity=%d remaining=%d, want 3/5/2", inv.Sold, inv.Capacity, inv.Remaining)
	}
}

func TestSoldEndpoint_Errors(t *testing.T) {
	h := newTestHandler(&stubStore{capacity: 5}, nil)

	if rec := doSold(t, h, "Jet Blue", "ZZ999", "economy"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown flight: expected 404, got %d", rec.Code)
	}
	if rec := doSold(t, h, "Jet Blue", "AA100", "first"); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown class: expected 400, got %d", rec.Code)
	}
}
