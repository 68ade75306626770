// Package repository implements the booking persistence gateway on MySQL.
// All reads and writes of the flight, seat_class, ticket and purchase
// relations go through Store; nothing else in the process mutates ticket or
// purchase rows.  Column names follow the shared platform schema and must
// be treated as a fixed wire contract.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/go-sql-driver/mysql"

	"github.com/skyora/flight-ticketing/internal/booking"
	"github.com/skyora/flight-ticketing/internal/model"
)

// maxTxAttempts bounds transparent retries of a transaction that lost a
// lock conflict.  After the last attempt the MySQL error is surfaced.
const maxTxAttempts = 3

// Store implements booking.Store over a pooled *sql.DB.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store bound to the given database pool.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// DB exposes the underlying pool for health checks and wiring.
func (s *Store) DB() *sql.DB { return s.db }

// WithinTx runs fn inside a transaction and commits when fn returns nil.
// On any error the transaction is rolled back, including when the commit
// itself fails, so partial writes are never observable.  Deadlocks and
// lock-wait timeouts are retried up to maxTxAttempts times; fn must
// therefore be re-runnable from the top.
func (s *Store) WithinTx(ctx context.Context, fn func(tx booking.Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.runTx(ctx, fn)
		if err == nil || !retryable(err) {
			return err
		}
		log.Printf("repository: lock conflict, retrying tx (attempt %d/%d): %v", attempt, maxTxAttempts, err)
	}
	return err
}

func (s *Store) runTx(ctx context.Context, fn func(tx booking.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&storeTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// retryable reports whether err is a MySQL deadlock (1213) or lock wait
// timeout (1205).  Both can occur when concurrent purchases contend for
// the same seat_class row and are safe to retry.
func retryable(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1213 || me.Number == 1205
	}
	return false
}

// storeTx implements booking.Tx on an open *sql.Tx.
type storeTx struct {
	tx *sql.Tx
}

// Flight loads a flight by (airline_name, flight_num).  Returns (nil, nil)
// when no such flight exists.
func (t *storeTx) Flight(ctx context.Context, airline, flightNum string) (*model.Flight, error) {
	const q = `SELECT airline_name, flight_num, airplane_id,
	                  departure_airport, arrival_airport,
	                  departure_time, arrival_time, status, price
	           FROM flight
	           WHERE airline_name = ? AND flight_num = ?`
	var f model.Flight
	err := t.tx.QueryRowContext(ctx, q, airline, flightNum).Scan(
		&f.AirlineName, &f.FlightNum, &f.AirplaneID,
		&f.DepartureAirport, &f.ArrivalAirport,
		&f.DepartureTime, &f.ArrivalTime, &f.Status, &f.Price,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// SeatClass loads a seat-class row without locking it.
func (t *storeTx) SeatClass(ctx context.Context, airline string, airplaneID uint64, class string) (*model.SeatClass, error) {
	const q = `SELECT airline_name, airplane_id, class, capacity, price_factor
	           FROM seat_class
	           WHERE airline_name = ? AND airplane_id = ? AND class = ?`
	return t.scanSeatClass(t.tx.QueryRowContext(ctx, q, airline, airplaneID, class))
}

// SeatClassForUpdate loads a seat-class row under an exclusive row lock.
// The lock is released at commit/rollback and serializes every purchase
// attempt for the same class; the subsequent ticket count therefore cannot
// race another purchase's insert.
func (t *storeTx) SeatClassForUpdate(ctx context.Context, airline string, airplaneID uint64, class string) (*model.SeatClass, error) {
	const q = `SELECT airline_name, airplane_id, class, capacity, price_factor
	           FROM seat_class
	           WHERE airline_name = ? AND airplane_id = ? AND class = ?
	           FOR UPDATE`
	return t.scanSeatClass(t.tx.QueryRowContext(ctx, q, airline, airplaneID, class))
}

func (t *storeTx) scanSeatClass(row *sql.Row) (*model.SeatClass, error) {
	var sc model.SeatClass
	err := row.Scan(&sc.AirlineName, &sc.AirplaneID, &sc.Class, &sc.Capacity, &sc.PriceFactor)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

// CountTickets counts issued tickets for one seat class of a flight.
func (t *storeTx) CountTickets(ctx context.Context, airline, flightNum, class string) (int, error) {
	const q = `SELECT COUNT(*)
	           FROM ticket
	           WHERE airline_name = ? AND flight_num = ? AND seat_class = ?`
	var n int
	if err := t.tx.QueryRowContext(ctx, q, airline, flightNum, class).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// InsertTicket persists a ticket and populates its auto-generated ID.
func (t *storeTx) InsertTicket(ctx context.Context, tk *model.Ticket) error {
	const q = `INSERT INTO ticket (seat_class, airplane_id, flight_num, airline_name, price_charged)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q, tk.SeatClass, tk.AirplaneID, tk.FlightNum, tk.AirlineName, tk.PriceCharged)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	tk.ID = uint64(id)
	return nil
}

// InsertPurchase persists the purchase row for a ticket created earlier in
// the same transaction.  purchase_date is a DATE column, so only the day
// portion of PurchaseDate is stored.
func (t *storeTx) InsertPurchase(ctx context.Context, p *model.Purchase) error {
	const q = `INSERT INTO purchase (ticket_id, customer_email, agent_email, purchase_date)
	           VALUES (?, ?, ?, ?)`
	var agent sql.NullString
	if p.AgentEmail != nil {
		agent = sql.NullString{String: *p.AgentEmail, Valid: true}
	}
	res, err := t.tx.ExecContext(ctx, q, p.TicketID, p.CustomerEmail, agent, p.PurchaseDate.UTC().Format("2006-01-02"))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}
