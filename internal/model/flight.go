package model

import "time"

// Flight describes a scheduled flight operated by an airline.  Flights are
// uniquely identified by the pair (airline_name, flight_num); the same
// flight number may exist under different airlines.  The airplane_id must
// reference an airplane owned by the same airline.
//
// Fields:
//  AirlineName      – operating airline (part of the primary key).
//  FlightNum        – flight number within the airline (part of the primary key).
//  AirplaneID       – airplane assigned to this flight.
//  DepartureAirport – IATA-style name of the departure airport.
//  ArrivalAirport   – IATA-style name of the arrival airport.
//  DepartureTime    – scheduled departure (UTC).
//  ArrivalTime      – scheduled arrival (UTC).
//  Status           – flight status (e.g. ON-TIME, DELAYED).
//  Price            – base ticket price before the seat-class factor.
type Flight struct {
	AirlineName      string    // flight.airline_name
	FlightNum        string    // flight.flight_num
	AirplaneID       uint64    // flight.airplane_id
	DepartureAirport string    // flight.departure_airport
	ArrivalAirport   string    // flight.arrival_airport
	DepartureTime    time.Time // flight.departure_time
	ArrivalTime      time.Time // flight.arrival_time
	Status           string    // flight.status
	Price            float64   // flight.price
}
