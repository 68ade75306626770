// Package pricing computes the price charged for a ticket.
package pricing

import "math"

// Resolve multiplies a flight's base price by a seat class's price factor
// and rounds to 2 decimal places.  Ties round half away from zero
// (math.Round), so Resolve(1.25, 1.1) = 1.38.  Callers are responsible for
// validating that the factor is positive; the schema guarantees this for
// stored seat classes.
func Resolve(basePrice, priceFactor float64) float64 {
	return math.Round(basePrice*priceFactor*100) / 100
}
