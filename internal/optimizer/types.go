// Package optimizer is the Decision Optimizer (C6): given a horizon view
// and the current mirror state, produce the loads and purchases to submit
// this round. Two strategies are always available — a deterministic
// greedy baseline and a population-based genetic search seeded from it —
// so a round never goes unanswered even if the GA can't finish in budget.
package optimizer

import "rotablekit/internal/catalog"

// LoadDecision assigns a kit load to one flight.
type LoadDecision struct {
	FlightID string
	Kits     catalog.ClassVector
}

// Decision is everything the round submits to the server: a load per
// loadable flight and a single aggregate hub purchase order (spec §4.6:
// "a map loads: flight_id -> per-class vector, and a single per-class
// vector purchases").
type Decision struct {
	Loads     []LoadDecision
	Purchases catalog.ClassVector
}

// Cost is the estimated total cost of a Decision under the cost model,
// used internally to compare candidates. Lower is better.
type Cost float64
