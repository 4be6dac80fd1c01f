package optimizer

import (
	"sort"

	"rotablekit/internal/catalog"
	"rotablekit/internal/costmodel"
	"rotablekit/internal/horizon"
	"rotablekit/internal/mirror"
)

// Greedy is the deterministic baseline strategy: process loadable flights
// in departure order, load each one with its passenger count (plus a
// one-kit buffer on long-haul or outstation legs) capped by remaining
// stock and aircraft capacity, then run the
// shared purchase sub-policy at the hub. It never fails and never depends
// on randomness, so it is both the always-available fallback and the seed
// the genetic search starts from.
type Greedy struct {
	cat   *catalog.Catalog
	cost  *costmodel.Model
	mir   *mirror.State
	horiz *horizon.View
}

func NewGreedy(cat *catalog.Catalog, cost *costmodel.Model, mir *mirror.State, horiz *horizon.View) *Greedy {
	return &Greedy{cat: cat, cost: cost, mir: mir, horiz: horiz}
}

// Decide builds one round's decision. hour is the hour about to be
// played.
func (g *Greedy) Decide(hour int) Decision {
	flights := g.horiz.LoadableFlights(hour)
	sort.Slice(flights, func(i, j int) bool {
		if flights[i].ScheduledDeparture != flights[j].ScheduledDeparture {
			return flights[i].ScheduledDeparture < flights[j].ScheduledDeparture
		}
		return flights[i].ID < flights[j].ID
	})

	working := make(map[string]catalog.ClassVector)
	stockAt := func(code string) catalog.ClassVector {
		if v, ok := working[code]; ok {
			return v
		}
		v := g.mir.Inventory(code)
		working[code] = v
		return v
	}

	breakEven := g.cost.BreakEvenDistanceKm()

	var loads []LoadDecision
	for _, f := range flights {
		aircraft, ok := g.cat.Aircraft(f.AircraftTypeCode)
		if !ok {
			continue
		}
		origin, ok := g.cat.Airport(f.Origin)
		if !ok {
			continue
		}
		available := stockAt(f.Origin)
		passengers := f.EffectivePassengers()

		buffer := 0
		if f.EffectiveDistance() >= breakEven || !origin.IsHub {
			buffer = 1
		}

		var load catalog.ClassVector
		for _, c := range catalog.AllClasses() {
			n := passengers.Get(c) + buffer
			if n > aircraft.KitCapacity.Get(c) {
				n = aircraft.KitCapacity.Get(c)
			}
			if n > available.Get(c) {
				n = available.Get(c)
			}
			if n < 0 {
				n = 0
			}
			load = load.Set(c, n)
		}
		working[f.Origin] = available.Minus(load)
		loads = append(loads, LoadDecision{FlightID: f.ID, Kits: load})
	}

	return Decision{Loads: loads, Purchases: decidePurchases(g.cat, g.horiz, hour)}
}
