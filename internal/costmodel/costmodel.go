// Package costmodel is the pure, referentially transparent source of
// truth for the optimizer's objective (C2, §4.2). Every function here
// takes plain data and returns money; none of them touch the mirror.
package costmodel

import (
	"rotablekit/internal/catalog"
	"rotablekit/internal/config"
)

// Model bundles the catalog lookups and calibration constants every cost
// and penalty function needs.
type Model struct {
	Catalog *catalog.Catalog
	Penalty config.PenaltyConfig
}

func New(cat *catalog.Catalog, penalty config.PenaltyConfig) *Model {
	return &Model{Catalog: cat, Penalty: penalty}
}

// LoadingCost: sum over classes of kits loaded times the origin's
// per-class loading cost.
func (m *Model) LoadingCost(origin catalog.Airport, load catalog.ClassVector) float64 {
	total := 0.0
	load.Each(func(c catalog.Class, n int) {
		total += float64(n) * float64(origin.LoadingCost.Get(c))
	})
	return total
}

// MovementCost: distance times fuel cost per km times total kit weight.
func (m *Model) MovementCost(distance float64, aircraft catalog.AircraftType, load catalog.ClassVector) float64 {
	totalWeight := 0.0
	load.Each(func(c catalog.Class, n int) {
		totalWeight += float64(n) * m.Catalog.KitMeta(c).WeightKg
	})
	return distance * aircraft.FuelCostPerKm * totalWeight
}

// ProcessingCost: sum over classes of kits loaded times the destination's
// per-class processing cost.
func (m *Model) ProcessingCost(destination catalog.Airport, load catalog.ClassVector) float64 {
	total := 0.0
	load.Each(func(c catalog.Class, n int) {
		total += float64(n) * float64(destination.ProcessingCost.Get(c))
	})
	return total
}

// PurchaseCost: sum over classes of kits ordered times that class's unit
// cost. Hub-only by construction of the caller (purchases are never
// computed for any other airport).
func (m *Model) PurchaseCost(order catalog.ClassVector) float64 {
	total := 0.0
	order.Each(func(c catalog.Class, n int) {
		total += float64(n) * m.Catalog.KitMeta(c).Cost
	})
	return total
}

func maxf(x, y float64) float64 {
	if x > y {
		return x
	}
	return y
}

// NegativeInventoryPenalty: NEG_FACTOR times the sum of shortfalls across
// classes at one airport at one hour boundary.
func (m *Model) NegativeInventoryPenalty(inv catalog.ClassVector) float64 {
	total := 0.0
	inv.Each(func(_ catalog.Class, n int) {
		total += maxf(0, float64(-n))
	})
	return m.Penalty.NegativeInventoryFactor * total
}

// OverstockPenalty: OVER_FACTOR times the sum of overflow above storage
// capacity across classes.
func (m *Model) OverstockPenalty(inv catalog.ClassVector, capacity catalog.ClassVector) float64 {
	total := 0.0
	inv.Each(func(c catalog.Class, n int) {
		total += maxf(0, float64(n-capacity.Get(c)))
	})
	return m.Penalty.OverstockFactor * total
}

// OverloadPenalty: OVERLOAD_FACTOR * distance * fuel/km * sum over classes
// of kit cost times the excess above aircraft capacity.
func (m *Model) OverloadPenalty(distance float64, aircraft catalog.AircraftType, load catalog.ClassVector) float64 {
	total := 0.0
	load.Each(func(c catalog.Class, n int) {
		excess := maxf(0, float64(n-aircraft.KitCapacity.Get(c)))
		total += m.Catalog.KitMeta(c).Cost * excess
	})
	return m.Penalty.OverloadFactor * distance * aircraft.FuelCostPerKm * total
}

// UnfulfilledPenalty: UNFUL_FACTOR * distance * sum over classes of kit
// cost times the passenger shortfall (passengers minus kits loaded).
func (m *Model) UnfulfilledPenalty(distance float64, passengers catalog.ClassVector, load catalog.ClassVector) float64 {
	total := 0.0
	passengers.Each(func(c catalog.Class, p int) {
		shortfall := maxf(0, float64(p-load.Get(c)))
		total += m.Catalog.KitMeta(c).Cost * shortfall
	})
	return m.Penalty.UnfulfilledFactor * distance * total
}

// IncorrectLoadPenalty is a flat per-occurrence charge for a load
// submitted against an invalid flight reference.
func (m *Model) IncorrectLoadPenalty(occurrences int) float64 {
	return m.Penalty.IncorrectLoadFactor * float64(occurrences)
}

// BreakEvenDistanceKm is 1/UNFUL_FACTOR, the distance at which loading one
// extra kit costs exactly what leaving one passenger unserved would cost —
// a heuristic threshold for the loading sub-policy, not a hard rule.
func (m *Model) BreakEvenDistanceKm() float64 {
	if m.Penalty.UnfulfilledFactor <= 0 {
		return 333
	}
	return 1.0 / m.Penalty.UnfulfilledFactor
}

// EndOfGamePenalty is informational only: the end-of-game multiplier times
// the purchase cost of the kits in remaining (the orchestrator passes the
// on-hand inventory left at hour 720). In-process kits and uncovered
// future flights are not included. It never back-propagates into
// inventory and is evaluated only once (Open Question #3).
func (m *Model) EndOfGamePenalty(remaining catalog.ClassVector) float64 {
	total := 0.0
	remaining.Each(func(c catalog.Class, n int) {
		total += float64(n) * m.Catalog.KitMeta(c).Cost
	})
	return m.Penalty.EndOfGameMultiplier * total
}
