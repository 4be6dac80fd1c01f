package optimizer

import (
	"testing"

	"go.uber.org/zap"

	"rotablekit/internal/catalog"
	"rotablekit/internal/config"
	"rotablekit/internal/costmodel"
	"rotablekit/internal/horizon"
	"rotablekit/internal/ingest"
	"rotablekit/internal/mirror"
)

func testFixture(t *testing.T) (*catalog.Catalog, *mirror.State, *ingest.Ingestor, *horizon.View) {
	t.Helper()
	airports := []catalog.Airport{
		{Code: "HUB", IsHub: true, InitialInventory: catalog.ClassVector{Economy: 100}, StorageCapacity: catalog.ClassVector{Economy: 500}, ProcessingHours: catalog.ClassVector{Economy: 2}},
		{Code: "OUT", InitialInventory: catalog.ClassVector{Economy: 10}, StorageCapacity: catalog.ClassVector{Economy: 500}, ProcessingHours: catalog.ClassVector{Economy: 2}},
	}
	aircraft := []catalog.AircraftType{
		{Code: "A320", KitCapacity: catalog.ClassVector{Economy: 150}, FuelCostPerKm: 0.05},
	}
	kitMeta := [4]catalog.KitClassMeta{
		{Class: catalog.ClassFirst, Cost: 4000, WeightKg: 18, LeadTimeHours: 48},
		{Class: catalog.ClassBusiness, Cost: 1500, WeightKg: 12, LeadTimeHours: 24},
		{Class: catalog.ClassPremiumEconomy, Cost: 600, WeightKg: 8, LeadTimeHours: 12},
		{Class: catalog.ClassEconomy, Cost: 250, WeightKg: 5, LeadTimeHours: 6},
	}
	flights := []catalog.Flight{
		{ID: "FL1", Origin: "HUB", Destination: "OUT", ScheduledDeparture: 3, ScheduledArrival: 6, AircraftTypeCode: "A320", PlannedDistance: 900, PlannedPassengers: catalog.ClassVector{Economy: 80}, Phase: catalog.PhaseCheckedIn},
		{ID: "FL2", Origin: "HUB", Destination: "OUT", ScheduledDeparture: 4, ScheduledArrival: 7, AircraftTypeCode: "A320", PlannedDistance: 900, PlannedPassengers: catalog.ClassVector{Economy: 60}, Phase: catalog.PhaseCheckedIn},
	}
	cat, valid, err := catalog.Build(airports, aircraft, kitMeta, flights)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	mir := mirror.New(cat)
	ing := ingest.New(cat, mir, valid, zap.NewNop())
	hz := horizon.New(cat, ing, mir, 6, 72, 720)
	return cat, mir, ing, hz
}

func TestGreedyDeterministic(t *testing.T) {
	cat, mir, _, hz := testFixture(t)
	cost := costmodel.New(cat, config.Default().Penalty)
	g := NewGreedy(cat, cost, mir, hz)

	first := g.Decide(0)
	for i := 0; i < 20; i++ {
		got := g.Decide(0)
		if len(got.Loads) != len(first.Loads) {
			t.Fatalf("iteration %d: load count mismatch", i)
		}
		for j := range got.Loads {
			if got.Loads[j] != first.Loads[j] {
				t.Fatalf("iteration %d: load %d mismatch: %v != %v", i, j, got.Loads[j], first.Loads[j])
			}
		}
	}
}

func TestGreedyRespectsStockAcrossFlightsSharingOrigin(t *testing.T) {
	cat, mir, _, hz := testFixture(t)
	cost := costmodel.New(cat, config.Default().Penalty)
	g := NewGreedy(cat, cost, mir, hz)

	decision := g.Decide(0)
	totalLoaded := 0
	for _, l := range decision.Loads {
		totalLoaded += l.Kits.Economy
	}
	if totalLoaded > mir.Inventory("HUB").Economy {
		t.Fatalf("greedy over-allocated hub stock: loaded %d, had %d", totalLoaded, mir.Inventory("HUB").Economy)
	}
}

func TestGreedyNeverExceedsAircraftCapacity(t *testing.T) {
	cat, mir, _, hz := testFixture(t)
	cost := costmodel.New(cat, config.Default().Penalty)
	g := NewGreedy(cat, cost, mir, hz)

	decision := g.Decide(0)
	for _, l := range decision.Loads {
		if l.Kits.Economy > 150 {
			t.Errorf("load for %s exceeds aircraft capacity: %v", l.FlightID, l.Kits)
		}
	}
}
