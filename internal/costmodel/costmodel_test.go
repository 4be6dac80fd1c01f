package costmodel

import (
	"testing"

	"rotablekit/internal/catalog"
	"rotablekit/internal/config"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	airports := []catalog.Airport{
		{Code: "HUB", IsHub: true, LoadingCost: catalog.ClassVector{Economy: 10}, ProcessingCost: catalog.ClassVector{Economy: 5}, StorageCapacity: catalog.ClassVector{Economy: 50}},
		{Code: "OUT", LoadingCost: catalog.ClassVector{Economy: 10}, ProcessingCost: catalog.ClassVector{Economy: 5}, StorageCapacity: catalog.ClassVector{Economy: 50}},
	}
	aircraft := []catalog.AircraftType{
		{Code: "A320", KitCapacity: catalog.ClassVector{Economy: 100}, FuelCostPerKm: 0.1},
	}
	kitMeta := [4]catalog.KitClassMeta{
		{Class: catalog.ClassFirst, Cost: 4000, WeightKg: 18},
		{Class: catalog.ClassBusiness, Cost: 1500, WeightKg: 12},
		{Class: catalog.ClassPremiumEconomy, Cost: 600, WeightKg: 8},
		{Class: catalog.ClassEconomy, Cost: 250, WeightKg: 5},
	}
	cat, _, err := catalog.Build(airports, aircraft, kitMeta, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return New(cat, config.Default().Penalty)
}

func TestLoadingCost(t *testing.T) {
	m := testModel(t)
	hub, _ := m.Catalog.Airport("HUB")
	got := m.LoadingCost(hub, catalog.ClassVector{Economy: 10})
	if got != 100 {
		t.Errorf("expected 100, got %v", got)
	}
}

func TestMovementCost(t *testing.T) {
	m := testModel(t)
	aircraft, _ := m.Catalog.Aircraft("A320")
	got := m.MovementCost(1000, aircraft, catalog.ClassVector{Economy: 10})
	want := 1000 * 0.1 * (10 * 5)
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestOverloadPenaltyOnlyChargesExcess(t *testing.T) {
	m := testModel(t)
	aircraft, _ := m.Catalog.Aircraft("A320")
	load := catalog.ClassVector{Economy: 50}
	if got := m.OverloadPenalty(500, aircraft, load); got != 0 {
		t.Errorf("expected zero penalty within capacity, got %v", got)
	}
	over := catalog.ClassVector{Economy: 110}
	if got := m.OverloadPenalty(500, aircraft, over); got <= 0 {
		t.Errorf("expected positive penalty above capacity, got %v", got)
	}
}

func TestUnfulfilledPenaltyOnlyChargesShortfall(t *testing.T) {
	m := testModel(t)
	passengers := catalog.ClassVector{Economy: 100}
	fullyServed := catalog.ClassVector{Economy: 100}
	if got := m.UnfulfilledPenalty(500, passengers, fullyServed); got != 0 {
		t.Errorf("expected zero penalty when fully served, got %v", got)
	}
	partial := catalog.ClassVector{Economy: 80}
	if got := m.UnfulfilledPenalty(500, passengers, partial); got <= 0 {
		t.Errorf("expected positive penalty for shortfall, got %v", got)
	}
}

func TestNegativeInventoryPenaltyIgnoresSurplus(t *testing.T) {
	m := testModel(t)
	if got := m.NegativeInventoryPenalty(catalog.ClassVector{Economy: 5}); got != 0 {
		t.Errorf("expected zero for positive inventory, got %v", got)
	}
	if got := m.NegativeInventoryPenalty(catalog.ClassVector{Economy: -5}); got != 500*5 {
		t.Errorf("expected 2500, got %v", got)
	}
}
