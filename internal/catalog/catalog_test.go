package catalog

import "testing"

func testAirports() []Airport {
	return []Airport{
		{Code: "HUB", IsHub: true, InitialInventory: ClassVector{First: 20, Business: 40, PremiumEconomy: 40, Economy: 100}},
		{Code: "OUT", IsHub: false},
	}
}

func testAircraft() []AircraftType {
	return []AircraftType{
		{Code: "A320", KitCapacity: ClassVector{First: 8, Business: 20, PremiumEconomy: 20, Economy: 120}, FuelCostPerKm: 0.05},
	}
}

func testFlights() []Flight {
	return []Flight{
		{ID: "FL1", Origin: "HUB", Destination: "OUT", ScheduledDeparture: 2, ScheduledArrival: 5, AircraftTypeCode: "A320", PlannedDistance: 800, PlannedPassengers: ClassVector{Economy: 90}},
	}
}

func TestBuildAppliesDefaultsAndWarns(t *testing.T) {
	cat, flights, err := Build(testAirports(), testAircraft(), defaultKitMeta(), testFlights())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(flights) != 1 {
		t.Fatalf("expected 1 valid flight, got %d", len(flights))
	}
	out, ok := cat.Airport("OUT")
	if !ok {
		t.Fatal("OUT airport missing")
	}
	if out.StorageCapacity != DefaultStorageCapacity {
		t.Errorf("expected default storage capacity, got %v", out.StorageCapacity)
	}
	if out.InitialInventory != DefaultInitialOutstation {
		t.Errorf("expected outstation default inventory, got %v", out.InitialInventory)
	}
	if len(cat.Warnings) == 0 {
		t.Error("expected warnings for defaulted fields")
	}
}

func TestBuildRejectsMissingHub(t *testing.T) {
	airports := []Airport{{Code: "A"}, {Code: "B"}}
	_, _, err := Build(airports, testAircraft(), defaultKitMeta(), nil)
	if err == nil {
		t.Fatal("expected error for missing hub")
	}
}

func TestBuildRejectsDuplicateHub(t *testing.T) {
	airports := []Airport{{Code: "A", IsHub: true}, {Code: "B", IsHub: true}}
	_, _, err := Build(airports, testAircraft(), defaultKitMeta(), nil)
	if err == nil {
		t.Fatal("expected error for duplicate hub")
	}
}

func TestBuildRejectsUnknownFlightReference(t *testing.T) {
	flights := []Flight{{ID: "F1", Origin: "HUB", Destination: "NOPE", AircraftTypeCode: "A320"}}
	_, _, err := Build(testAirports(), testAircraft(), defaultKitMeta(), flights)
	if err == nil {
		t.Fatal("expected error for unknown destination")
	}
}

func TestFlightEffectivePassengersUsesActualOnceCheckedIn(t *testing.T) {
	f := Flight{
		PlannedPassengers: ClassVector{Economy: 100},
		ActualPassengers:  ClassVector{Economy: 90},
		HasActualPassengers: true,
		Phase:             PhaseAnnounced,
	}
	if got := f.EffectivePassengers(); got != f.PlannedPassengers {
		t.Errorf("expected planned before check-in, got %v", got)
	}
	f.Phase = PhaseCheckedIn
	if got := f.EffectivePassengers(); got != f.ActualPassengers {
		t.Errorf("expected actual after check-in, got %v", got)
	}
}

func TestFlightEffectiveDistanceFallsBackToPlanned(t *testing.T) {
	f := Flight{PlannedDistance: 500, Phase: PhaseCheckedIn}
	if got := f.EffectiveDistance(); got != 500 {
		t.Errorf("expected fallback to planned distance, got %v", got)
	}
	f.ActualDistance = 510
	if got := f.EffectiveDistance(); got != 510 {
		t.Errorf("expected actual distance once set, got %v", got)
	}
}

func TestClassVectorArithmetic(t *testing.T) {
	a := ClassVector{First: 1, Business: 2, PremiumEconomy: 3, Economy: 4}
	b := ClassVector{First: 1, Business: 1, PremiumEconomy: 1, Economy: 10}
	if sum := a.Plus(b); sum != (ClassVector{First: 2, Business: 3, PremiumEconomy: 4, Economy: 14}) {
		t.Errorf("Plus mismatch: %v", sum)
	}
	if diff := a.Minus(b).ClampNonNegative(); diff != (ClassVector{First: 0, Business: 1, PremiumEconomy: 2, Economy: 0}) {
		t.Errorf("Minus/Clamp mismatch: %v", diff)
	}
	if a.Sum() != 10 {
		t.Errorf("expected sum 10, got %d", a.Sum())
	}
}
