package validator

import (
	"testing"

	"go.uber.org/zap"

	"rotablekit/internal/catalog"
	"rotablekit/internal/ingest"
	"rotablekit/internal/mirror"
	"rotablekit/internal/optimizer"
)

func testFixture(t *testing.T) (*Validator, *ingest.Ingestor) {
	t.Helper()
	airports := []catalog.Airport{
		{Code: "HUB", IsHub: true, InitialInventory: catalog.ClassVector{Economy: 50}, StorageCapacity: catalog.ClassVector{Economy: 500}},
		{Code: "OUT", InitialInventory: catalog.ClassVector{Economy: 10}, StorageCapacity: catalog.ClassVector{Economy: 500}},
	}
	aircraft := []catalog.AircraftType{{Code: "A320", KitCapacity: catalog.ClassVector{Economy: 30}}}
	kitMeta := [4]catalog.KitClassMeta{{}, {}, {}, {}}
	flights := []catalog.Flight{
		{ID: "FL1", Origin: "HUB", Destination: "OUT", AircraftTypeCode: "A320", Phase: catalog.PhaseCheckedIn},
		{ID: "FL2", Origin: "HUB", Destination: "OUT", AircraftTypeCode: "A320", Phase: catalog.PhaseDeparted},
	}
	cat, valid, err := catalog.Build(airports, aircraft, kitMeta, flights)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	mir := mirror.New(cat)
	ing := ingest.New(cat, mir, valid, zap.NewNop())
	return New(cat, ing, mir), ing
}

func TestValidateClampsAboveAircraftCapacity(t *testing.T) {
	v, _ := testFixture(t)
	d := optimizer.Decision{Loads: []optimizer.LoadDecision{{FlightID: "FL1", Kits: catalog.ClassVector{Economy: 999}}}}
	report := v.Validate(d)
	if len(report.Repaired.Loads) != 1 {
		t.Fatalf("expected 1 repaired load, got %d", len(report.Repaired.Loads))
	}
	if got := report.Repaired.Loads[0].Kits.Economy; got != 30 {
		t.Errorf("expected clamp to aircraft capacity 30, got %d", got)
	}
	if len(report.Warnings) == 0 {
		t.Error("expected a warning for the clamp")
	}
}

func TestValidateDropsAlreadyDepartedFlight(t *testing.T) {
	v, _ := testFixture(t)
	d := optimizer.Decision{Loads: []optimizer.LoadDecision{{FlightID: "FL2", Kits: catalog.ClassVector{Economy: 5}}}}
	report := v.Validate(d)
	if len(report.Repaired.Loads) != 0 {
		t.Fatalf("expected departed flight's load to be dropped, got %v", report.Repaired.Loads)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(report.Errors))
	}
}

func TestValidateDropsUnknownFlight(t *testing.T) {
	v, _ := testFixture(t)
	d := optimizer.Decision{Loads: []optimizer.LoadDecision{{FlightID: "GHOST", Kits: catalog.ClassVector{Economy: 5}}}}
	report := v.Validate(d)
	if len(report.Repaired.Loads) != 0 || len(report.Errors) != 1 {
		t.Fatalf("expected unknown flight dropped with an error, got %+v", report)
	}
}

func TestValidateClampsNegativeQuantities(t *testing.T) {
	v, _ := testFixture(t)
	d := optimizer.Decision{Purchases: catalog.ClassVector{Economy: -5}}
	report := v.Validate(d)
	if report.Repaired.Purchases.Economy != 0 {
		t.Fatalf("expected negative purchase quantity clamped to 0, got %v", report.Repaired.Purchases)
	}
	if len(report.Warnings) == 0 {
		t.Error("expected a warning for the clamp")
	}
}
