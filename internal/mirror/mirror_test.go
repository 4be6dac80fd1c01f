package mirror

import (
	"testing"

	"rotablekit/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	airports := []catalog.Airport{
		{Code: "HUB", IsHub: true, InitialInventory: catalog.ClassVector{Economy: 50}, StorageCapacity: catalog.ClassVector{Economy: 100}, ProcessingHours: catalog.ClassVector{Economy: 2}},
		{Code: "OUT", InitialInventory: catalog.ClassVector{Economy: 20}, StorageCapacity: catalog.ClassVector{Economy: 100}, ProcessingHours: catalog.ClassVector{Economy: 2}},
	}
	aircraft := []catalog.AircraftType{{Code: "A320", KitCapacity: catalog.ClassVector{Economy: 100}}}
	kitMeta := [4]catalog.KitClassMeta{
		{Class: catalog.ClassFirst, LeadTimeHours: 48},
		{Class: catalog.ClassBusiness, LeadTimeHours: 24},
		{Class: catalog.ClassPremiumEconomy, LeadTimeHours: 12},
		{Class: catalog.ClassEconomy, LeadTimeHours: 6},
	}
	cat, _, err := catalog.Build(airports, aircraft, kitMeta, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return cat
}

func TestCommitLoadOverwritesRatherThanAccumulates(t *testing.T) {
	cat := testCatalog(t)
	s := New(cat)

	s.CommitLoad("FL1", "HUB", catalog.ClassVector{Economy: 10})
	if got := s.Inventory("HUB").Economy; got != 40 {
		t.Fatalf("expected 40 after first commit, got %d", got)
	}
	s.CommitLoad("FL1", "HUB", catalog.ClassVector{Economy: 30})
	if got := s.Inventory("HUB").Economy; got != 20 {
		t.Fatalf("expected 20 after overwrite, got %d", got)
	}
	load, ok := s.CommittedLoad("FL1")
	if !ok || load.Economy != 30 {
		t.Fatalf("expected committed load 30, got %v ok=%v", load, ok)
	}
}

func TestDepartAndAdvanceRoundTripsToInventory(t *testing.T) {
	cat := testCatalog(t)
	s := New(cat)

	s.CommitLoad("FL1", "HUB", catalog.ClassVector{Economy: 10})
	load, ok := s.Depart("FL1", "OUT", 5)
	if !ok || load.Economy != 10 {
		t.Fatalf("expected departed load 10, got %v ok=%v", load, ok)
	}
	if _, ok := s.CommittedLoad("FL1"); ok {
		t.Fatal("expected commitment cleared after departure")
	}

	s.AdvanceTo(5) // lands, enters processing
	if got := s.Inventory("OUT").Economy; got != 20 {
		t.Fatalf("expected inventory unchanged while processing, got %d", got)
	}
	s.AdvanceTo(7) // processing completes (2h)
	if got := s.Inventory("OUT").Economy; got != 30 {
		t.Fatalf("expected 30 after processing completes, got %d", got)
	}
}

func TestDepartWithoutCommitmentRecordsAnomaly(t *testing.T) {
	cat := testCatalog(t)
	s := New(cat)
	_, ok := s.Depart("GHOST", "OUT", 5)
	if ok {
		t.Fatal("expected departure of uncommitted flight to fail")
	}
	if len(s.Anomalies()) != 1 || s.Anomalies()[0].Kind != AnomalyUnknownFlight {
		t.Fatalf("expected one UnknownFlight anomaly, got %v", s.Anomalies())
	}
}

func TestPurchaseArrivesAfterLeadTime(t *testing.T) {
	cat := testCatalog(t)
	s := New(cat)
	s.Purchase(catalog.ClassVector{Economy: 40}, 10, "HUB")

	s.AdvanceTo(17) // before lead time plus hub processing (6h + 2h -> hour 18)
	if got := s.Inventory("HUB").Economy; got != 50 {
		t.Fatalf("expected unchanged inventory before delivery, got %d", got)
	}
	s.AdvanceTo(18)
	if got := s.Inventory("HUB").Economy; got != 90 {
		t.Fatalf("expected delivery applied at hour 18, got %d", got)
	}
}

func TestAdvanceToRegressionIsRejected(t *testing.T) {
	cat := testCatalog(t)
	s := New(cat)
	s.AdvanceTo(10)
	s.AdvanceTo(5)
	if s.Hour() != 10 {
		t.Fatalf("expected clock to stay at 10 after rejected regression, got %d", s.Hour())
	}
	found := false
	for _, a := range s.Anomalies() {
		if a.Kind == AnomalyHourRegression {
			found = true
		}
	}
	if !found {
		t.Fatal("expected HourRegression anomaly")
	}
}

func TestNegativeInventoryDetectedAsAnomaly(t *testing.T) {
	cat := testCatalog(t)
	s := New(cat)
	s.CommitLoad("FL1", "HUB", catalog.ClassVector{Economy: 1000})
	s.AdvanceTo(1)
	found := false
	for _, a := range s.Anomalies() {
		if a.Kind == AnomalyNegativeInventory {
			found = true
		}
	}
	if !found {
		t.Fatal("expected NegativeInventory anomaly")
	}
}
