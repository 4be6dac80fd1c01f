package wire

import (
	"testing"

	"rotablekit/internal/catalog"
)

func TestPlayRoundRequestRoundTrip(t *testing.T) {
	req := PlayRoundRequest{
		Day:  1,
		Hour: 18,
		FlightLoads: []FlightLoadDTO{
			{FlightID: "FL1", LoadedKits: ClassVectorDTO{Economy: 30, Business: 5}},
		},
		KitPurchasingOrders: ClassVectorDTO{Economy: 100},
	}
	data, err := Marshal(req)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var got PlayRoundRequest
	if err := Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Day != req.Day || got.Hour != req.Hour || len(got.FlightLoads) != 1 || got.FlightLoads[0].FlightID != "FL1" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.FlightLoads[0].LoadedKits.Economy != 30 || got.FlightLoads[0].LoadedKits.Business != 5 {
		t.Fatalf("class vector mismatch: %+v", got.FlightLoads[0].LoadedKits)
	}
	if got.KitPurchasingOrders.Economy != 100 {
		t.Fatalf("purchase order mismatch: %+v", got.KitPurchasingOrders)
	}
}

func TestReferenceHourConversion(t *testing.T) {
	ref := AbsoluteToReference(50)
	if ref.Day != 2 || ref.Hour != 2 {
		t.Fatalf("AbsoluteToReference(50) = %+v, want {Day:2 Hour:2}", ref)
	}
	if got := ref.Absolute(); got != 50 {
		t.Fatalf("Absolute() = %d, want 50", got)
	}
}

func TestPhaseFromWire(t *testing.T) {
	cases := map[string]catalog.Phase{
		"SCHEDULED":  catalog.PhaseAnnounced,
		"CHECKED_IN": catalog.PhaseCheckedIn,
		"LANDED":     catalog.PhaseLanded,
		"GARBAGE":    catalog.PhaseAnnounced,
	}
	for s, want := range cases {
		if got := PhaseFromWire(s); got != want {
			t.Errorf("PhaseFromWire(%q) = %v, want %v", s, got, want)
		}
	}
}
