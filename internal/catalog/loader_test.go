package catalog

import (
	"strings"
	"testing"
)

const testAirportsCSV = `code;is_hub;storage_capacity_economy;loading_cost_economy;processing_cost_economy;processing_time_economy;initial_inventory_economy
HUB;true;500;8;4;1;300
OUT;false;100;5;5;2;20
`

const testAircraftCSV = `type_code;kit_capacity_economy;fuel_cost_per_km
A320;150;0.04
`

const testFlightsCSV = `flight_id;origin;destination;scheduled_departure_day;scheduled_departure_hour;scheduled_arrival_day;scheduled_arrival_hour;aircraft_type;planned_distance;planned_passengers_economy
F1;HUB;OUT;0;6;0;7;A320;250;110
`

func newTestReaders() (a, b, c *strings.Reader) {
	return strings.NewReader(testAirportsCSV), strings.NewReader(testAircraftCSV), strings.NewReader(testFlightsCSV)
}

func TestLoadCSVParsesAllThreeTables(t *testing.T) {
	a, b, c := newTestReaders()
	cat, flights, err := LoadCSV(a, b, c)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(flights) != 1 {
		t.Fatalf("expected 1 flight, got %d", len(flights))
	}
	hub, ok := cat.Hub()
	if !ok || hub.Code != "HUB" {
		t.Fatalf("expected HUB as hub, got %+v ok=%v", hub, ok)
	}
	if hub.InitialInventory.Economy != 300 {
		t.Errorf("expected 300 initial economy inventory, got %d", hub.InitialInventory.Economy)
	}
	f := flights[0]
	if f.ScheduledDeparture != 6 || f.ScheduledArrival != 7 {
		t.Errorf("expected hours 6/7 from day*24+hour, got %d/%d", f.ScheduledDeparture, f.ScheduledArrival)
	}
	if f.PlannedPassengers.Economy != 110 {
		t.Errorf("expected 110 planned economy passengers, got %d", f.PlannedPassengers.Economy)
	}
}
