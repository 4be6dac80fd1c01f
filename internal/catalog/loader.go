package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LoadCSV parses the three semicolon-delimited tables from §6.2 and
// builds a Catalog. CSV parsing is explicitly out of scope as a
// specified component (spec.md §1 lists it as an external collaborator,
// contract only) — this is the default collaborator satisfying that
// contract with the standard library's encoding/csv, not a modeled
// component in its own right.
func LoadCSV(airportsR, aircraftR, flightsR io.Reader) (*Catalog, []Flight, error) {
	airports, err := parseAirports(airportsR)
	if err != nil {
		return nil, nil, err
	}
	aircraft, err := parseAircraft(aircraftR)
	if err != nil {
		return nil, nil, err
	}
	flights, err := parseFlights(flightsR)
	if err != nil {
		return nil, nil, err
	}
	return Build(airports, aircraft, defaultKitMeta(), flights)
}

// defaultKitMeta returns the kit-class metadata the spec's worked examples
// assume absent an explicit kit-class table in §6.2 (the wire format only
// names airports/aircraft/flight_plan; per-class kit economics are a
// session-level constant the operator supplies alongside the network).
func defaultKitMeta() [4]KitClassMeta {
	return [4]KitClassMeta{
		{Class: ClassFirst, Cost: 4000, WeightKg: 18, LeadTimeHours: 48, ProcessingHours: 6},
		{Class: ClassBusiness, Cost: 1500, WeightKg: 12, LeadTimeHours: 24, ProcessingHours: 4},
		{Class: ClassPremiumEconomy, Cost: 600, WeightKg: 8, LeadTimeHours: 12, ProcessingHours: 3},
		{Class: ClassEconomy, Cost: 250, WeightKg: 5, LeadTimeHours: 6, ProcessingHours: 2},
	}
}

func readRows(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[0], rows[1:], nil
}

func colIndex(headers []string, name string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func classVectorFromRow(row []string, headers []string, prefix string) ClassVector {
	get := func(suffix string) int {
		idx := colIndex(headers, prefix+"_"+suffix)
		return atoi(field(row, idx))
	}
	return ClassVector{
		First:          get("first"),
		Business:       get("business"),
		PremiumEconomy: get("premium_economy"),
		Economy:        get("economy"),
	}
}

func parseAirports(r io.Reader) ([]Airport, error) {
	headers, rows, err := readRows(r)
	if err != nil || headers == nil {
		return nil, err
	}
	codeIdx := colIndex(headers, "code")
	hubIdx := colIndex(headers, "is_hub")

	var out []Airport
	for _, row := range rows {
		out = append(out, Airport{
			Code:             field(row, codeIdx),
			IsHub:            strings.EqualFold(field(row, hubIdx), "true") || field(row, hubIdx) == "1",
			StorageCapacity:  classVectorFromRow(row, headers, "storage_capacity"),
			LoadingCost:      classVectorFromRow(row, headers, "loading_cost"),
			ProcessingCost:   classVectorFromRow(row, headers, "processing_cost"),
			ProcessingHours:  classVectorFromRow(row, headers, "processing_time"),
			InitialInventory: classVectorFromRow(row, headers, "initial_inventory"),
		})
	}
	return out, nil
}

func parseAircraft(r io.Reader) ([]AircraftType, error) {
	headers, rows, err := readRows(r)
	if err != nil || headers == nil {
		return nil, err
	}
	codeIdx := colIndex(headers, "type_code")
	fuelIdx := colIndex(headers, "fuel_cost_per_km")

	var out []AircraftType
	for _, row := range rows {
		out = append(out, AircraftType{
			Code:          field(row, codeIdx),
			KitCapacity:   classVectorFromRow(row, headers, "kit_capacity"),
			FuelCostPerKm: atof(field(row, fuelIdx)),
		})
	}
	return out, nil
}

func parseFlights(r io.Reader) ([]Flight, error) {
	headers, rows, err := readRows(r)
	if err != nil || headers == nil {
		return nil, err
	}
	idIdx := colIndex(headers, "flight_id")
	originIdx := colIndex(headers, "origin")
	destIdx := colIndex(headers, "destination")
	depDayIdx := colIndex(headers, "scheduled_departure_day")
	depHourIdx := colIndex(headers, "scheduled_departure_hour")
	arrDayIdx := colIndex(headers, "scheduled_arrival_day")
	arrHourIdx := colIndex(headers, "scheduled_arrival_hour")
	distIdx := colIndex(headers, "planned_distance")
	acIdx := colIndex(headers, "aircraft_type")

	var out []Flight
	for _, row := range rows {
		out = append(out, Flight{
			ID:                 field(row, idIdx),
			Origin:             field(row, originIdx),
			Destination:        field(row, destIdx),
			ScheduledDeparture: atoi(field(row, depDayIdx))*24 + atoi(field(row, depHourIdx)),
			ScheduledArrival:   atoi(field(row, arrDayIdx))*24 + atoi(field(row, arrHourIdx)),
			AircraftTypeCode:   field(row, acIdx),
			PlannedDistance:    atof(field(row, distIdx)),
			PlannedPassengers:  classVectorFromRow(row, headers, "planned_passengers"),
			Phase:              PhaseAnnounced,
		})
	}
	return out, nil
}
