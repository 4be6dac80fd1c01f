package catalog

import (
	"fmt"
	"sort"

	"rotablekit/internal/rkerrors"
)

// Defaults applied to missing per-class numeric fields (§4.1). Exported so
// the loader can warn callers which fields were defaulted.
var (
	DefaultStorageCapacity  = ClassVector{100, 100, 100, 100}
	DefaultLoadingCost      = ClassVector{10, 10, 10, 10}
	DefaultProcessingCost   = ClassVector{5, 5, 5, 5}
	DefaultProcessingHours  = ClassVector{2, 2, 2, 2}
	DefaultInitialHub       = ClassVector{50, 50, 50, 50}
	DefaultInitialOutstation = ClassVector{20, 20, 20, 20}
)

// Warning is a non-fatal note raised while building the catalog (a
// missing optional field was filled with a default).
type Warning struct {
	AirportCode string
	Field       string
	Applied     ClassVector
}

func (w Warning) String() string {
	return fmt.Sprintf("catalog: %s missing %s, defaulted to %v", w.AirportCode, w.Field, w.Applied)
}

// Catalog is the immutable, validated network description.
type Catalog struct {
	airports   map[string]Airport
	aircraft   map[string]AircraftType
	kitMeta    [4]KitClassMeta
	hubCode    string
	hasHub     bool
	Warnings   []Warning
}

// Build validates and assembles a Catalog from already-parsed rows. CSV
// parsing itself is an external collaborator (spec.md §1); this is the
// contract it feeds.
func Build(airports []Airport, aircraft []AircraftType, kitMeta [4]KitClassMeta, flights []Flight) (*Catalog, []Flight, error) {
	c := &Catalog{
		airports: make(map[string]Airport, len(airports)),
		aircraft: make(map[string]AircraftType, len(aircraft)),
		kitMeta:  kitMeta,
	}

	for _, a := range airports {
		if a.Code == "" {
			return nil, nil, rkerrors.Config("airport row missing primary key code", nil)
		}
		a = c.fillAirportDefaults(a)
		if a.IsHub {
			if c.hasHub {
				return nil, nil, rkerrors.Config(fmt.Sprintf("duplicate hub: %s and %s", c.hubCode, a.Code), nil)
			}
			c.hasHub = true
			c.hubCode = a.Code
		}
		c.airports[a.Code] = a
	}
	if !c.hasHub {
		return nil, nil, rkerrors.Config("no hub airport declared", nil)
	}

	for _, t := range aircraft {
		if t.Code == "" {
			return nil, nil, rkerrors.Config("aircraft row missing primary key type_code", nil)
		}
		c.aircraft[t.Code] = t
	}

	validFlights := make([]Flight, 0, len(flights))
	for _, f := range flights {
		if f.ID == "" {
			return nil, nil, rkerrors.Config("flight row missing primary key flight_id", nil)
		}
		if _, ok := c.airports[f.Origin]; !ok {
			return nil, nil, rkerrors.Config(fmt.Sprintf("flight %s references unknown origin %s", f.ID, f.Origin), nil)
		}
		if _, ok := c.airports[f.Destination]; !ok {
			return nil, nil, rkerrors.Config(fmt.Sprintf("flight %s references unknown destination %s", f.ID, f.Destination), nil)
		}
		if _, ok := c.aircraft[f.AircraftTypeCode]; !ok {
			return nil, nil, rkerrors.Config(fmt.Sprintf("flight %s references unknown aircraft type %s", f.ID, f.AircraftTypeCode), nil)
		}
		validFlights = append(validFlights, f)
	}

	return c, validFlights, nil
}

func (c *Catalog) fillAirportDefaults(a Airport) Airport {
	zero := ClassVector{}
	if a.StorageCapacity == zero {
		a.StorageCapacity = DefaultStorageCapacity
		c.Warnings = append(c.Warnings, Warning{a.Code, "storage_capacity", DefaultStorageCapacity})
	}
	if a.LoadingCost == zero {
		a.LoadingCost = DefaultLoadingCost
		c.Warnings = append(c.Warnings, Warning{a.Code, "loading_cost", DefaultLoadingCost})
	}
	if a.ProcessingCost == zero {
		a.ProcessingCost = DefaultProcessingCost
		c.Warnings = append(c.Warnings, Warning{a.Code, "processing_cost", DefaultProcessingCost})
	}
	if a.ProcessingHours == zero {
		a.ProcessingHours = DefaultProcessingHours
		c.Warnings = append(c.Warnings, Warning{a.Code, "processing_hours", DefaultProcessingHours})
	}
	if a.InitialInventory == zero {
		def := DefaultInitialOutstation
		if a.IsHub {
			def = DefaultInitialHub
		}
		a.InitialInventory = def
		c.Warnings = append(c.Warnings, Warning{a.Code, "initial_inventory", def})
	}
	return a
}

// Airport looks up an airport by code.
func (c *Catalog) Airport(code string) (Airport, bool) {
	a, ok := c.airports[code]
	return a, ok
}

// Aircraft looks up an aircraft type by code.
func (c *Catalog) Aircraft(code string) (AircraftType, bool) {
	a, ok := c.aircraft[code]
	return a, ok
}

// KitMeta returns the metadata for a class.
func (c *Catalog) KitMeta(cl Class) KitClassMeta {
	return c.kitMeta[cl]
}

// AllAirports returns every airport, sorted by code for deterministic
// iteration.
func (c *Catalog) AllAirports() []Airport {
	out := make([]Airport, 0, len(c.airports))
	for _, a := range c.airports {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Hub returns the single hub airport. Present on every valid catalog
// (Build fails otherwise), so ok should always be true in practice;
// callers that must be defensive (S4) should still check it.
func (c *Catalog) Hub() (Airport, bool) {
	if !c.hasHub {
		return Airport{}, false
	}
	return c.airports[c.hubCode], true
}

// HubCode returns the hub's airport code, or "" if none is set.
func (c *Catalog) HubCode() string {
	return c.hubCode
}
