// Package catalog holds the immutable, once-loaded description of the
// network: airports, aircraft types, the flight schedule, and per-class
// kit metadata. It is the Static Catalog component (C1): pure lookups,
// no mutation after Build.
package catalog

import "fmt"

// Class is the closed enum of the four service classes, always in this
// order. A ClassVector below carries one value per class; there is no
// map[Class]int anywhere in the decision path, the same way the teacher's
// BuildingLevelMap replaces map[BuildingType]int.
type Class int

const (
	ClassFirst Class = iota
	ClassBusiness
	ClassPremiumEconomy
	ClassEconomy
	numClasses
)

// AllClasses returns the four classes in fixed order.
func AllClasses() []Class {
	return []Class{ClassFirst, ClassBusiness, ClassPremiumEconomy, ClassEconomy}
}

func (c Class) String() string {
	switch c {
	case ClassFirst:
		return "first"
	case ClassBusiness:
		return "business"
	case ClassPremiumEconomy:
		return "premiumEconomy"
	case ClassEconomy:
		return "economy"
	default:
		return "unknown"
	}
}

// ClassVector is a fixed-width per-class tuple of non-negative integer
// kit counts. Every quantity in the system — inventory, loads, purchases,
// capacities — is one of these.
type ClassVector struct {
	First          int
	Business       int
	PremiumEconomy int
	Economy        int
}

// Get returns the count for a class.
func (v ClassVector) Get(c Class) int {
	switch c {
	case ClassFirst:
		return v.First
	case ClassBusiness:
		return v.Business
	case ClassPremiumEconomy:
		return v.PremiumEconomy
	case ClassEconomy:
		return v.Economy
	default:
		return 0
	}
}

// Set assigns the count for a class, returning the updated vector.
func (v ClassVector) Set(c Class, n int) ClassVector {
	switch c {
	case ClassFirst:
		v.First = n
	case ClassBusiness:
		v.Business = n
	case ClassPremiumEconomy:
		v.PremiumEconomy = n
	case ClassEconomy:
		v.Economy = n
	}
	return v
}

// Add returns v with delta added to class c.
func (v ClassVector) Add(c Class, delta int) ClassVector {
	return v.Set(c, v.Get(c)+delta)
}

// Each iterates over all four classes in fixed order.
func (v ClassVector) Each(fn func(Class, int)) {
	fn(ClassFirst, v.First)
	fn(ClassBusiness, v.Business)
	fn(ClassPremiumEconomy, v.PremiumEconomy)
	fn(ClassEconomy, v.Economy)
}

// Plus adds two vectors component-wise.
func (v ClassVector) Plus(o ClassVector) ClassVector {
	return ClassVector{v.First + o.First, v.Business + o.Business, v.PremiumEconomy + o.PremiumEconomy, v.Economy + o.Economy}
}

// Minus subtracts o from v component-wise (may go negative; callers clamp
// where the spec requires non-negativity).
func (v ClassVector) Minus(o ClassVector) ClassVector {
	return ClassVector{v.First - o.First, v.Business - o.Business, v.PremiumEconomy - o.PremiumEconomy, v.Economy - o.Economy}
}

// Min returns the component-wise minimum of v and o.
func (v ClassVector) Min(o ClassVector) ClassVector {
	min := func(a, b int) int {
		if a < b {
			return a
		}
		return b
	}
	return ClassVector{min(v.First, o.First), min(v.Business, o.Business), min(v.PremiumEconomy, o.PremiumEconomy), min(v.Economy, o.Economy)}
}

// ClampNonNegative floors every component at zero.
func (v ClassVector) ClampNonNegative() ClassVector {
	clamp := func(n int) int {
		if n < 0 {
			return 0
		}
		return n
	}
	return ClassVector{clamp(v.First), clamp(v.Business), clamp(v.PremiumEconomy), clamp(v.Economy)}
}

// Sum adds up all four components.
func (v ClassVector) Sum() int {
	return v.First + v.Business + v.PremiumEconomy + v.Economy
}

func (v ClassVector) String() string {
	return fmt.Sprintf("{F:%d B:%d P:%d E:%d}", v.First, v.Business, v.PremiumEconomy, v.Economy)
}

// KitClassMeta is the immutable per-class metadata shared across the
// catalog: purchase cost, weight, lead time, and a per-class processing
// time. The processing delays the mirror and horizon apply (including the
// hub's delay after a purchase is delivered) are read from
// Airport.ProcessingHours, not from this struct.
type KitClassMeta struct {
	Class             Class
	Cost              float64 // money per kit
	WeightKg          float64
	LeadTimeHours     int // purchase -> delivery lag
	ProcessingHours   int // carried with the metadata; not read by the mirror or horizon
}

// Airport is one node in the network.
type Airport struct {
	Code             string
	IsHub            bool
	StorageCapacity  ClassVector
	LoadingCost      ClassVector // money per kit loaded here
	ProcessingCost   ClassVector // money per kit processed here
	ProcessingHours  ClassVector // arrival -> reuse lag, per class
	InitialInventory ClassVector
}

// AircraftType bounds how many kits of each class one flight of this type
// can carry.
type AircraftType struct {
	Code          string
	KitCapacity   ClassVector
	FuelCostPerKm float64
}

// Phase is a flight's position in its lifecycle.
type Phase int

const (
	PhaseAnnounced Phase = iota
	PhaseCheckedIn
	PhaseDeparted
	PhaseLanded
)

func (p Phase) String() string {
	switch p {
	case PhaseAnnounced:
		return "ANNOUNCED"
	case PhaseCheckedIn:
		return "CHECKED_IN"
	case PhaseDeparted:
		return "DEPARTED"
	case PhaseLanded:
		return "LANDED"
	default:
		return "UNKNOWN"
	}
}

// Flight is one scheduled leg. ScheduledDeparture/ScheduledArrival are
// absolute hour counts (day*24 + hour).
type Flight struct {
	ID                  string
	Origin              string
	Destination         string
	ScheduledDeparture  int
	ScheduledArrival    int
	ActualArrival       int
	AircraftTypeCode    string
	PlannedDistance     float64
	ActualDistance      float64 // zero means "not set"
	PlannedPassengers   ClassVector
	ActualPassengers    ClassVector
	HasActualPassengers bool
	Phase               Phase
}

// EffectivePassengers returns ActualPassengers once the flight has reached
// CHECKED_IN, else PlannedPassengers (spec §3: actual overrides planned
// for any flight whose phase has reached CHECKED_IN).
func (f Flight) EffectivePassengers() ClassVector {
	if f.Phase >= PhaseCheckedIn && f.HasActualPassengers {
		return f.ActualPassengers
	}
	return f.PlannedPassengers
}

// EffectiveArrival returns ActualArrival once known, else the scheduled
// arrival hour.
func (f Flight) EffectiveArrival() int {
	if f.ActualArrival > 0 {
		return f.ActualArrival
	}
	return f.ScheduledArrival
}

// EffectiveDistance uses planned_distance until CHECKED_IN, then
// actual_distance if present, else planned_distance (Open Question #2).
func (f Flight) EffectiveDistance() float64 {
	if f.Phase >= PhaseCheckedIn && f.ActualDistance > 0 {
		return f.ActualDistance
	}
	return f.PlannedDistance
}
