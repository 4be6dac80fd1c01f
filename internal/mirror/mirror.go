// Package mirror is the State Mirror (C3): the authoritative in-memory
// picture of where every kit is, kept synchronized with the eval server's
// round responses by internal/ingest. It never talks to the network
// itself; internal/ingest and internal/orchestrator are its only callers.
package mirror

import (
	"fmt"

	"rotablekit/internal/catalog"
)

// AnomalyKind classifies a MirrorAnomaly.
type AnomalyKind int

const (
	AnomalyNegativeInventory AnomalyKind = iota
	AnomalyOverstock
	AnomalyUnknownFlight
	AnomalyHourRegression
)

func (k AnomalyKind) String() string {
	switch k {
	case AnomalyNegativeInventory:
		return "NEGATIVE_INVENTORY"
	case AnomalyOverstock:
		return "OVERSTOCK"
	case AnomalyUnknownFlight:
		return "UNKNOWN_FLIGHT"
	case AnomalyHourRegression:
		return "HOUR_REGRESSION"
	default:
		return "UNKNOWN"
	}
}

// MirrorAnomaly is a detected divergence between the mirror's expectation
// and what the server (or internal bookkeeping) reports. Anomalies are
// recorded, not fatal: the round loop keeps going (§7, MirrorAnomaly is
// non-fatal by default).
type MirrorAnomaly struct {
	Kind    AnomalyKind
	Airport string
	Class   catalog.Class
	Hour    int
	Detail  string
}

func (a MirrorAnomaly) String() string {
	return fmt.Sprintf("mirror anomaly %s at %s/%s hour %d: %s", a.Kind, a.Airport, a.Class, a.Hour, a.Detail)
}

// commitment is a flight's currently reserved (not yet departed) load.
type commitment struct {
	origin string
	load   catalog.ClassVector
}

// State is the mutable inventory-and-movements picture for one game.
// Not safe for concurrent use; the orchestrator serializes round
// processing so a single mutex at that layer is sufficient.
type State struct {
	cat *catalog.Catalog

	hour      int
	inventory map[string]catalog.ClassVector
	committed map[string]commitment
	pending   *MovementQueue

	anomalies []MirrorAnomaly
}

// New seeds a State from the catalog's declared initial inventories.
func New(cat *catalog.Catalog) *State {
	s := &State{
		cat:       cat,
		inventory: make(map[string]catalog.ClassVector),
		committed: make(map[string]commitment),
		pending:   NewMovementQueue(),
	}
	for _, a := range cat.AllAirports() {
		s.inventory[a.Code] = a.InitialInventory
	}
	return s
}

// Hour returns the last hour the mirror was advanced to.
func (s *State) Hour() int { return s.hour }

// Inventory returns the current on-hand inventory at an airport. Zero
// value if the airport is unknown.
func (s *State) Inventory(airport string) catalog.ClassVector {
	return s.inventory[airport]
}

// CommittedLoad returns the load currently reserved for a flight, if any.
func (s *State) CommittedLoad(flightID string) (catalog.ClassVector, bool) {
	c, ok := s.committed[flightID]
	return c.load, ok
}

// Anomalies returns every anomaly recorded so far. The slice is owned by
// the caller; State keeps its own for the lifetime of the game.
func (s *State) Anomalies() []MirrorAnomaly {
	out := make([]MirrorAnomaly, len(s.anomalies))
	copy(out, s.anomalies)
	return out
}

// CommitLoad reserves load for flightID out of origin's inventory,
// overwriting whatever was previously committed for that flight (Open
// Question #1: resubmission replaces, it never adds). The previously
// reserved quantity, if any, is returned to origin's inventory first, so
// two calls with the same flightID and different loads leave inventory
// exactly as if only the second call had ever happened.
func (s *State) CommitLoad(flightID, origin string, load catalog.ClassVector) {
	if prev, ok := s.committed[flightID]; ok {
		s.inventory[prev.origin] = s.inventory[prev.origin].Plus(prev.load)
	}
	s.inventory[origin] = s.inventory[origin].Minus(load)
	s.committed[flightID] = commitment{origin: origin, load: load}
}

// ClearCommitment drops a flight's reservation without moving it into
// transit, returning kits to inventory. Used when a load is invalidated
// (validator repair) or the flight is cancelled by the server.
func (s *State) ClearCommitment(flightID string) {
	if prev, ok := s.committed[flightID]; ok {
		s.inventory[prev.origin] = s.inventory[prev.origin].Plus(prev.load)
		delete(s.committed, flightID)
	}
}

// Depart moves a flight's committed load from reservation into transit,
// scheduled to complete (become PROCESSING at the destination) at
// arrivalHour. Returns the departed load and false if the flight had no
// committed load (an UnknownFlight anomaly is recorded in that case,
// since a real load should always precede a departure event).
func (s *State) Depart(flightID, destination string, arrivalHour int) (catalog.ClassVector, bool) {
	c, ok := s.committed[flightID]
	if !ok {
		s.anomalies = append(s.anomalies, MirrorAnomaly{
			Kind: AnomalyUnknownFlight, Airport: destination, Hour: s.hour,
			Detail: fmt.Sprintf("departure observed for %s with no committed load", flightID),
		})
		return catalog.ClassVector{}, false
	}
	delete(s.committed, flightID)
	c.load.Each(func(cl catalog.Class, n int) {
		if n == 0 {
			return
		}
		s.pending.Push(Movement{
			Kind: MovementInTransit, FlightID: flightID, Airport: destination,
			Class: cl, Quantity: n, CompletesAt: arrivalHour,
		})
	})
	return c.load, true
}

// Purchase splits an order into per-class delivery movements that enter
// the hub's inventory orderedAt+lead_time+hub processing hours later (the
// same per-class ETA horizon.View.ETA computes).
func (s *State) Purchase(order catalog.ClassVector, orderedAt int, hub string) {
	hubAirport, _ := s.cat.Airport(hub)
	order.Each(func(cl catalog.Class, n int) {
		if n == 0 {
			return
		}
		lead := s.cat.KitMeta(cl).LeadTimeHours
		s.pending.Push(Movement{
			Kind: MovementPurchaseDelivery, Airport: hub, Class: cl,
			Quantity: n, CompletesAt: orderedAt + lead + hubAirport.ProcessingHours.Get(cl),
		})
	})
}

// AdvanceTo processes every pending movement due at or before hour, then
// sets the mirror's clock to hour. In-transit movements that land are
// requeued as processing movements (§4: kits are unusable for
// ProcessingHours after arrival); processing and purchase-delivery
// movements add directly to inventory on completion. Calling AdvanceTo
// with an hour before the current one is a programmer error (I2, hour
// monotonicity) and is recorded as an anomaly rather than applied.
func (s *State) AdvanceTo(hour int) []Movement {
	if hour < s.hour {
		s.anomalies = append(s.anomalies, MirrorAnomaly{
			Kind: AnomalyHourRegression, Hour: s.hour,
			Detail: fmt.Sprintf("AdvanceTo(%d) called after clock reached %d", hour, s.hour),
		})
		return nil
	}

	var completed []Movement
	for {
		m, ok := s.pending.Peek()
		if !ok || m.CompletesAt > hour {
			break
		}
		s.pending.Pop()

		switch m.Kind {
		case MovementInTransit:
			procHours := 0
			if a, ok := s.cat.Airport(m.Airport); ok {
				procHours = a.ProcessingHours.Get(m.Class)
			}
			s.pending.Push(Movement{
				Kind: MovementProcessing, FlightID: m.FlightID, Airport: m.Airport,
				Class: m.Class, Quantity: m.Quantity, CompletesAt: m.CompletesAt + procHours,
			})
		case MovementProcessing, MovementPurchaseDelivery:
			s.inventory[m.Airport] = s.inventory[m.Airport].Add(m.Class, m.Quantity)
		}
		completed = append(completed, m)
	}

	s.hour = hour
	s.checkAnomalies()
	return completed
}

// PendingSnapshot exposes in-flight movements for horizon forecasting and
// monitoring, without mutating state.
func (s *State) PendingSnapshot() []Movement {
	return s.pending.Snapshot()
}

func (s *State) checkAnomalies() {
	for code, inv := range s.inventory {
		a, ok := s.cat.Airport(code)
		if !ok {
			continue
		}
		inv.Each(func(cl catalog.Class, n int) {
			if n < 0 {
				s.anomalies = append(s.anomalies, MirrorAnomaly{
					Kind: AnomalyNegativeInventory, Airport: code, Class: cl, Hour: s.hour,
					Detail: fmt.Sprintf("inventory %d", n),
				})
			}
			if n > a.StorageCapacity.Get(cl) {
				s.anomalies = append(s.anomalies, MirrorAnomaly{
					Kind: AnomalyOverstock, Airport: code, Class: cl, Hour: s.hour,
					Detail: fmt.Sprintf("inventory %d exceeds capacity %d", n, a.StorageCapacity.Get(cl)),
				})
			}
		})
	}
}
