// Package horizon is the Horizon View (C5): the bounded look-ahead window
// the optimizer plans against each round, derived from the ingestor's
// flight registry and the mirror's pending movements. Nothing here
// mutates state; it is pure read/derive, the same shape as the teacher's
// mission-window helpers in internal/solver/castle/missions.go.
package horizon

import (
	"sort"

	"rotablekit/internal/catalog"
	"rotablekit/internal/ingest"
	"rotablekit/internal/mirror"
)

// View computes the look-ahead windows the optimizer needs each round:
// which flights can receive a load decision right now, how much demand is
// coming that a purchase decision should cover, and the per-class ETA
// math the purchase sub-policy (§4.6) is built on.
type View struct {
	cat         *catalog.Catalog
	ing         *ingest.Ingestor
	mir         *mirror.State
	loadHours   int
	buyHours    int
	gameHorizon int
}

func New(cat *catalog.Catalog, ing *ingest.Ingestor, mir *mirror.State, loadHours, buyHours, gameHorizon int) *View {
	return &View{cat: cat, ing: ing, mir: mir, loadHours: loadHours, buyHours: buyHours, gameHorizon: gameHorizon}
}

// GameHorizonHours is the furthest hour any "remaining horizon" demand
// projection may look out to.
func (v *View) GameHorizonHours() int { return v.gameHorizon }

// LoadableFlights returns every flight that has reached CHECKED_IN and
// whose scheduled departure falls in [hour, hour+loadHours) — a load
// decision only makes sense once the server has confirmed passenger
// counts, and only within the window the spec allows submitting against
// (§4.4).
func (v *View) LoadableFlights(hour int) []catalog.Flight {
	var out []catalog.Flight
	for _, f := range v.ing.AllFlights() {
		if f.Phase != catalog.PhaseCheckedIn {
			continue
		}
		if f.ScheduledDeparture < hour || f.ScheduledDeparture >= hour+v.loadHours {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDeparture < out[j].ScheduledDeparture })
	return out
}

// ETA is the hour at which a purchase of class c placed at hour would
// become usable at the hub: the purchase lead time plus the hub's own
// processing delay for that class (§4.6).
func (v *View) ETA(hour int, c catalog.Class) int {
	eta := hour + v.cat.KitMeta(c).LeadTimeHours
	if hub, ok := v.cat.Hub(); ok {
		eta += hub.ProcessingHours.Get(c)
	}
	return eta
}

// DemandInWindow sums EffectivePassengers[c] across every not-yet-landed
// flight departing origin with scheduled_departure in [start, end).
func (v *View) DemandInWindow(origin string, c catalog.Class, start, end int) int {
	total := 0
	for _, f := range v.ing.AllFlights() {
		if f.Phase == catalog.PhaseLanded || f.Origin != origin {
			continue
		}
		if f.ScheduledDeparture < start || f.ScheduledDeparture >= end {
			continue
		}
		total += f.EffectivePassengers().Get(c)
	}
	return total
}

// ForecastDemand sums EffectivePassengers across every not-yet-landed
// flight, per class, excluding any flight a purchase placed now could
// never reach: a flight departing before that class's own ETA
// (lead_time[c] + hub.processing_hours[c]) will already have been served
// out of on-hand stock by the time a new purchase could land (§4.6).
func (v *View) ForecastDemand(hour int) catalog.ClassVector {
	var total catalog.ClassVector
	for _, c := range catalog.AllClasses() {
		eta := v.ETA(hour, c)
		for _, f := range v.ing.AllFlights() {
			if f.Phase == catalog.PhaseLanded {
				continue
			}
			if f.ScheduledDeparture < eta || f.ScheduledDeparture >= hour+v.buyHours {
				continue
			}
			total = total.Add(c, f.EffectivePassengers().Get(c))
		}
	}
	return total
}

// StockAtETA projects an airport's available stock at a future hour:
// current on-hand plus every pending processing or purchase-delivery
// movement that completes by then. In-transit movements are not counted.
// Movements only add to the on-hand figure (which may itself be negative),
// and loads not yet committed are not accounted for — callers subtract
// those themselves.
func (v *View) StockAtETA(airport string, eta int) catalog.ClassVector {
	stock := v.mir.Inventory(airport)
	for _, m := range v.mir.PendingSnapshot() {
		if m.Airport != airport || m.CompletesAt > eta {
			continue
		}
		if m.Kind == mirror.MovementInTransit {
			continue // still needs processing hours before it counts
		}
		stock = stock.Add(m.Class, m.Quantity)
	}
	return stock
}
