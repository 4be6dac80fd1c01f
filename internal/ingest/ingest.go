// Package ingest is the Event Ingestor (C4): it takes one round's server
// response, folds flight phase transitions into a mutable flight
// registry, and drives the State Mirror's departure/advance operations so
// the mirror's clock always matches the server's hour.
package ingest

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"rotablekit/internal/catalog"
	"rotablekit/internal/mirror"
	"rotablekit/internal/wire"
)

// Ingestor owns the per-flight mutable state the immutable catalog
// doesn't: phase, actual arrival, actual distance, actual passengers.
type Ingestor struct {
	cat     *catalog.Catalog
	mir     *mirror.State
	flights map[string]catalog.Flight
	log     *zap.Logger
}

func New(cat *catalog.Catalog, mir *mirror.State, flights []catalog.Flight, log *zap.Logger) *Ingestor {
	reg := make(map[string]catalog.Flight, len(flights))
	for _, f := range flights {
		reg[f.ID] = f
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Ingestor{cat: cat, mir: mir, flights: reg, log: log}
}

// Flight looks up a flight's current (mutable) state.
func (g *Ingestor) Flight(id string) (catalog.Flight, bool) {
	f, ok := g.flights[id]
	return f, ok
}

// AllFlights returns every known flight, sorted by ID for deterministic
// iteration.
func (g *Ingestor) AllFlights() []catalog.Flight {
	out := make([]catalog.Flight, 0, len(g.flights))
	for _, f := range g.flights {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Apply folds one round's events into the flight registry, departs any
// CHECKED_IN flight whose scheduled_departure has now been reached
// (§4.3: DEPARTED is implicit, never a wire event — the server's
// eventType is only ever SCHEDULED, CHECKED_IN, or LANDED), then advances
// the mirror's clock to the hour after the one just played (I2: the
// mirror always ends a round one hour ahead of the hour just played,
// ready for the next horizon computation). Unknown flight IDs are logged
// and skipped rather than treated as fatal — a server quirk shouldn't
// stop the round loop.
func (g *Ingestor) Apply(resp wire.PlayRoundResponse) []mirror.Movement {
	playedHour := resp.AbsoluteHour()

	for _, ev := range resp.FlightUpdates {
		f, ok := g.flights[ev.FlightID]
		if !ok {
			g.log.Warn("ingest: event for unknown flight", zap.String("flight_id", ev.FlightID))
			continue
		}

		newPhase := wire.PhaseFromWire(ev.EventType)
		prevPhase := f.Phase
		if newPhase < prevPhase {
			g.log.Warn("ingest: phase regression ignored",
				zap.String("flight_id", ev.FlightID),
				zap.String("from", prevPhase.String()), zap.String("to", newPhase.String()))
			continue
		}
		f.Phase = newPhase

		switch newPhase {
		case catalog.PhaseCheckedIn:
			f.ActualPassengers = ev.Passengers.ToDomain()
			f.HasActualPassengers = true
		case catalog.PhaseLanded:
			if arr := ev.Arrival.Absolute(); arr > 0 {
				f.ActualArrival = arr
			}
			if ev.Distance > 0 {
				f.ActualDistance = ev.Distance
			}
		}
		g.flights[ev.FlightID] = f
	}

	g.departScheduled(playedHour)

	return g.mir.AdvanceTo(playedHour + 1)
}

// departScheduled transitions every CHECKED_IN flight whose
// scheduled_departure has been reached into DEPARTED, in flight-id
// lexicographic order (§4.3's movement tiebreak), handing each one to the
// mirror so its committed load moves from reservation into transit.
func (g *Ingestor) departScheduled(hour int) {
	var ids []string
	for id, f := range g.flights {
		if f.Phase == catalog.PhaseCheckedIn && f.ScheduledDeparture <= hour {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		f := g.flights[id]
		f.Phase = catalog.PhaseDeparted
		g.flights[id] = f
		g.mir.Depart(id, f.Destination, f.EffectiveArrival())
	}
}

// ApplyPenalties logs every penalty the server already charged this round
// (informational: the costmodel's own estimate is for planning, the
// server's applied penalty is the ground truth for score tracking).
func (g *Ingestor) ApplyPenalties(penalties []wire.PenaltyDTO) {
	for _, p := range penalties {
		g.log.Info("server penalty",
			zap.String("code", p.Code), zap.Float64("amount", p.Penalty),
			zap.String("flight_id", p.FlightID), zap.String("flight_number", p.FlightNumber),
			zap.String("reason", p.Reason))
	}
}

func (g *Ingestor) String() string {
	return fmt.Sprintf("ingest: %d flights tracked", len(g.flights))
}
