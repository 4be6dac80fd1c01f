// Package validator is the Validator (C7): the last line of defense
// before a decision goes over the wire. It repairs what it can (clamping
// out-of-range quantities) and drops what it can't (references to flights
// that no longer accept loads), so a bug in the optimizer can never
// produce a request the server rejects outright.
package validator

import (
	"fmt"

	"rotablekit/internal/catalog"
	"rotablekit/internal/ingest"
	"rotablekit/internal/mirror"
	"rotablekit/internal/optimizer"
)

// MaxKitsPerClass is a sanity ceiling on any single quantity the
// optimizer could propose for one class in one round. Nothing in the
// network model produces numbers anywhere close to this; it exists so a
// runaway genetic mutation can never reach the server.
const MaxKitsPerClass = 42000

// Report is what came out of validation: the repaired decision plus the
// warnings (silently fixed) and errors (dropped entirely) it produced.
type Report struct {
	Repaired optimizer.Decision
	Warnings []string
	Errors   []string
}

// Validator holds the read-only lookups it needs to repair a decision.
type Validator struct {
	cat *catalog.Catalog
	ing *ingest.Ingestor
	mir *mirror.State
}

func New(cat *catalog.Catalog, ing *ingest.Ingestor, mir *mirror.State) *Validator {
	return &Validator{cat: cat, ing: ing, mir: mir}
}

// Validate repairs d against the current mirror state, returning the
// repaired copy in the Report; the input is not mutated.
func (v *Validator) Validate(d optimizer.Decision) Report {
	r := Report{}

	working := make(map[string]catalog.ClassVector)
	stockAt := func(code string) catalog.ClassVector {
		if s, ok := working[code]; ok {
			return s
		}
		s := v.mir.Inventory(code)
		working[code] = s
		return s
	}

	for _, l := range d.Loads {
		f, ok := v.ing.Flight(l.FlightID)
		if !ok {
			r.Errors = append(r.Errors, fmt.Sprintf("dropped load for unknown flight %s", l.FlightID))
			continue
		}
		if f.Phase >= catalog.PhaseDeparted {
			r.Errors = append(r.Errors, fmt.Sprintf("dropped load for already-departed flight %s", l.FlightID))
			continue
		}
		aircraft, ok := v.cat.Aircraft(f.AircraftTypeCode)
		if !ok {
			r.Errors = append(r.Errors, fmt.Sprintf("dropped load for flight %s: unknown aircraft type %s", l.FlightID, f.AircraftTypeCode))
			continue
		}

		available := stockAt(f.Origin)
		kits := l.Kits
		repaired := false
		for _, c := range catalog.AllClasses() {
			n := kits.Get(c)
			if n < 0 {
				n = 0
				repaired = true
			}
			if n > MaxKitsPerClass {
				n = MaxKitsPerClass
				repaired = true
			}
			if cap := aircraft.KitCapacity.Get(c); n > cap {
				n = cap
				repaired = true
			}
			if n > available.Get(c) {
				n = available.Get(c)
				repaired = true
			}
			kits = kits.Set(c, n)
		}
		if repaired {
			r.Warnings = append(r.Warnings, fmt.Sprintf("clamped load for flight %s to %s", l.FlightID, kits))
		}
		working[f.Origin] = available.Minus(kits)
		r.Repaired.Loads = append(r.Repaired.Loads, optimizer.LoadDecision{FlightID: l.FlightID, Kits: kits})
	}

	kits := d.Purchases
	repaired := false
	for _, c := range catalog.AllClasses() {
		n := kits.Get(c)
		if n < 0 {
			n = 0
			repaired = true
		}
		if n > MaxKitsPerClass {
			n = MaxKitsPerClass
			repaired = true
		}
		kits = kits.Set(c, n)
	}
	if repaired {
		r.Warnings = append(r.Warnings, fmt.Sprintf("clamped purchase order to %s", kits))
	}
	r.Repaired.Purchases = kits

	return r
}
