// Package wire holds the JSON-over-HTTP contract with the eval server
// (§6.1) and the conversion between wire DTOs and the domain types in
// internal/catalog and internal/optimizer. Keeping conversion in one
// place means the domain model never carries json tags, the same split
// the teacher's internal/converter keeps between proto messages and
// internal/models. The domain model works in absolute hours
// (day*24+hour); the server speaks {day, hour} pairs, so that
// conversion happens here and nowhere else.
package wire

import (
	json "github.com/goccy/go-json"

	"rotablekit/internal/catalog"
)

// SessionStartResponse is the body of POST /session/start: just the
// session identifier. The static network description (airports,
// aircraft, flight schedule) is a separate CSV input (§6.2) loaded
// independently of this handshake, never bundled into it.
type SessionStartResponse struct {
	SessionID string `json:"session_id"`
}

// ClassVectorDTO is the wire shape of a per-class quantity: camelCase,
// matching catalog.Class.String() and the server's loadedKits/
// kitPurchasingOrders/passengers objects alike.
type ClassVectorDTO struct {
	First          int `json:"first"`
	Business       int `json:"business"`
	PremiumEconomy int `json:"premiumEconomy"`
	Economy        int `json:"economy"`
}

func (d ClassVectorDTO) ToDomain() catalog.ClassVector {
	return catalog.ClassVector{First: d.First, Business: d.Business, PremiumEconomy: d.PremiumEconomy, Economy: d.Economy}
}

func ClassVectorFromDomain(v catalog.ClassVector) ClassVectorDTO {
	return ClassVectorDTO{First: v.First, Business: v.Business, PremiumEconomy: v.PremiumEconomy, Economy: v.Economy}
}

// ReferenceHour is the server's {day, hour} pair. The domain model only
// ever deals in absolute hours; ReferenceHour exists purely to cross the
// wire boundary.
type ReferenceHour struct {
	Day  int `json:"day"`
	Hour int `json:"hour"`
}

// Absolute converts a {day, hour} pair to day*24+hour.
func (r ReferenceHour) Absolute() int { return r.Day*24 + r.Hour }

// AbsoluteToReference splits an absolute hour count back into {day, hour}.
func AbsoluteToReference(hour int) ReferenceHour {
	return ReferenceHour{Day: hour / 24, Hour: hour % 24}
}

// PlayRoundRequest is the body of POST /play/round: this round's decision.
type PlayRoundRequest struct {
	Day                 int             `json:"day"`
	Hour                int             `json:"hour"`
	FlightLoads         []FlightLoadDTO `json:"flightLoads"`
	KitPurchasingOrders ClassVectorDTO  `json:"kitPurchasingOrders"`
}

type FlightLoadDTO struct {
	FlightID   string         `json:"flightId"`
	LoadedKits ClassVectorDTO `json:"loadedKits"`
}

// PlayRoundResponse is the server's reply: flight events since the last
// round, any penalties it has already charged, and the running total
// cost.
type PlayRoundResponse struct {
	Day           int              `json:"day"`
	Hour          int              `json:"hour"`
	FlightUpdates []FlightEventDTO `json:"flightUpdates"`
	Penalties     []PenaltyDTO     `json:"penalties"`
	TotalCost     float64          `json:"totalCost"`
	GameOver      bool             `json:"gameOver"`
}

// AbsoluteHour returns the response's {day, hour} as a single absolute
// hour count, the form the mirror and ingestor work in.
func (r PlayRoundResponse) AbsoluteHour() int { return r.Day*24 + r.Hour }

// FlightEventDTO is one flight's phase transition. EventType is one of
// SCHEDULED, CHECKED_IN, or LANDED (§6.1) — the server never sends a
// DEPARTED event; that transition is implicit, driven off
// scheduled_departure during advance_to (§4.3).
type FlightEventDTO struct {
	EventType          string         `json:"eventType"`
	FlightNumber       string         `json:"flightNumber"`
	FlightID           string         `json:"flightId"`
	OriginAirport      string         `json:"originAirport"`
	DestinationAirport string         `json:"destinationAirport"`
	Departure          ReferenceHour  `json:"departure"`
	Arrival            ReferenceHour  `json:"arrival"`
	Passengers         ClassVectorDTO `json:"passengers"`
	AircraftType       string         `json:"aircraftType"`
	Distance           float64        `json:"distance"`
}

// PenaltyDTO is one penalty the server has already charged. FlightID and
// FlightNumber are optional — some penalty codes (e.g. overstock) aren't
// tied to a single flight.
type PenaltyDTO struct {
	Code         string  `json:"code"`
	FlightID     string  `json:"flightId,omitempty"`
	FlightNumber string  `json:"flightNumber,omitempty"`
	IssuedDay    int     `json:"issuedDay"`
	IssuedHour   int     `json:"issuedHour"`
	Penalty      float64 `json:"penalty"`
	Reason       string  `json:"reason"`
}

// PhaseFromWire maps the server's eventType string onto catalog.Phase.
// DEPARTED is deliberately absent: it is never a wire value, only an
// internally-derived phase (see internal/ingest).
func PhaseFromWire(eventType string) catalog.Phase {
	switch eventType {
	case "SCHEDULED":
		return catalog.PhaseAnnounced
	case "CHECKED_IN":
		return catalog.PhaseCheckedIn
	case "LANDED":
		return catalog.PhaseLanded
	default:
		return catalog.PhaseAnnounced
	}
}

// Marshal and Unmarshal wrap goccy/go-json so every caller goes through
// the same encoder (the server's trailing-comma tolerance and allocation
// profile differ from encoding/json, and we want one codec everywhere).
func Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
