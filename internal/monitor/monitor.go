// Package monitor exposes a read-only HTTP surface (§6.3) over the
// orchestrator's latest round summary: status, per-airport inventory, and
// recent round history. It never touches the mirror or optimizer
// directly — it reads an atomically-swapped snapshot the orchestrator
// publishes after every round, so a slow HTTP client can never stall the
// round loop.
package monitor

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"rotablekit/internal/catalog"
	"rotablekit/internal/wire"
)

// RoundSummary is one round's published result.
type RoundSummary struct {
	Hour          int
	InventoryByAP map[string]catalog.ClassVector
	Anomalies     []string
	EstimatedCost float64
}

// Snapshot is the full state monitor reads exposes: current status plus
// bounded round history, newest last.
type Snapshot struct {
	SessionID string
	Running   bool
	Hour      int
	History   []RoundSummary
}

// Store is the atomically-swapped holder the orchestrator publishes to
// and the HTTP handlers read from.
type Store struct {
	current atomicSnapshot
}

func NewStore() *Store {
	s := &Store{}
	s.current.store(Snapshot{})
	return s
}

func (s *Store) Publish(snap Snapshot) { s.current.store(snap) }
func (s *Store) Load() Snapshot        { return s.current.load() }

// New builds the monitoring router. The chi router mirrors the shape of
// a state/history read surface bolted onto a running engine.
func New(store *Store) http.Handler {
	r := chi.NewRouter()

	r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
		snap := store.Load()
		w.Header().Set("Content-Type", "application/json")
		body, _ := wire.Marshal(map[string]any{
			"session_id": snap.SessionID,
			"running":    snap.Running,
			"hour":       snap.Hour,
		})
		w.Write(body)
	})

	r.Get("/inventory", func(w http.ResponseWriter, req *http.Request) {
		snap := store.Load()
		w.Header().Set("Content-Type", "application/json")
		if len(snap.History) == 0 {
			w.Write([]byte("{}"))
			return
		}
		latest := snap.History[len(snap.History)-1]
		dto := make(map[string]wire.ClassVectorDTO, len(latest.InventoryByAP))
		for code, v := range latest.InventoryByAP {
			dto[code] = wire.ClassVectorFromDomain(v)
		}
		body, _ := wire.Marshal(dto)
		w.Write(body)
	})

	r.Get("/history", func(w http.ResponseWriter, req *http.Request) {
		limit := 20
		if raw := req.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}
		snap := store.Load()
		start := 0
		if len(snap.History) > limit {
			start = len(snap.History) - limit
		}
		w.Header().Set("Content-Type", "application/json")
		body, _ := wire.Marshal(snap.History[start:])
		w.Write(body)
	})

	return r
}
