// Package orchestrator is the Round Orchestrator (C8): it drives the game
// loop end to end (ingest -> horizon -> optimize -> validate -> submit ->
// publish) and runs a background watchdog that logs the orchestrator's
// phase once a minute. The watchdog does not measure round duration and
// takes no action on a slow round.
package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"rotablekit/internal/catalog"
	"rotablekit/internal/config"
	"rotablekit/internal/costmodel"
	"rotablekit/internal/evalclient"
	"rotablekit/internal/horizon"
	"rotablekit/internal/ingest"
	"rotablekit/internal/mirror"
	"rotablekit/internal/monitor"
	"rotablekit/internal/optimizer"
	"rotablekit/internal/rkerrors"
	"rotablekit/internal/validator"
	"rotablekit/internal/wire"
)

// Phase is the orchestrator's own state, distinct from a flight's Phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseStarting
	PhaseRunning
	PhaseStopping
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhaseStarting:
		return "STARTING"
	case PhaseRunning:
		return "RUNNING"
	case PhaseStopping:
		return "STOPPING"
	case PhaseDone:
		return "DONE"
	case PhaseFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// GameDurationHours is the fixed length of one game (spec §2).
const GameDurationHours = 720

// Orchestrator wires every component together and owns the round loop.
type Orchestrator struct {
	cfg    config.Config
	log    *zap.Logger
	client *evalclient.Client
	store  *monitor.Store

	mu        sync.Mutex
	phase     Phase
	sessionID string

	cat  *catalog.Catalog
	cost *costmodel.Model
	mir  *mirror.State
	ing  *ingest.Ingestor
	hz   *horizon.View
	opt  *optimizer.Optimizer
	val  *validator.Validator

	cron *cron.Cron
}

func New(cfg config.Config, log *zap.Logger, client *evalclient.Client, store *monitor.Store) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{cfg: cfg, log: log, client: client, store: store, phase: PhaseIdle}
}

// Phase returns the orchestrator's current state.
func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

func (o *Orchestrator) setPhase(p Phase) {
	o.mu.Lock()
	o.phase = p
	o.mu.Unlock()
}

// Run starts a session and plays every round to completion or until ctx
// is cancelled. A correlation id is generated per run for log tracing,
// the same way the teacher's server tags each solve request.
func (o *Orchestrator) Run(ctx context.Context) error {
	runID := uuid.New().String()
	log := o.log.With(zap.String("run_id", runID))

	o.setPhase(PhaseStarting)
	start, err := o.client.StartSession()
	if err != nil {
		o.setPhase(PhaseFailed)
		return err
	}
	o.sessionID = start.SessionID
	log = log.With(zap.String("session_id", o.sessionID))

	cat, validFlights, err := o.loadCatalog()
	if err != nil {
		o.setPhase(PhaseFailed)
		return err
	}
	for _, w := range cat.Warnings {
		log.Warn(w.String())
	}

	o.cat = cat
	o.cost = costmodel.New(cat, o.cfg.Penalty)
	o.mir = mirror.New(cat)
	o.ing = ingest.New(cat, o.mir, validFlights, log)
	o.hz = horizon.New(cat, o.ing, o.mir, o.cfg.HorizonLoadHours, o.cfg.HorizonBuyHours, GameDurationHours)
	o.opt = optimizer.New(cat, o.cost, o.mir, o.hz, o.cfg.GA, o.cfg.RandomSeed, log)
	o.val = validator.New(cat, o.ing, o.mir)

	o.startWatchdog(log)
	defer o.stopWatchdog()

	o.setPhase(PhaseRunning)
	var history []monitor.RoundSummary

	for hour := 0; hour < GameDurationHours; hour++ {
		select {
		case <-ctx.Done():
			o.setPhase(PhaseStopping)
			return ctx.Err()
		default:
		}

		roundStart := time.Now()
		decision := o.opt.Decide(hour, o.cfg.OptimizerBudget)
		report := o.val.Validate(decision)
		for _, w := range report.Warnings {
			log.Warn("validator repaired decision", zap.Int("hour", hour), zap.String("detail", w))
		}
		for _, e := range report.Errors {
			log.Error("validator dropped decision", zap.Int("hour", hour), zap.String("detail", e))
		}

		ref := wire.AbsoluteToReference(hour)
		req := wire.PlayRoundRequest{Day: ref.Day, Hour: ref.Hour}
		for _, l := range report.Repaired.Loads {
			if f, ok := o.ing.Flight(l.FlightID); ok {
				o.mir.CommitLoad(l.FlightID, f.Origin, l.Kits)
			}
			req.FlightLoads = append(req.FlightLoads, wire.FlightLoadDTO{FlightID: l.FlightID, LoadedKits: wire.ClassVectorFromDomain(l.Kits)})
		}
		if hub, ok := cat.Hub(); ok && report.Repaired.Purchases.Sum() > 0 {
			o.mir.Purchase(report.Repaired.Purchases, hour, hub.Code)
		}
		req.KitPurchasingOrders = wire.ClassVectorFromDomain(report.Repaired.Purchases)

		resp, err := o.client.PlayRound(req)
		if err != nil {
			if rkerrors.Is(err, rkerrors.KindTransport) {
				log.Error("round submission failed, continuing", zap.Int("hour", hour), zap.Error(err))
				continue
			}
			o.setPhase(PhaseFailed)
			return err
		}

		o.ing.ApplyPenalties(resp.Penalties)
		o.ing.Apply(resp)

		summary := o.buildSummary(hour, cat, report)
		history = append(history, summary)
		o.store.Publish(monitor.Snapshot{SessionID: o.sessionID, Running: true, Hour: hour, History: history})

		log.Debug("round complete",
			zap.Int("hour", hour), zap.Duration("elapsed", time.Since(roundStart)),
			zap.Float64("estimated_cost", summary.EstimatedCost))

		if resp.GameOver {
			break
		}
	}

	o.finalize(cat)
	o.setPhase(PhaseDone)
	if err := o.client.EndSession(); err != nil {
		log.Warn("session end request failed", zap.Error(err))
	}
	return nil
}

// buildSummary snapshots the round just played for the monitor surface,
// including a rough estimated cost (purchase spend plus any overstock
// now sitting at an airport above its declared capacity) for operator
// visibility; the server's own applied penalties remain the scoring
// ground truth (see Ingestor.ApplyPenalties).
func (o *Orchestrator) buildSummary(hour int, cat *catalog.Catalog, report validator.Report) monitor.RoundSummary {
	inv := make(map[string]catalog.ClassVector)
	estimated := 0.0
	for _, a := range cat.AllAirports() {
		stock := o.mir.Inventory(a.Code)
		inv[a.Code] = stock
		estimated += o.cost.OverstockPenalty(stock, a.StorageCapacity)
	}
	estimated += o.cost.PurchaseCost(report.Repaired.Purchases)
	var anomalies []string
	for _, a := range o.mir.Anomalies() {
		anomalies = append(anomalies, a.String())
	}
	return monitor.RoundSummary{Hour: hour, InventoryByAP: inv, Anomalies: anomalies, EstimatedCost: estimated}
}

// finalize applies the once-only end-of-game multiplier (Open Question
// #3) to whatever inventory remains at hour 720, purely for the
// operator-facing summary; it never feeds back into round-by-round cost.
func (o *Orchestrator) finalize(cat *catalog.Catalog) {
	var remaining catalog.ClassVector
	for _, a := range cat.AllAirports() {
		remaining = remaining.Plus(o.mir.Inventory(a.Code))
	}
	penalty := o.cost.EndOfGamePenalty(remaining.ClampNonNegative())
	o.log.Info("end of game", zap.Float64("residual_inventory_penalty", penalty))
}

func (o *Orchestrator) startWatchdog(log *zap.Logger) {
	o.cron = cron.New()
	_, err := o.cron.AddFunc("@every 1m", func() {
		log.Debug("watchdog tick", zap.String("phase", o.Phase().String()))
	})
	if err != nil {
		log.Warn("watchdog schedule failed", zap.Error(err))
		return
	}
	o.cron.Start()
}

func (o *Orchestrator) stopWatchdog() {
	if o.cron != nil {
		o.cron.Stop()
	}
}

// loadCatalog reads the three §6.2 CSV tables from cfg.DataDir. The static
// network description is never part of the /session/start handshake
// (wire.SessionStartResponse carries only the session id) — it is a
// separate external input the operator supplies alongside the API key.
func (o *Orchestrator) loadCatalog() (*catalog.Catalog, []catalog.Flight, error) {
	open := func(name string) (*os.File, error) {
		return os.Open(filepath.Join(o.cfg.DataDir, name))
	}

	airportsF, err := open("airports.csv")
	if err != nil {
		return nil, nil, rkerrors.Config("open airports.csv", err)
	}
	defer airportsF.Close()

	aircraftF, err := open("aircraft_types.csv")
	if err != nil {
		return nil, nil, rkerrors.Config("open aircraft_types.csv", err)
	}
	defer aircraftF.Close()

	flightsF, err := open("flight_plan.csv")
	if err != nil {
		return nil, nil, rkerrors.Config("open flight_plan.csv", err)
	}
	defer flightsF.Close()

	return catalog.LoadCSV(airportsF, aircraftF, flightsF)
}
