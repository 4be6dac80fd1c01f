package optimizer

import (
	"context"
	"math/rand"
	"sort"

	"rotablekit/internal/catalog"
	"rotablekit/internal/config"
	"rotablekit/internal/costmodel"
	"rotablekit/internal/horizon"
	"rotablekit/internal/mirror"
)

// genome is one candidate decision: a per-flight load and a single hub
// purchase, aligned against a fixed flights slice for the round.
type genome struct {
	loads    []catalog.ClassVector
	purchase catalog.ClassVector
}

func (g genome) clone() genome {
	loads := make([]catalog.ClassVector, len(g.loads))
	copy(loads, g.loads)
	return genome{loads: loads, purchase: g.purchase}
}

// Genetic is the population-based search (§4.6). It always starts from
// the greedy baseline plus randomized variants, so it can only do as well
// or better than Greedy alone, never worse, once the deadline is honored
// (Optimizer picks whichever candidate scores lowest).
type Genetic struct {
	cat   *catalog.Catalog
	cost  *costmodel.Model
	mir   *mirror.State
	horiz *horizon.View
	cfg   config.GAConfig
	rng   *rand.Rand
}

func NewGenetic(cat *catalog.Catalog, cost *costmodel.Model, mir *mirror.State, horiz *horizon.View, cfg config.GAConfig, seed int64) *Genetic {
	return &Genetic{cat: cat, cost: cost, mir: mir, horiz: horiz, cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Decide runs the GA until ctx is done or NoImprovementLimit generations
// pass without a better candidate, seeded by the greedy baseline.
func (g *Genetic) Decide(ctx context.Context, hour int, seed Decision) Decision {
	flights := g.horiz.LoadableFlights(hour)
	sort.Slice(flights, func(i, j int) bool {
		if flights[i].ScheduledDeparture != flights[j].ScheduledDeparture {
			return flights[i].ScheduledDeparture < flights[j].ScheduledDeparture
		}
		return flights[i].ID < flights[j].ID
	})
	if len(flights) == 0 {
		return seed
	}

	seedGenome := genomeFromDecision(flights, seed)
	popSize := g.cfg.PopulationSize
	if popSize < 4 {
		popSize = 4
	}

	pop := g.initialPopulation(flights, seedGenome, hour, popSize)

	scores := make([]float64, popSize)
	for i, ind := range pop {
		scores[i] = g.score(flights, ind)
	}

	best := bestIndex(scores)
	bestScore := scores[best]
	bestGenome := pop[best]
	stale := 0

	for stale < g.cfg.NoImprovementLimit {
		select {
		case <-ctx.Done():
			return decisionFromGenome(flights, bestGenome)
		default:
		}

		next := make([]genome, 0, popSize)
		elite := eliteIndices(scores, g.cfg.ElitismCount)
		for _, idx := range elite {
			next = append(next, pop[idx])
		}
		for len(next) < popSize-1 {
			a := g.tournament(pop, scores)
			b := g.tournament(pop, scores)
			child := g.crossover(a, b)
			child = g.mutate(child, flights, g.cfg.MutationRate)
			next = append(next, child)
		}
		// The deterministic greedy baseline is re-injected every generation
		// (§4.6) so the GA's output is never worse than Greedy alone.
		next = append(next, seedGenome)
		pop = next

		for i, ind := range pop {
			scores[i] = g.score(flights, ind)
		}
		idx := bestIndex(scores)
		if scores[idx] < bestScore {
			bestScore = scores[idx]
			bestGenome = pop[idx]
			stale = 0
		} else {
			stale++
		}
	}

	return decisionFromGenome(flights, bestGenome)
}

// aggressiveBufferPct is the per-class load buffer the aggressive seed
// applies over exact passenger counts, grounded on
// _examples/original_source/backend/solution/strategies/genetic/initialization.py's
// _create_aggressive_individual.
var aggressiveBufferPct = map[catalog.Class]float64{
	catalog.ClassFirst:          0.10,
	catalog.ClassBusiness:       0.08,
	catalog.ClassPremiumEconomy: 0.05,
	catalog.ClassEconomy:        0.05,
}

// initialPopulation builds the starting generation as a mix of three seed
// types plus the greedy baseline (§4.6): conservative (exact passenger
// counts), aggressive (+5-10% per class), and uniform-random in
// [100%,110%], split roughly 30/30/40 over whatever's left after reserving
// a slot for the greedy seed. Grounded on initialization.py's
// initialize_population, which mixes the same three flavors.
func (g *Genetic) initialPopulation(flights []catalog.Flight, seedGenome genome, hour, popSize int) []genome {
	pop := make([]genome, 0, popSize)
	pop = append(pop, seedGenome)

	remaining := popSize - 1
	conservative := remaining * 30 / 100
	aggressive := remaining * 30 / 100
	random := remaining - conservative - aggressive

	for i := 0; i < conservative; i++ {
		pop = append(pop, g.seedConservative(flights, hour))
	}
	for i := 0; i < aggressive; i++ {
		pop = append(pop, g.seedAggressive(flights, hour))
	}
	for i := 0; i < random; i++ {
		pop = append(pop, g.seedUniformRandom(flights, hour))
	}
	for len(pop) < popSize {
		pop = append(pop, g.mutate(seedGenome.clone(), flights, 1.0))
	}
	return pop
}

// buildSeedGenome loads each flight to target(class, passengers) clamped by
// available stock and aircraft capacity, then runs the shared purchase
// sub-policy for the hub order.
func (g *Genetic) buildSeedGenome(flights []catalog.Flight, hour int, target func(catalog.Class, int) int) genome {
	gen := genome{loads: make([]catalog.ClassVector, len(flights))}

	working := make(map[string]catalog.ClassVector)
	stockAt := func(code string) catalog.ClassVector {
		if v, ok := working[code]; ok {
			return v
		}
		v := g.mir.Inventory(code)
		working[code] = v
		return v
	}

	for i, f := range flights {
		aircraft, ok := g.cat.Aircraft(f.AircraftTypeCode)
		if !ok {
			continue
		}
		available := stockAt(f.Origin)
		passengers := f.EffectivePassengers()

		var load catalog.ClassVector
		for _, c := range catalog.AllClasses() {
			n := target(c, passengers.Get(c))
			if n > aircraft.KitCapacity.Get(c) {
				n = aircraft.KitCapacity.Get(c)
			}
			if n > available.Get(c) {
				n = available.Get(c)
			}
			if n < 0 {
				n = 0
			}
			load = load.Set(c, n)
		}
		working[f.Origin] = available.Minus(load)
		gen.loads[i] = load
	}

	gen.purchase = decidePurchases(g.cat, g.horiz, hour)
	return gen
}

func (g *Genetic) seedConservative(flights []catalog.Flight, hour int) genome {
	return g.buildSeedGenome(flights, hour, func(_ catalog.Class, p int) int { return p })
}

func (g *Genetic) seedAggressive(flights []catalog.Flight, hour int) genome {
	return g.buildSeedGenome(flights, hour, func(c catalog.Class, p int) int {
		return p + int(float64(p)*aggressiveBufferPct[c])
	})
}

func (g *Genetic) seedUniformRandom(flights []catalog.Flight, hour int) genome {
	return g.buildSeedGenome(flights, hour, func(_ catalog.Class, p int) int {
		if p <= 0 {
			return p
		}
		span := p / 10 // up to +10%
		if span <= 0 {
			return p
		}
		return p + g.rng.Intn(span+1)
	})
}

func (g *Genetic) tournament(pop []genome, scores []float64) genome {
	size := g.cfg.TournamentSize
	if size < 2 {
		size = 2
	}
	bestIdx := g.rng.Intn(len(pop))
	for i := 1; i < size; i++ {
		candidate := g.rng.Intn(len(pop))
		if scores[candidate] < scores[bestIdx] {
			bestIdx = candidate
		}
	}
	return pop[bestIdx]
}

func (g *Genetic) crossover(a, b genome) genome {
	child := genome{loads: make([]catalog.ClassVector, len(a.loads))}
	for i := range a.loads {
		if g.rng.Intn(2) == 0 {
			child.loads[i] = a.loads[i]
		} else {
			child.loads[i] = b.loads[i]
		}
	}
	if g.rng.Intn(2) == 0 {
		child.purchase = a.purchase
	} else {
		child.purchase = b.purchase
	}
	return child
}

func (g *Genetic) mutate(gen genome, flights []catalog.Flight, rate float64) genome {
	for i := range gen.loads {
		if len(flights) <= i {
			continue
		}
		aircraft, ok := g.cat.Aircraft(flights[i].AircraftTypeCode)
		if !ok {
			continue
		}
		for _, c := range catalog.AllClasses() {
			if g.rng.Float64() >= rate {
				continue
			}
			delta := g.rng.Intn(5) - 2 // [-2, 2]
			n := gen.loads[i].Get(c) + delta
			if n < 0 {
				n = 0
			}
			if cap := aircraft.KitCapacity.Get(c); n > cap {
				n = cap
			}
			gen.loads[i] = gen.loads[i].Set(c, n)
		}
	}
	for _, c := range catalog.AllClasses() {
		if g.rng.Float64() >= rate {
			continue
		}
		delta := g.rng.Intn(11) - 5 // [-5, 5]
		n := gen.purchase.Get(c) + delta
		if n < 0 {
			n = 0
		}
		gen.purchase = gen.purchase.Set(c, n)
	}
	return gen
}

// score mirrors Greedy's sequential stock accounting so the GA is
// comparing candidates on the same terms the baseline is measured on.
func (g *Genetic) score(flights []catalog.Flight, ind genome) float64 {
	working := make(map[string]catalog.ClassVector)
	stockAt := func(code string) catalog.ClassVector {
		if v, ok := working[code]; ok {
			return v
		}
		v := g.mir.Inventory(code)
		working[code] = v
		return v
	}

	total := 0.0
	for i, f := range flights {
		aircraft, ok := g.cat.Aircraft(f.AircraftTypeCode)
		if !ok {
			continue
		}
		origin, ok := g.cat.Airport(f.Origin)
		if !ok {
			continue
		}
		destination, ok := g.cat.Airport(f.Destination)
		if !ok {
			continue
		}
		load := ind.loads[i]
		available := stockAt(f.Origin)
		remaining := available.Minus(load)

		total += g.cost.LoadingCost(origin, load)
		total += g.cost.MovementCost(f.EffectiveDistance(), aircraft, load)
		total += g.cost.ProcessingCost(destination, load)
		total += g.cost.OverloadPenalty(f.EffectiveDistance(), aircraft, load)
		total += g.cost.UnfulfilledPenalty(f.EffectiveDistance(), f.EffectivePassengers(), load)
		total += g.cost.NegativeInventoryPenalty(remaining)

		working[f.Origin] = remaining
	}
	total += g.cost.PurchaseCost(ind.purchase)
	return total
}

func genomeFromDecision(flights []catalog.Flight, d Decision) genome {
	byFlight := make(map[string]catalog.ClassVector, len(d.Loads))
	for _, l := range d.Loads {
		byFlight[l.FlightID] = l.Kits
	}
	g := genome{loads: make([]catalog.ClassVector, len(flights)), purchase: d.Purchases}
	for i, f := range flights {
		g.loads[i] = byFlight[f.ID]
	}
	return g
}

func decisionFromGenome(flights []catalog.Flight, g genome) Decision {
	d := Decision{Loads: make([]LoadDecision, 0, len(flights)), Purchases: g.purchase}
	for i, f := range flights {
		d.Loads = append(d.Loads, LoadDecision{FlightID: f.ID, Kits: g.loads[i]})
	}
	return d
}

func bestIndex(scores []float64) int {
	best := 0
	for i, s := range scores {
		if s < scores[best] {
			best = i
		}
	}
	return best
}

func eliteIndices(scores []float64, n int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return scores[idx[i]] < scores[idx[j]] })
	if n > len(idx) {
		n = len(idx)
	}
	return idx[:n]
}
