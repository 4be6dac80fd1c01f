package optimizer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"rotablekit/internal/catalog"
	"rotablekit/internal/config"
	"rotablekit/internal/costmodel"
	"rotablekit/internal/horizon"
	"rotablekit/internal/mirror"
)

// Optimizer runs the greedy baseline unconditionally, then spends
// whatever's left of the round's optimizer budget improving on it with
// the genetic search. The greedy result is always the floor: Decide never
// returns something worse than it, and never returns nothing.
type Optimizer struct {
	greedy  *Greedy
	genetic *Genetic
	log     *zap.Logger
}

func New(cat *catalog.Catalog, cost *costmodel.Model, mir *mirror.State, horiz *horizon.View, ga config.GAConfig, seed int64, log *zap.Logger) *Optimizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Optimizer{
		greedy:  NewGreedy(cat, cost, mir, horiz),
		genetic: NewGenetic(cat, cost, mir, horiz, ga, seed),
		log:     log,
	}
}

// Decide returns the round's decision, spending at most budget on the
// genetic refinement. A budget of zero or less skips the GA entirely and
// returns the greedy baseline.
func (o *Optimizer) Decide(hour int, budget time.Duration) Decision {
	start := time.Now()
	baseline := o.greedy.Decide(hour)
	if budget <= 0 {
		return baseline
	}

	ctx, cancel := context.WithTimeout(context.Background(), budget-time.Since(start))
	defer cancel()

	refined := o.genetic.Decide(ctx, hour, baseline)
	o.log.Debug("optimizer: round decided", zap.Int("hour", hour), zap.Duration("elapsed", time.Since(start)))
	return refined
}
