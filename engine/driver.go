package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cfrbound/mccfr-solver/internal/rng"
)

// Utilities holds the two diagnostic scalars reported by Solve: the
// empirical average utility seen by each player across all trajectories.
type Utilities struct {
	P0 float64
	P1 float64
}

// Option configures a Solve call.
type Option func(*options)

type options struct {
	logger       *log.Logger
	progressStep uint64
	workers      int
}

// WithLogger attaches a structured logger that receives iteration
// milestones. A nil logger (the default) disables progress logging.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithProgressEvery logs a milestone every step completed trajectories.
// A step of 0 disables progress logging regardless of WithLogger.
func WithProgressEvery(step uint64) Option {
	return func(o *options) { o.progressStep = step }
}

// WithWorkers caps the number of concurrently in-flight trajectories.
// Values <= 0 mean "unbounded" (errgroup.SetLimit(-1)).
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// Solve is the single procedure the core exposes: Solve(N, seed,
// adapter) -> Infoset[]. N trajectories are distributed across a worker
// pool; ctx gates launching further trajectories but never aborts one
// already in flight, since the core does not support mid-trajectory
// cancellation.
func Solve[Node, State any](ctx context.Context, n uint64, seed uint64, g Game[Node, State], opts ...Option) (Store, Utilities, error) {
	cfg := options{progressStep: 0, workers: 0}
	for _, opt := range opts {
		opt(&cfg)
	}

	store, err := NewStore(g.Size())
	if err != nil {
		return Store{}, Utilities{}, err
	}

	if n == 0 {
		return store, Utilities{}, nil
	}

	var sumP0, sumP1 float64
	var mu sync.Mutex
	var violation any

	grp, gctx := errgroup.WithContext(ctx)
	if cfg.workers > 0 {
		grp.SetLimit(cfg.workers)
	}

	root := g.Root()

	for i := uint64(0); i < n; i++ {
		i := i
		grp.Go(func() (err error) {
			// A panic inside a trajectory (e.g. a ContractViolation) is
			// captured here and re-raised by Solve on its own goroutine.
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					if violation == nil {
						violation = r
					}
					mu.Unlock()
					err = fmt.Errorf("engine: trajectory %d panicked", i)
				}
			}()

			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			w := &worker[Node, State]{
				game:  g,
				store: store,
				rng:   rng.Derive(seed, i),
			}

			state0 := g.Init(w.rng)
			u0 := w.traverse(0, state0, root)

			state1 := g.Init(w.rng)
			u1 := -w.traverse(1, state1, root)

			mu.Lock()
			sumP0 += u0
			sumP1 += u1
			mu.Unlock()

			if cfg.logger != nil && cfg.progressStep > 0 && (i+1)%cfg.progressStep == 0 {
				cfg.logger.Info("solve progress", "iteration", i+1, "of", n)
			}

			return nil
		})
	}

	err = grp.Wait()
	if violation != nil {
		panic(violation)
	}
	if err != nil {
		return store, Utilities{}, err
	}

	return store, Utilities{P0: sumP0 / float64(n), P1: sumP1 / float64(n)}, nil
}
