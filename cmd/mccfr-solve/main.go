// Command mccfr-solve runs the MCCFR engine against one of the adapters
// this module ships, and writes the resulting strategy to a JSON file.
// It is adapted from the teacher's cmd/poker-solver/main.go (flag
// parsing and save shape), with flags now parsed by kong and logging by
// charmbracelet/log, driving the generic engine against a selectable
// game rather than a fixed solver.
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/cfrbound/mccfr-solver/engine"
	"github.com/cfrbound/mccfr-solver/games/holdem"
	"github.com/cfrbound/mccfr-solver/games/kuhn"
)

var cli struct {
	Game string `kong:"default='kuhn',enum='kuhn,holdem',help='Which game to solve: kuhn or holdem.'"`

	Iterations uint64 `kong:"default='1000000',help='Number of sampled trajectories.'"`
	Seed       uint64 `kong:"default='42',help='Base RNG seed; trajectory i uses seed+i.'"`
	Workers    int    `kong:"default='0',help='Max concurrent trajectories (0 = unbounded).'"`
	Progress   uint64 `kong:"default='100000',help='Log a progress line every N completed trajectories (0 disables).'"`

	Out string `kong:"default='strategy.json',help='Output path for the solved strategy.'"`

	ActionTree string `kong:"name='action-tree',help='Path to the action-tree file (holdem only; see cmd/gen-actiontree).'"`
	FlopTable  string `kong:"name='flop-table',help='Path to the flop cluster table (holdem only).'"`
	TurnTable  string `kong:"name='turn-table',help='Path to the turn cluster table (holdem only).'"`
	RiverTable string `kong:"name='river-table',help='Path to the river cluster table (holdem only).'"`

	LogLevel string `kong:"name='log-level',default='info',enum='debug,info,warn,error',help='Logging verbosity.'"`
}

func main() {
	kong.Parse(&cli)

	logger := log.New(os.Stderr)
	defer func() {
		if r := recover(); r != nil {
			if cv, ok := r.(*engine.ContractViolation); ok {
				logger.Error("adapter contract violation", "err", cv)
				os.Exit(1)
			}
			panic(r)
		}
	}()

	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		logger.Fatal("parsing log level", "err", err)
	}
	logger.SetLevel(level)

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithProgressEvery(cli.Progress),
		engine.WithWorkers(cli.Workers),
	}

	start := time.Now()

	switch cli.Game {
	case "kuhn":
		runKuhn(logger, opts)
	case "holdem":
		runHoldem(logger, opts)
	default:
		logger.Fatal("unknown game", "game", cli.Game)
	}

	logger.Info("solve complete", "elapsed", time.Since(start))
}

func runKuhn(logger *log.Logger, opts []engine.Option) {
	g := kuhn.New()
	store, util, err := engine.Solve[kuhn.Node, kuhn.State](context.Background(), cli.Iterations, cli.Seed, g, opts...)
	if err != nil {
		logger.Fatal("solve failed", "err", err)
	}
	logger.Info("average utilities", "p0", util.P0, "p1", util.P1)
	writeSnapshot(logger, store)
}

func runHoldem(logger *log.Logger, opts []engine.Option) {
	if cli.ActionTree == "" {
		logger.Fatal("holdem requires --action-tree (see cmd/gen-actiontree)")
	}

	g, err := holdem.Load(cli.ActionTree, [4]string{"", cli.FlopTable, cli.TurnTable, cli.RiverTable})
	if err != nil {
		logger.Fatal("loading holdem adapter", "err", err)
	}

	store, util, err := engine.Solve[holdem.NodeID, holdem.State](context.Background(), cli.Iterations, cli.Seed, g, opts...)
	if err != nil {
		logger.Fatal("solve failed", "err", err)
	}
	logger.Info("average utilities (chips)", "p0", util.P0, "p1", util.P1)
	writeSnapshot(logger, store)
}

func writeSnapshot(logger *log.Logger, store engine.Store) {
	err := engine.Emit(store, engine.EmitterFunc(func(snapshot []engine.Infoset) error {
		f, err := os.Create(cli.Out)
		if err != nil {
			return err
		}
		defer f.Close()

		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot)
	}))
	if err != nil {
		logger.Fatal("writing strategy", "err", err)
	}
	logger.Info("strategy written", "path", cli.Out)
}
