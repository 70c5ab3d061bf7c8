// Package batch runs scenes headless over many seeds in parallel and
// checks that every run is reproducible.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/boxsim/internal/core"
	"github.com/vovakirdan/boxsim/internal/physics"
	"github.com/vovakirdan/boxsim/internal/registry"
	"github.com/vovakirdan/boxsim/internal/scenes"
)

var (
	// ErrNondeterministic is returned when two runs of the same seed end in
	// different engine states.
	ErrNondeterministic = errors.New("batch: nondeterministic run")

	// ErrNoSeeds is returned for a job without seeds.
	ErrNoSeeds = errors.New("batch: no seeds")
)

// Job describes a batch of headless runs of one scene.
type Job struct {
	SceneID string
	Seeds   []int64
	Ticks   int  // Upper bound; a run stops early when the scene ends
	Workers int  // Parallel runs, defaults to GOMAXPROCS
	Verify  bool // Run every seed twice and compare hashes

	// Factory overrides the registry lookup of SceneID.
	Factory registry.Factory
}

// Result is the outcome of one seed.
type Result struct {
	Seed     int64
	Ticks    int
	Bodies   int
	Score    int
	GameOver bool
	Resolver string
	Stats    physics.Stats
	Hash     uint64
	Energy   float64
	Duration time.Duration
	Verified bool
}

// Seeds returns n consecutive seeds starting at first.
func Seeds(first int64, n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = first + int64(i)
	}
	return seeds
}

// Run executes job and returns one result per seed, in seed order.
// The first failing seed cancels the rest. A nil logger discards output.
func Run(ctx context.Context, job Job, logger *log.Logger) ([]Result, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if len(job.Seeds) == 0 {
		return nil, ErrNoSeeds
	}
	factory, err := job.factory()
	if err != nil {
		return nil, err
	}

	workers := job.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logger.Info("Starting batch",
		"scene", job.SceneID,
		"seeds", len(job.Seeds),
		"ticks", job.Ticks,
		"workers", workers,
		"verify", job.Verify,
	)
	start := time.Now()

	results := make([]Result, len(job.Seeds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, seed := range job.Seeds {
		g.Go(func() error {
			r, err := runSeed(ctx, factory, seed, job.Ticks)
			if err != nil {
				return err
			}

			if job.Verify {
				again, err := runSeed(ctx, factory, seed, job.Ticks)
				if err != nil {
					return err
				}
				if again.Hash != r.Hash {
					return fmt.Errorf("%w: scene %s seed %d: %016x then %016x",
						ErrNondeterministic, job.SceneID, seed, r.Hash, again.Hash)
				}
				r.Verified = true
			}

			logger.Debug("Run finished",
				"scene", job.SceneID,
				"seed", seed,
				"ticks", r.Ticks,
				"collisions", r.Stats.Collisions,
				"hash", fmt.Sprintf("%016x", r.Hash),
				"duration", r.Duration,
			)
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Batch failed", "scene", job.SceneID, "error", err)
		return nil, err
	}

	logger.Info("Batch finished", "scene", job.SceneID, "runs", len(results), "elapsed", time.Since(start))
	return results, nil
}

func (j Job) factory() (registry.Factory, error) {
	if j.Factory != nil {
		return j.Factory, nil
	}
	if !registry.Exists(j.SceneID) {
		return nil, fmt.Errorf("batch: unknown scene %q", j.SceneID)
	}
	return func() registry.Scene {
		s, _ := registry.Create(j.SceneID) //nolint:errcheck // Existence checked above
		return s
	}, nil
}

// runSeed resets a fresh scene with seed and steps it with empty input.
// ctx is checked before every tick.
func runSeed(ctx context.Context, factory registry.Factory, seed int64, ticks int) (Result, error) {
	scene := factory()
	scene.Reset(core.HeadlessConfig(seed))

	start := time.Now()
	empty := core.NewInputFrame()
	var state core.SceneState
	for range ticks {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		state = scene.Step(empty).State
		if state.GameOver {
			break
		}
	}
	elapsed := time.Since(start)

	engine := scene.Engine()
	snap := engine.Snapshot()
	return Result{
		Seed:     seed,
		Ticks:    engine.Tick(),
		Bodies:   engine.Len(),
		Score:    scene.State().Score,
		GameOver: scene.State().GameOver,
		Resolver: scenes.ResolverLabel(engine),
		Stats:    engine.Stats(),
		Hash:     snap.Hash(),
		Energy:   snap.KineticEnergy(),
		Duration: elapsed,
	}, nil
}
