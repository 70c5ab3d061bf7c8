package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boxsim/internal/batch"
	"github.com/vovakirdan/boxsim/internal/storage"
)

var (
	flagSimTicks   int
	flagSimSeeds   int
	flagSimWorkers int
	flagSimVerify  bool
	flagSimSave    bool
	flagSimVerbose bool
)

var simCmd = &cobra.Command{
	Use:   "sim <scene>",
	Short: "Run a scene headless over many seeds",
	Long: `Run a scene without a terminal for a number of ticks, once per seed,
and print the final engine state of every run.

Seeds start at --seed (1 when unset) and count up. With --verify every
seed runs twice and the command fails if the two final hashes differ.

Examples:
  boxsim sim bounce
  boxsim sim pillars --seeds 64 --ticks 1200 --workers 8
  boxsim sim pong --verify --save
  boxsim sim bounce --resolver simple --verbose`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 600, "Ticks per run (a scene that ends stops early)")
	simCmd.Flags().IntVar(&flagSimSeeds, "seeds", 8, "Number of consecutive seeds to run")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Parallel runs (0 = GOMAXPROCS)")
	simCmd.Flags().BoolVar(&flagSimVerify, "verify", false, "Run every seed twice and compare hashes")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record every run in the database")
	simCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Log every finished run")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom scene config YAML")
	simCmd.Flags().StringVar(&flagResolver, "resolver", "", "Resolver preset: impulse, simple")
}

func runSim(_ *cobra.Command, args []string) {
	sceneID := args[0]
	requireScene(sceneID)

	if err := applySceneFlags(sceneID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	first := flagSeed
	if first == 0 {
		first = 1
	}

	logger := newLogger("boxsim-sim", flagSimVerbose)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := batch.Run(ctx, batch.Job{
		SceneID: sceneID,
		Seeds:   batch.Seeds(first, flagSimSeeds),
		Ticks:   flagSimTicks,
		Workers: flagSimWorkers,
		Verify:  flagSimVerify,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	t := newTable("Seed", "Ticks", "Bodies", "Hits", "Walls", "Score", "Energy", "Hash", "Time")
	total := 0
	for _, r := range results {
		total += r.Stats.Collisions
		hash := hexHash(r.Hash)
		if r.Verified {
			hash += " ok"
		}
		t.Row(
			fmt.Sprintf("%d", r.Seed),
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.Bodies),
			fmt.Sprintf("%d", r.Stats.Collisions),
			fmt.Sprintf("%d", r.Stats.WorldCollisions),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%.1f", r.Energy),
			hash,
			r.Duration.Round(time.Microsecond).String(),
		)
	}
	fmt.Println(t)
	fmt.Printf("%d runs, %d body contacts, resolver %s\n", len(results), total, results[0].Resolver)

	if !flagSimSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening records database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	for _, r := range results {
		if _, err := store.SaveRun(storage.RunRecord{
			SceneID:         sceneID,
			Seed:            r.Seed,
			Resolver:        r.Resolver,
			Ticks:           r.Ticks,
			Bodies:          r.Bodies,
			Collisions:      r.Stats.Collisions,
			WorldCollisions: r.Stats.WorldCollisions,
			Score:           r.Score,
			Hash:            r.Hash,
			Duration:        r.Duration,
		}); err != nil {
			logger.Error("could not save run", "seed", r.Seed, "error", err)
		}
	}
	logger.Info("runs saved", "count", len(results), "db", flagDBPath)
}
