package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boxsim/internal/registry"
	"github.com/vovakirdan/boxsim/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [scene]",
	Short: "Show recorded runs",
	Long: `List the most recent runs stored by 'boxsim sim --save' and by
interactive play, newest first. Without a scene every scene is listed.

Examples:
  boxsim runs
  boxsim runs bounce --limit 50
  boxsim runs pong --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the scene's recorded runs")
}

func runRuns(_ *cobra.Command, args []string) {
	sceneID := ""
	if len(args) == 1 {
		sceneID = args[0]
		requireScene(sceneID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening records database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsClear {
		if sceneID == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a scene")
			return
		}
		if err := store.ClearRuns(sceneID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared runs for %s\n", registry.Title(sceneID))
		return
	}

	runs, err := store.RecentRuns(sceneID, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'boxsim sim <scene> --save' to record some.")
		return
	}

	t := newTable("ID", "Scene", "Seed", "Resolver", "Ticks", "Hits", "Score", "Hash", "Date")
	for _, r := range runs {
		t.Row(
			shortID(r.ID),
			r.SceneID,
			fmt.Sprintf("%d", r.Seed),
			r.Resolver,
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.Collisions),
			fmt.Sprintf("%d", r.Score),
			hexHash(r.Hash),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	fmt.Println(t)

	if sceneID == "" {
		return
	}
	stats, err := store.SceneStats(sceneID)
	if err == nil && stats.Runs > 0 {
		fmt.Printf("%d runs, %.1f hits on average, %d at most, %s average duration\n",
			stats.Runs, stats.AvgCollisions, stats.MaxCollisions, stats.AvgDuration)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
