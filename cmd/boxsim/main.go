// boxsim is a terminal sandbox for a 2D axis-aligned box physics engine.
//
// Usage:
//
//	boxsim list              - List available scenes
//	boxsim play <scene>      - Run a scene interactively
//	boxsim menu              - Pick scenes from an interactive menu
//	boxsim sim <scene>       - Run a scene headless over many seeds
//	boxsim runs [scene]      - Show recorded headless runs
//	boxsim scores <scene>    - Show high scores for a scene
//	boxsim serve             - Start SSH server for remote play
//	boxsim stream <scene>    - Broadcast a headless scene over websockets
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.boxsim/boxsim.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boxsim/internal/registry"

	// Import scenes to register them
	_ "github.com/vovakirdan/boxsim/internal/scenes/bounce"
	_ "github.com/vovakirdan/boxsim/internal/scenes/pillars"
	_ "github.com/vovakirdan/boxsim/internal/scenes/pong"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "boxsim",
	Short: "boxsim - 2D box physics in your terminal",
	Long: `boxsim runs small physics scenes built on an axis-aligned bounding box
engine: free bodies bouncing off each other, a game of pong and a field
of static pillars.

Available commands:
  list     - Show all available scenes
  play     - Run a specific scene directly
  menu     - Interactive scene picker
  sim      - Headless batch runs with determinism checks
  runs     - Recorded headless runs
  scores   - High scores from interactive play
  serve    - Start SSH server for remote play
  stream   - Broadcast a scene to websocket spectators

Examples:
  boxsim list
  boxsim play bounce
  boxsim sim pillars --seeds 32 --ticks 600 --verify
  boxsim serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.boxsim/boxsim.db", "Path to records database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(streamCmd)
}

// requireScene exits with a hint when id is not registered.
func requireScene(id string) {
	if registry.Exists(id) {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", id)
	fmt.Fprintln(os.Stderr, "Run 'boxsim list' to see available scenes.")
	os.Exit(1)
}
