package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/boxsim/internal/config"
	"github.com/vovakirdan/boxsim/internal/core"
	"github.com/vovakirdan/boxsim/internal/platform/tui"
	"github.com/vovakirdan/boxsim/internal/registry"
	"github.com/vovakirdan/boxsim/internal/scenes"
	"github.com/vovakirdan/boxsim/internal/storage"
)

var (
	flagConfig   string
	flagResolver string
)

var playCmd = &cobra.Command{
	Use:   "play <scene>",
	Short: "Run a scene",
	Long: `Open the specified scene in the terminal.

Controls:
  W/S, Up/Down     - Move paddle (pong)
  A/D, Left/Right  - Push bodies sideways (pillars)
  Space            - Kick bodies / serve
  N                - Spawn a body
  P                - Pause
  R                - Restart with a new seed
  Ctrl+S           - Save a text screenshot to ~/.boxsim/screenshots
  B/Esc, Q         - Quit

Resolver options:
  impulse - Bodies exchange velocity along the contact axis
  simple  - Both bodies reflect on the contact axis

Examples:
  boxsim play bounce
  boxsim play pong --seed 7
  boxsim play bounce --resolver simple
  boxsim play pillars --config ./my-pillars.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom scene config YAML")
	playCmd.Flags().StringVar(&flagResolver, "resolver", "", "Resolver preset: impulse, simple")
}

// applySceneFlags hands --config and --resolver to the scene options.
func applySceneFlags(sceneID string) error {
	preset, err := config.ParseResolverPreset(flagResolver)
	if err != nil {
		return err
	}
	scenes.SetResolverPreset(preset)
	if flagConfig != "" {
		scenes.SetConfigPath(sceneID, flagConfig)
	}
	return nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func runPlay(_ *cobra.Command, args []string) {
	sceneID := args[0]
	requireScene(sceneID)

	if err := applySceneFlags(sceneID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	scene, err := registry.Create(sceneID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		// Continue without storage
		store = nil
	}

	runErr := tui.Run(scene, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running scene: %v\n", runErr)
		os.Exit(1)
	}
}
