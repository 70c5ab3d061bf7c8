package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/boxsim/internal/stream"
)

var (
	flagStreamAddr    string
	flagStreamPath    string
	flagStreamVerbose bool
)

var streamCmd = &cobra.Command{
	Use:   "stream <scene>",
	Short: "Broadcast a headless scene over websockets",
	Long: `Run a scene without a terminal and push a JSON state frame to every
connected websocket spectator after each tick. Spectators may send
{"type":"input","action":"kick"} (or "spawn", "pause") to poke the scene.
A scene that ends restarts with the next seed.

Examples:
  boxsim stream bounce
  boxsim stream pong --addr :9000 --fps 30
  boxsim stream pillars --resolver simple`,
	Args: cobra.ExactArgs(1),
	Run:  runStream,
}

func init() {
	streamCmd.Flags().StringVar(&flagStreamAddr, "addr", ":8080", "HTTP listen address")
	streamCmd.Flags().StringVar(&flagStreamPath, "path", "/ws", "Websocket endpoint path")
	streamCmd.Flags().BoolVar(&flagStreamVerbose, "verbose", false, "Log discarded spectator messages")
	streamCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom scene config YAML")
	streamCmd.Flags().StringVar(&flagResolver, "resolver", "", "Resolver preset: impulse, simple")
}

func runStream(_ *cobra.Command, args []string) {
	sceneID := args[0]
	requireScene(sceneID)

	if err := applySceneFlags(sceneID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := newLogger("boxsim-stream", flagStreamVerbose)
	hub, err := stream.NewHub(stream.HubConfig{
		SceneID:  sceneID,
		Seed:     seed,
		TickRate: flagFPS,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(flagStreamPath, hub.Handle)
	srv := &http.Server{
		Addr:              flagStreamAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", flagStreamAddr, "path", flagStreamPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return hub.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stream stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("stream stopped")
}
