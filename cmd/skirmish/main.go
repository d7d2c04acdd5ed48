// Package main is the entry point for Skirmish.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/config"
	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/logging"
	"github.com/samdwyer/skirmish/internal/spectate"
	"github.com/samdwyer/skirmish/internal/telemetry"
	"github.com/samdwyer/skirmish/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes one invocation and returns the process exit code. Every
// deferred cleanup has run by the time it returns.
func run(args []string, stdout io.Writer) int {
	// Not fatal: variables may be set directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	fs := flag.NewFlagSet("skirmish", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("SKIRMISH_CONFIG"), "path to a TOML config file")
	mode := fs.String("mode", "tui", "tui, headless or serve")
	seed := fs.Int64("seed", 0, "random seed (0 = use config, then random)")
	maxTicks := fs.Uint64("max-ticks", 100000, "headless mode: stop after this many ticks")
	logFile := fs.String("log-file", "skirmish.log", "tui mode: where logs go")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	switch *mode {
	case "tui", "headless", "serve":
	default:
		log.Printf("Unknown mode %q", *mode)
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}
	if lvl := os.Getenv("SKIRMISH_LOG_LEVEL"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	var logger *zap.Logger
	if *mode == "tui" {
		logger, err = logging.NewFile(cfg.Logging, *logFile)
	} else {
		logger, err = logging.New(cfg.Logging)
	}
	if err != nil {
		log.Printf("Failed to build logger: %v", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		setupOTelEnv(cfg.Telemetry.ServiceName)
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName)
		if err != nil {
			// The game still works without observability.
			logger.Warn("telemetry setup failed", zap.Error(err))
		} else {
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(sctx); err != nil {
					logger.Warn("telemetry shutdown failed", zap.Error(err))
				}
			}()
		}
	}

	g, err := game.New(game.ConfigFrom(cfg), game.WithLogger(logger))
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		return 1
	}
	if err := g.Initialize(ctx); err != nil {
		logger.Error("failed to initialize game", zap.Error(err))
		return 1
	}

	switch *mode {
	case "tui":
		err = runTUI(ctx, g, cfg, logger)
	case "headless":
		st := game.Simulate(ctx, g, *maxTicks)
		fmt.Fprintf(stdout, "game %s: winner=%s ticks=%d player=%d enemy=%d\n",
			st.ID, st.Winner, st.Tick, st.PlayerUnits, st.EnemyUnits)
	case "serve":
		err = serve(ctx, g, cfg, logger)
	}
	if err != nil {
		logger.Error("exiting", zap.Error(err))
		return 1
	}
	return 0
}

func runTUI(ctx context.Context, g *game.Game, cfg *config.Config, logger *zap.Logger) error {
	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer screen.Close()

	return ui.NewApp(g, screen, cfg.Server.FrameRate, logger).Run(ctx, nil)
}

// serve runs the game in real time and streams it to websocket spectators
// on /ws.
func serve(ctx context.Context, g *game.Game, cfg *config.Config, logger *zap.Logger) error {
	hub := spectate.NewHub(logger)
	detach := hub.Attach(g.Bus())
	defer detach()

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{
		Addr:              cfg.Server.BindAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("serving spectators", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case err := <-errc:
			logger.Error("http server failed", zap.Error(err))
			cancel()
		case <-loopCtx.Done():
		}
	}()

	err := game.Run(loopCtx, g, cfg.Server.FrameRate, hub.Commands())

	sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer scancel()
	if serr := srv.Shutdown(sctx); serr != nil {
		logger.Warn("http shutdown failed", zap.Error(serr))
	}
	return err
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is
// provided and no endpoint is configured.
func setupOTelEnv(dataset string) {
	apiKey := os.Getenv("HONEYCOMB_SKIRMISH_API_KEY")
	if apiKey == "" || os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		return
	}
	if d := os.Getenv("HONEYCOMB_SKIRMISH_DATASET"); d != "" {
		dataset = d
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
