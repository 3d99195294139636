package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/jpalmerr/statekit"
	"github.com/jpalmerr/statekit/config"
	"github.com/jpalmerr/statekit/demo"
	"github.com/jpalmerr/statekit/sse"
)

// counterStore is the store the demo binds its actions to.
const counterStore = "counter"

// slowActionDelay simulates the latency of an asynchronous action's
// external work.
const slowActionDelay = 1500 * time.Millisecond

// demoEnv holds environment overrides for the demo server.
type demoEnv struct {
	// Port overrides the configured HTTP port when set.
	Port int `env:"STATEKIT_PORT"`
}

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// demoCmd serves the live counter demo.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Serve the live counter demo",
	Long: `Serve the statekit counter demo.

The command will:
  - Load store definitions from the specified YAML file
  - Build a dynamic store per definition
  - Bind counter actions (increment, decrement, reset, increment_slow)
    to the store named "counter"
  - Serve a live page that renders the state via Server-Sent Events

The server runs until interrupted (Ctrl+C) or receives SIGTERM. The
listen port comes from the definition file and can be overridden with
the STATEKIT_PORT environment variable.

Example:
  statekit demo -c stores.yaml
  STATEKIT_PORT=9090 statekit demo -c stores.yaml`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringP("config", "c", "", "path to store definitions file (required)")
	_ = demoCmd.MarkFlagRequired("config")
}

func runDemo(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var overrides demoEnv
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	port := cfg.Port
	if overrides.Port != 0 {
		port = overrides.Port
	}

	stores, err := config.BuildStores(cfg,
		statekit.WithLogger[map[string]any](logger),
	)
	if err != nil {
		return fmt.Errorf("failed to build stores: %w", err)
	}

	counter, ok := stores[counterStore]
	if !ok {
		return fmt.Errorf("definitions must include a store named %q", counterStore)
	}

	logger.Info("stores built", "count", len(stores))
	logger.Info("starting demo server", "port", port)

	actions := counterActions(counter)

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := sse.NewServer(counter, port, actions, demo.Site(), logger)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("failed to start demo server: %w", err)
	}

	logger.Info("demo available", "url", fmt.Sprintf("http://localhost:%d", port))

	<-ctx.Done()
	logger.Info("shutdown complete")
	return nil
}

// counterActions binds the demo's actions to the counter store and wraps
// them as HTTP action handlers.
func counterActions(counter *config.DynamicStore) map[string]sse.ActionHandler {
	increment := statekit.Action0(counter, func(s map[string]any) map[string]any {
		next := cloneState(s)
		next["count"] = asInt(s["count"]) + 1
		return next
	})

	decrement := statekit.Action0(counter, func(s map[string]any) map[string]any {
		next := cloneState(s)
		next["count"] = asInt(s["count"]) - 1
		return next
	})

	reset := statekit.Action0(counter, func(s map[string]any) map[string]any {
		next := cloneState(s)
		next["count"] = 0
		return next
	})

	markUpdating := statekit.Action(counter, func(s map[string]any, updating bool) map[string]any {
		next := cloneState(s)
		next["is_updating"] = updating
		return next
	})

	// return-style asynchronous action: the snapshot is taken when the
	// action starts, the external work is simulated with a delay, and the
	// single commit happens when the reducer returns
	incrementSlow := statekit.AsyncAction0(counter, func(ctx context.Context, s map[string]any) (map[string]any, error) {
		select {
		case <-time.After(slowActionDelay):
		case <-ctx.Done():
			return s, ctx.Err()
		}
		next := cloneState(s)
		next["count"] = asInt(s["count"]) + 1
		next["is_updating"] = false
		return next, nil
	})

	sync := func(fn func()) sse.ActionHandler {
		return func(ctx context.Context, _ json.RawMessage) error {
			fn()
			return nil
		}
	}

	return map[string]sse.ActionHandler{
		"increment": sync(increment),
		"decrement": sync(decrement),
		"reset":     sync(reset),
		"increment_slow": func(ctx context.Context, _ json.RawMessage) error {
			markUpdating(true)
			if err := incrementSlow(ctx); err != nil {
				markUpdating(false)
				return err
			}
			return nil
		},
	}
}

// cloneState copies a dynamic state map so reducers never mutate the
// previous state value in place.
func cloneState(s map[string]any) map[string]any {
	next := make(map[string]any, len(s))
	for k, v := range s {
		next[k] = v
	}
	return next
}

// asInt reads a numeric state field. YAML decodes integers as int, but a
// missing or malformed field should count from zero rather than panic.
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
