package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"flexkb/internal/config"
	"flexkb/internal/learn"
	"flexkb/internal/query"
	"flexkb/internal/slogutil"
)

var (
	engineOnce   sync.Once
	sharedEngine *query.Engine
	sharedConfig *config.Config
	engineErr    error
)

// getEngine returns a shared query engine, lazily initialized on first use.
func getEngine(logger *slog.Logger) (*query.Engine, *config.Config, error) {
	engineOnce.Do(func() {
		cfg, err := config.Load(configDir)
		if err != nil {
			engineErr = fmt.Errorf("failed to load config: %w", err)
			return
		}
		if err := cfg.Validate(); err != nil {
			engineErr = fmt.Errorf("invalid config: %w", err)
			return
		}

		store, err := learn.Open(cfg.PatternStorePath(), logger)
		if err != nil {
			engineErr = fmt.Errorf("failed to open pattern store: %w", err)
			return
		}

		engine, err := query.New(cfg, store, logger)
		if err != nil {
			engineErr = fmt.Errorf("failed to create engine: %w", err)
			return
		}

		sharedEngine = engine
		sharedConfig = cfg
	})

	return sharedEngine, sharedConfig, engineErr
}

// mustGetEngine returns the shared query engine or exits on error.
func mustGetEngine(logger *slog.Logger) (*query.Engine, *config.Config) {
	engine, cfg, err := getEngine(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing engine: %v\n", err)
		os.Exit(1)
	}
	return engine, cfg
}

// newCLILogger creates a stderr logger honoring the verbosity flags.
func newCLILogger() *slog.Logger {
	return slogutil.NewLogger(os.Stderr, slogutil.LevelFromVerbosity(verbosity, quiet))
}

// printJSON writes a value as indented JSON to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
