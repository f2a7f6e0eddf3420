package main

import (
	"context"
	"time"

	"flexkb/internal/mcp"
	"flexkb/internal/runner"
	"flexkb/internal/slogutil"
	"flexkb/internal/version"
	"flexkb/internal/watcher"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Start the Model Context Protocol (MCP) server.

The server communicates over stdio using JSON-RPC 2.0 and exposes the
knowledge base tools: get_object_api, search_by_capability,
get_navigation_path, find_examples, list_categories,
list_entities_in_category, get_module_template, run_module,
get_recommendations, refresh_index, and get_status.

Logs go to a rotating file under the state directory since stdout
carries the protocol stream.

This command is typically invoked by MCP clients and not directly by
users.`,
	RunE: runServe,
}

var serveWatch bool

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false,
		"Reload indexes when files under the index directory change")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Bootstrap logger until the config names the log file
	logger := newCLILogger()

	engine, cfg := mustGetEngine(logger)

	fileLogger, closer, err := slogutil.NewRotatingLogger(
		cfg.LogPath(),
		slogutil.ParseSize(cfg.Logging.MaxSize),
		cfg.Logging.MaxBackups,
		slogutil.LevelFromString(cfg.Logging.Level),
	)
	if err != nil {
		logger.Warn("Failed to open log file, logging to stderr",
			"path", cfg.LogPath(),
			"error", err.Error(),
		)
		fileLogger = logger
	} else {
		defer closer.Close()
	}

	fileLogger.Info("Starting MCP server",
		"version", version.Version,
	)

	run := runner.New(
		cfg.Runner.Interpreter,
		time.Duration(cfg.Runner.TimeoutSeconds)*time.Second,
		engine.LearnStore(),
		fileLogger,
	)

	if serveWatch || cfg.Watcher.Enabled {
		w, err := watcher.New(
			cfg.IndexDir,
			time.Duration(cfg.Watcher.DebounceMs)*time.Millisecond,
			engine.Reload,
			fileLogger,
		)
		if err != nil {
			fileLogger.Warn("Failed to create index watcher",
				"error", err.Error(),
			)
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if err := w.Start(ctx); err != nil {
				fileLogger.Warn("Failed to start index watcher",
					"error", err.Error(),
				)
			} else {
				defer w.Stop()
			}
		}
	}

	server := mcp.NewMCPServer(version.Version, engine, run, fileLogger)

	if err := server.Start(); err != nil {
		fileLogger.Error("MCP server error",
			"error", err.Error(),
		)
		return err
	}

	return nil
}
