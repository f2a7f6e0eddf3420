package main

import (
	"fmt"
	"os"
	"time"

	"flexkb/internal/runner"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <module.py>",
	Short: "Run a FlexTools module against a FieldWorks project",
	Long: `Execute a FlexTools module file against a FieldWorks project using
FlexLibs directly. Runs read-only by default; pass --write to enable
database modification. Always back up the project before writing.

The run outcome is recorded in the pattern store, so repeated successes
and failures feed the recommend command.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

var (
	runProject string
	runWrite   bool
	runTimeout int
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runProject, "project", "",
		"Name of the FieldWorks project to open (required)")
	runCmd.Flags().BoolVar(&runWrite, "write", false,
		"Enable write access to the database")
	runCmd.Flags().IntVar(&runTimeout, "timeout", 0,
		"Maximum execution time in seconds (0 uses the configured default)")
	_ = runCmd.MarkFlagRequired("project")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := newCLILogger()
	engine, cfg := mustGetEngine(logger)

	code, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read module file: %w", err)
	}

	run := runner.New(
		cfg.Runner.Interpreter,
		time.Duration(cfg.Runner.TimeoutSeconds)*time.Second,
		engine.LearnStore(),
		logger,
	)

	job := runner.Job{
		Code:         string(code),
		Project:      runProject,
		WriteEnabled: runWrite,
	}
	if runTimeout > 0 {
		job.Timeout = time.Duration(runTimeout) * time.Second
	}

	result := run.Run(cmd.Context(), job)

	if err := printJSON(result); err != nil {
		return err
	}
	if !result.Success {
		os.Exit(1)
	}
	return nil
}
