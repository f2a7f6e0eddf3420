package main

import (
	"flexkb/internal/version"

	"github.com/spf13/cobra"
)

var (
	// configDir is the directory holding flexkb.json
	configDir string
	// verbosity raises log detail on stderr (-v info, -vv debug)
	verbosity int
	// quiet suppresses all logging
	quiet bool
)

var rootCmd = &cobra.Command{
	Use:   "flexkb",
	Short: "flexkb - FieldWorks API knowledge base",
	Long: `flexkb is a knowledge base server for the FieldWorks Language Explorer
API surface. It indexes the FlexLibs and LibLCM documentation, builds a
relationship graph over the object model, and answers navigation, search,
and example queries over MCP or the command line.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("flexkb version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".",
		"Directory containing flexkb.json")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"Suppress all log output")
}
