package main

import (
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show learned API usage guidance",
	Long: `Show API patterns that have worked reliably across module runs,
patterns that keep failing, and recurring errors with examples.`,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	logger := newCLILogger()
	engine, _ := mustGetEngine(logger)

	return printJSON(engine.Recommendations())
}
