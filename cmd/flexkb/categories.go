package main

import (
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories [category]",
	Short: "List API categories or the entities in one",
	Long: `Without arguments, lists all API categories (lexicon, grammar,
texts, ...) with entity counts. With a category name, lists the
entities in that category.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	logger := newCLILogger()
	engine, _ := mustGetEngine(logger)

	if len(args) == 1 {
		return printJSON(engine.ListEntitiesInCategory(args[0]))
	}
	return printJSON(engine.ListCategories())
}
