package main

import (
	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path <from> <to>",
	Short: "Find a navigation path between two object types",
	Long: `Find how to navigate from one object type to another in the
FieldWorks data model, for example from ILexEntry to
ILexExampleSentence. Prints the steps and a generated code pattern.`,
	Args: cobra.ExactArgs(2),
	RunE: runPath,
}

func init() {
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	logger := newCLILogger()
	engine, _ := mustGetEngine(logger)

	return printJSON(engine.FindPath(args[0], args[1]))
}
