package main

import (
	"flexkb/internal/query"

	"github.com/spf13/cobra"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Find code examples for a method or operation",
	RunE:  runExamples,
}

var (
	examplesMethod    string
	examplesOperation string
	examplesObject    string
	examplesMax       int
)

func init() {
	rootCmd.AddCommand(examplesCmd)
	examplesCmd.Flags().StringVar(&examplesMethod, "method", "",
		"Specific method name to find examples for")
	examplesCmd.Flags().StringVar(&examplesOperation, "operation", "",
		"Operation type: create, read, update, delete, iterate, or search")
	examplesCmd.Flags().StringVar(&examplesObject, "object", "",
		"Object type to filter examples (e.g. LexEntry)")
	examplesCmd.Flags().IntVar(&examplesMax, "max-results", 5,
		"Maximum number of examples")
}

func runExamples(cmd *cobra.Command, args []string) error {
	logger := newCLILogger()
	engine, _ := mustGetEngine(logger)

	return printJSON(engine.FindExamples(query.ExamplesRequest{
		MethodName:    examplesMethod,
		OperationType: examplesOperation,
		ObjectType:    examplesObject,
		MaxResults:    examplesMax,
	}))
}
