package main

import (
	"fmt"

	"flexkb/internal/query"

	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print a FlexTools module scaffold",
	Long: `Print the official FlexTools module template, ready to fill in.
Pass --name and --synopsis to pre-populate the docstring fields.`,
	RunE: runTemplate,
}

var (
	templateName     string
	templateSynopsis string
	templateModifies bool
)

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.Flags().StringVar(&templateName, "name", "",
		"Name for the new module")
	templateCmd.Flags().StringVar(&templateSynopsis, "synopsis", "",
		"Short description of what the module does")
	templateCmd.Flags().BoolVar(&templateModifies, "modifies-db", false,
		"Mark the module as modifying the database")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	logger := newCLILogger()
	engine, _ := mustGetEngine(logger)

	result := engine.ModuleTemplate(query.TemplateRequest{
		ModuleName: templateName,
		Synopsis:   templateSynopsis,
		ModifiesDB: templateModifies,
	})

	fmt.Print(result.Template)
	return nil
}
