package main

import (
	"fmt"

	"flexkb/internal/search"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the API surface by capability",
	Long: `Search for methods and properties by what they do, using natural
language queries like "add gloss to sense" or "create new entry".`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var (
	searchMax        int
	searchMode       string
	searchNoSemantic bool
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchMax, "max-results", search.DefaultMaxResults,
		"Maximum number of results")
	searchCmd.Flags().StringVar(&searchMode, "mode", "all",
		"API mode: flexlibs2, flexlibs_stable, liblcm, or all")
	searchCmd.Flags().BoolVar(&searchNoSemantic, "no-semantic", false,
		"Skip vector search and use keyword matching only")
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := newCLILogger()
	engine, _ := mustGetEngine(logger)

	resp := engine.Search(cmd.Context(), search.Request{
		Query:      args[0],
		MaxResults: searchMax,
		Mode:       search.Mode(searchMode),
		NoSemantic: searchNoSemantic,
	})

	if len(resp.Results) == 0 {
		fmt.Printf("No results for %q in mode %s\n", resp.Query, resp.Mode)
		return nil
	}

	return printJSON(resp)
}
