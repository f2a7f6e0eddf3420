package main

import (
	"flexkb/internal/query"

	"github.com/spf13/cobra"
)

var objectCmd = &cobra.Command{
	Use:   "object <type>",
	Short: "Show the API of an object type",
	Long: `Look up the methods and properties of a FlexTools or LibLCM object
type such as ILexEntry or LexSenseOperations. Large objects can be
explored with --summary first, then paged with --limit and --offset.`,
	Args: cobra.ExactArgs(1),
	RunE: runObject,
}

var (
	objectSummary bool
	objectFilter  string
	objectLimit   int
	objectOffset  int
	objectNoFl2   bool
	objectNoLcm   bool
)

func init() {
	rootCmd.AddCommand(objectCmd)
	objectCmd.Flags().BoolVar(&objectSummary, "summary", false,
		"Return only method and property names")
	objectCmd.Flags().StringVar(&objectFilter, "filter", "",
		"Filter to methods containing this substring")
	objectCmd.Flags().IntVar(&objectLimit, "limit", query.DefaultMethodLimit,
		"Maximum number of methods to return")
	objectCmd.Flags().IntVar(&objectOffset, "offset", 0,
		"Number of methods to skip")
	objectCmd.Flags().BoolVar(&objectNoFl2, "no-flexlibs2", false,
		"Exclude FlexLibs 2.0 wrapper methods")
	objectCmd.Flags().BoolVar(&objectNoLcm, "no-liblcm", false,
		"Exclude raw LibLCM interface info")
}

func runObject(cmd *cobra.Command, args []string) error {
	logger := newCLILogger()
	engine, _ := mustGetEngine(logger)

	return printJSON(engine.GetObjectAPI(query.ObjectRequest{
		ObjectType:       args[0],
		IncludeFlexlibs2: !objectNoFl2,
		IncludeLiblcm:    !objectNoLcm,
		SummaryOnly:      objectSummary,
		MethodFilter:     objectFilter,
		Limit:            objectLimit,
		Offset:           objectOffset,
	}))
}
