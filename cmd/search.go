package cmd

import (
	"log"
	"os"

	"github.com/bioforensics/claspy/config"
	"github.com/bioforensics/claspy/internal/cellosaurus"
	"github.com/bioforensics/claspy/internal/claspy"
	"github.com/bioforensics/claspy/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stderr is for messages that must not mix with the summary table on stdout
var stderr = log.New(os.Stderr, "", 0)

// searchCmd ranks the reference cell lines against a query STR profile
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Rank the database's cell lines against a query STR profile",
	Long: `Search the installed Cellosaurus database for cell lines matching a query
STR profile.

The query is a CSV or TSV table with Sample, Marker, and Allele1..AlleleN
columns, one row per marker. Each sample in the table is searched separately
against every reference of its inferred species, and the top candidates are
summarized on stdout. Pass --out for a full CSV report with per-marker
allele detail for every reported cell line.`,
	Example:                    "  claspy search query.csv -o report.csv",
	Args:                       cobra.ExactArgs(1),
	SuggestionsMinimumDistance: 2,
	Run:                        runSearch,
}

func runSearch(cmd *cobra.Command, args []string) {
	c := config.New()
	if all, _ := cmd.Flags().GetBool("all-species"); all {
		c.Species.Restrict = false
	}
	db, err := cellosaurus.Load(c.DB)
	if err != nil {
		log.Fatalf("%v", err)
	}
	queries, err := claspy.ReadProfiles(args[0])
	if err != nil {
		log.Fatalf("%v", err)
	}
	opts := report.Options{MinScore: c.Search.MinScore, MaxHits: c.Search.MaxHits}
	reports := make([]*report.Report, 0, len(queries))
	for _, query := range queries {
		results, err := db.Search(query, c.RankOptions())
		if err != nil {
			log.Fatalf("%v", err)
		}
		reports = append(reports, report.New(query, results, opts))
	}
	if err := report.WriteSummary(os.Stdout, reports...); err != nil {
		log.Fatalf("%v", err)
	}
	if c.Out == "" {
		return
	}
	handle, err := os.Create(c.Out)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer handle.Close()
	if err := report.WriteCSV(handle, reports...); err != nil {
		log.Fatalf("%v", err)
	}
	stderr.Printf("\nFull report written to %s", c.Out)
}

// search flags
func init() {
	searchCmd.Flags().StringP("db", "d", "", "path to the Cellosaurus database; defaults to the installed copy")
	searchCmd.Flags().StringP("out", "o", "", "write a full report in CSV format to this file")
	searchCmd.Flags().StringP("algorithm", "a", string(claspy.AlgorithmQuery), "scoring algorithm: tanabe (2S/(Q+R)), query (S/Q), or reference (S/R)")
	searchCmd.Flags().StringP("mode", "m", string(claspy.ModeIntersect), "mode for handling missing data: intersect, query, or reference")
	searchCmd.Flags().Float64P("min-score", "s", 0.0, "do not report candidate matches with a score below this; 0 disables the filter")
	searchCmd.Flags().IntP("max-hits", "x", 20, "do not report more than this many candidate matches; <=0 disables the filter")
	searchCmd.Flags().Bool("amel", false, "include the Amelogenin marker, if present, in scoring calculations")
	searchCmd.Flags().Bool("all-species", false, "score against references of every species instead of the query's inferred species")
	searchCmd.Flags().String("on-indeterminate", string(claspy.WarnAndIncludeAll), "when the query's species cannot be inferred: warn-and-include-all or abort")
	searchCmd.Flags().IntP("threads", "t", 1, "worker goroutines for candidate scoring")

	viper.BindPFlag("db", searchCmd.Flags().Lookup("db"))
	viper.BindPFlag("out", searchCmd.Flags().Lookup("out"))
	viper.BindPFlag("search.algorithm", searchCmd.Flags().Lookup("algorithm"))
	viper.BindPFlag("search.mode", searchCmd.Flags().Lookup("mode"))
	viper.BindPFlag("search.min-score", searchCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("search.max-hits", searchCmd.Flags().Lookup("max-hits"))
	viper.BindPFlag("search.amel", searchCmd.Flags().Lookup("amel"))
	viper.BindPFlag("search.threads", searchCmd.Flags().Lookup("threads"))
	viper.BindPFlag("species.on-indeterminate", searchCmd.Flags().Lookup("on-indeterminate"))

	RootCmd.AddCommand(searchCmd)
}
