package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gcascante/bankmerge/consolidate"
)

var (
	outputFile     string
	noDedupe       bool
	toleranceDays  int
	categorizeFlag bool
)

var consolidateCmd = &cobra.Command{
	Use:   "consolidate [files...]",
	Short: "Consolidate statements into one ledger CSV",
	Long: `Consolidates any number of statement files (CSV, XLSX, XLS, PDF) into
a single deduplicated ledger. Arguments may be glob patterns.

Examples:
  bankmerge consolidate ~/Finance/*.csv -o combined.csv
  bankmerge consolidate jan.pdf feb.pdf BAC_CRC_SEP.pdf -o ledger.csv --tolerance 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := consolidate.ExpandPaths(args)
		if err != nil {
			return err
		}

		opts := consolidate.Options{
			Dedupe:        !noDedupe,
			ToleranceDays: toleranceDays,
			Categorize:    categorizeFlag,
		}
		if !cmd.Flags().Changed("tolerance") {
			if configured := viper.GetInt("dedupe.tolerance_days"); configured > 0 {
				opts.ToleranceDays = configured
			}
		}

		records, report, err := consolidate.Run(paths, opts)
		if report != nil {
			consolidate.PrintSummary(os.Stderr, report)
		}
		if err != nil {
			// Covers ErrNoTransactions: zero output is a failure even
			// when individual files succeeded.
			return err
		}

		if err := consolidate.WriteCSV(outputFile, records); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputFile, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d transactions to %s\n", len(records), outputFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(consolidateCmd)
	consolidateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output CSV file (required)")
	consolidateCmd.Flags().BoolVar(&noDedupe, "no-dedupe", false, "disable duplicate removal")
	consolidateCmd.Flags().IntVar(&toleranceDays, "tolerance", 2, "days tolerance for fuzzy duplicate detection")
	consolidateCmd.Flags().BoolVar(&categorizeFlag, "categorize", false, "assign keyword-based categories")
	consolidateCmd.MarkFlagRequired("output")
}
