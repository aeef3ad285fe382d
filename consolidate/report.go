package consolidate

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrintSummary renders the run report for humans.
func PrintSummary(w io.Writer, report *Report) {
	header := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)

	header.Fprintln(w, "Consolidation Summary")
	fmt.Fprintf(w, "Run ID:             %s\n", report.RunID)
	fmt.Fprintf(w, "Files processed:    %d\n", report.FilesProcessed)
	if report.FilesFailed > 0 {
		warn.Fprintf(w, "Files failed:       %d\n", report.FilesFailed)
	} else {
		fmt.Fprintf(w, "Files failed:       0\n")
	}
	fmt.Fprintf(w, "Rows extracted:     %d\n", report.TotalRows)
	fmt.Fprintf(w, "Rows after cleanup: %d\n", report.CleanRows)
	fmt.Fprintf(w, "Duplicates removed: %d\n", report.DuplicatesRemoved)

	if !report.RangeStart.IsZero() {
		fmt.Fprintf(w, "Date range:         %s to %s\n",
			report.RangeStart.Format("2006-01-02"), report.RangeEnd.Format("2006-01-02"))
	}
	fmt.Fprintf(w, "Total amount:       %s\n", report.TotalAmount.StringFixed(2))

	if len(report.Sources) > 0 {
		fmt.Fprintln(w, "Sources:")
		for _, src := range report.Sources {
			good.Fprintf(w, "  %s: %d transactions\n", src.Source, src.Records)
		}
	}

	if len(report.Errors) > 0 {
		warn.Fprintf(w, "Warnings (%d shown):\n", len(report.Errors))
		for _, msg := range report.Errors {
			warn.Fprintf(w, "  - %s\n", msg)
		}
	}
}
