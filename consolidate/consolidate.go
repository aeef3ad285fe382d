package consolidate

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gcascante/bankmerge/categorize"
	"github.com/gcascante/bankmerge/extractor"
	"github.com/gcascante/bankmerge/extractor/common"
)

// ErrNoTransactions signals that the whole batch produced nothing.
// Individual file failures never abort a run; this is the one
// aggregate condition the caller must treat as failure.
var ErrNoTransactions = errors.New("no transactions extracted from any source")

// maxReportedErrors caps how many failure messages the report carries.
const maxReportedErrors = 5

// Options configures a consolidation run.
type Options struct {
	Dedupe        bool
	ToleranceDays int
	Categorize    bool
}

// DefaultOptions mirrors the CLI defaults.
func DefaultOptions() Options {
	return Options{Dedupe: true, ToleranceDays: 2}
}

// SourceCount is one source's contribution, in input order.
type SourceCount struct {
	Source  string
	Records int
}

// Report summarizes a consolidation run.
type Report struct {
	RunID             string
	FilesProcessed    int
	FilesFailed       int
	TotalRows         int
	CleanRows         int
	DuplicatesRemoved int
	RangeStart        time.Time
	RangeEnd          time.Time
	TotalAmount       decimal.Decimal
	Sources           []SourceCount
	Errors            []string
}

// Run consolidates every path into one ledger: extract, clean, dedupe,
// sort. Per-file failures are recorded and skipped; only an entirely
// empty result is an error.
func Run(paths []string, opts Options) ([]common.Transaction, *Report, error) {
	report := &Report{RunID: uuid.NewString()}

	var combined []common.Transaction
	for _, path := range paths {
		records, err := extractor.ProcessFile(path, extractor.KindAuto)
		if err != nil {
			report.FilesFailed++
			if len(report.Errors) < maxReportedErrors {
				report.Errors = append(report.Errors, err.Error())
			}
			logrus.WithField("file", path).WithError(err).Warn("skipping source")
			continue
		}
		report.FilesProcessed++
		combined = append(combined, records...)
	}
	report.TotalRows = len(combined)

	combined = clean(combined)
	report.CleanRows = len(combined)

	if opts.Dedupe {
		before := len(combined)
		combined = Dedupe(combined, opts.ToleranceDays)
		report.DuplicatesRemoved = before - len(combined)
	}

	// Stable sort keeps insertion order for same-day records.
	sort.SliceStable(combined, func(a, b int) bool {
		return combined[a].Date.Before(combined[b].Date)
	})

	if opts.Categorize {
		combined = categorize.Apply(combined)
	}

	finishReport(report, combined)

	if len(combined) == 0 {
		return nil, report, ErrNoTransactions
	}
	return combined, report, nil
}

// clean enforces the admission invariants: date and amount present,
// not future-dated, not zero-amount, description trimmed.
func clean(records []common.Transaction) []common.Transaction {
	cutoff := time.Now()
	kept := records[:0:0]
	dropped := 0

	for _, tx := range records {
		if tx.Date.IsZero() || tx.Amount.IsZero() || tx.Date.After(cutoff) {
			dropped++
			continue
		}
		tx.Description = strings.TrimSpace(tx.Description)
		kept = append(kept, tx)
	}

	if dropped > 0 {
		logrus.WithField("dropped", dropped).Info("removed incomplete, zero-amount or future-dated records")
	}
	return kept
}

func finishReport(report *Report, records []common.Transaction) {
	counts := make(map[string]int)
	var order []string

	for _, tx := range records {
		report.TotalAmount = report.TotalAmount.Add(tx.Amount)
		if _, seen := counts[tx.SourceFile]; !seen {
			order = append(order, tx.SourceFile)
		}
		counts[tx.SourceFile]++

		if report.RangeStart.IsZero() || tx.Date.Before(report.RangeStart) {
			report.RangeStart = tx.Date
		}
		if tx.Date.After(report.RangeEnd) {
			report.RangeEnd = tx.Date
		}
	}

	for _, source := range order {
		report.Sources = append(report.Sources, SourceCount{Source: source, Records: counts[source]})
	}
}

// ExpandPaths glob-expands each argument and keeps only supported
// files. Arguments that expand to nothing stay as-is so their absence
// is reported as a per-file failure instead of vanishing silently.
func ExpandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
