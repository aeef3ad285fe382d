package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gcascante/bankmerge/consolidate"
	"github.com/gcascante/bankmerge/extractor/common"
)

// ImportResult tracks the outcome of an import operation.
type ImportResult struct {
	RunID    string
	Inserted int
	Skipped  int
}

// Import consolidates the given statement files and stores the result.
// Rows already present under the natural key (date, description,
// amount, source_file) are skipped, so re-importing an overlapping
// statement is harmless.
func (db *DB) Import(ctx context.Context, paths []string, opts consolidate.Options) (*ImportResult, error) {
	records, report, err := consolidate.Run(paths, opts)
	if err != nil {
		return nil, err
	}

	if err := db.recordRun(ctx, report); err != nil {
		return nil, err
	}

	inserted, skipped, err := db.insertTransactions(ctx, report.RunID, records)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"run":      report.RunID,
		"inserted": inserted,
		"skipped":  skipped,
	}).Info("import complete")

	return &ImportResult{RunID: report.RunID, Inserted: inserted, Skipped: skipped}, nil
}

func (db *DB) recordRun(ctx context.Context, report *consolidate.Report) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO runs (
			id, files_processed, files_failed, total_rows, clean_rows,
			duplicates_removed, total_amount, range_start, range_end
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		report.RunID, report.FilesProcessed, report.FilesFailed,
		report.TotalRows, report.CleanRows, report.DuplicatesRemoved,
		report.TotalAmount, nullDate(report.RangeStart), nullDate(report.RangeEnd),
	)
	return errors.Wrap(err, "record run")
}

// insertTransactions batches the inserts; ON CONFLICT DO NOTHING plus
// the RowsAffected count splits inserted from skipped.
func (db *DB) insertTransactions(ctx context.Context, runID string, records []common.Transaction) (inserted, skipped int, err error) {
	if len(records) == 0 {
		return 0, 0, nil
	}

	const sql = `
		INSERT INTO transactions (
			run_id, date, description, amount, balance, currency,
			reference, category, account, source_file
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (date, description, amount, source_file) DO NOTHING`

	batch := &pgx.Batch{}
	for _, tx := range records {
		batch.Queue(sql,
			runID, tx.Date, tx.Description, tx.Amount, tx.Balance,
			tx.Currency, tx.Reference, tx.Category, tx.Account, tx.SourceFile,
		)
	}

	br := db.Pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		tag, err := br.Exec()
		if err != nil {
			return inserted, skipped, errors.Wrap(err, "insert transaction")
		}
		if tag.RowsAffected() == 0 {
			skipped++
		} else {
			inserted++
		}
	}
	return inserted, skipped, nil
}

func nullDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
