package postgres

import (
	"context"

	"github.com/pkg/errors"
)

const ddl = `
-- Runs table: one row per consolidation run, for auditing
CREATE TABLE IF NOT EXISTS runs (
    id UUID PRIMARY KEY,
    files_processed INTEGER NOT NULL,
    files_failed INTEGER NOT NULL,
    total_rows INTEGER NOT NULL,
    clean_rows INTEGER NOT NULL,
    duplicates_removed INTEGER NOT NULL,
    total_amount NUMERIC(18,2) NOT NULL,
    range_start DATE,
    range_end DATE,
    created_at TIMESTAMPTZ DEFAULT NOW()
);

-- Transactions table keyed by the same natural key the deduplicator
-- uses, so re-importing an overlapping statement inserts nothing twice
CREATE TABLE IF NOT EXISTS transactions (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    run_id UUID REFERENCES runs(id),
    date DATE NOT NULL,
    description TEXT NOT NULL,
    amount NUMERIC(18,2) NOT NULL,
    balance NUMERIC(18,2),
    currency VARCHAR(10) DEFAULT '',
    reference VARCHAR(255) DEFAULT '',
    category VARCHAR(100) DEFAULT '',
    account VARCHAR(100) DEFAULT '',
    source_file VARCHAR(255) NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW(),

    UNIQUE(date, description, amount, source_file)
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category) WHERE category != '';
CREATE INDEX IF NOT EXISTS idx_transactions_source ON transactions(source_file);
`

// EnsureSchema creates the tables when they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, ddl); err != nil {
		return errors.Wrap(err, "create schema")
	}
	return nil
}
