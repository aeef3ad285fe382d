package common

import (
	"time"

	"github.com/shopspring/decimal"
)

// Uncategorized is the category assigned to every transaction until the
// categorizer collaborator says otherwise.
const Uncategorized = "Uncategorized"

// Transaction is the canonical record every parser produces. Date and
// Amount are required on any record that survives consolidation; the
// rest is informational. A zero Date marks a record whose date could
// not be established.
type Transaction struct {
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	Currency    string           `json:"currency,omitempty"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
	Reference   string           `json:"reference,omitempty"`
	Category    string           `json:"category,omitempty"`
	Account     string           `json:"account,omitempty"`
	SourceFile  string           `json:"source_file"`
}

// Day strips the time component so two records posted on the same
// calendar day compare equal regardless of how the source encoded them.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
