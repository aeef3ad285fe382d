package table

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gcascante/bankmerge/extractor/common"
)

// Parse turns one decoded table into canonical records. Fields whose
// columns could not be bound by header matching fall back to a per-row
// positional probe: the first date-shaped cell, the first amount-shaped
// cell that is not itself a date, and the first cell that is neither.
// Rows missing a usable date or amount are dropped individually; a
// table producing nothing at all is simply skipped, since extracted
// documents are full of non-transactional summary boxes.
func Parse(grid [][]string, source string) []common.Transaction {
	if len(grid) < 2 {
		return nil
	}

	cols := MapColumns(grid[0])
	records := make([]common.Transaction, 0, len(grid)-1)
	dropped := 0

	for _, row := range grid[1:] {
		if len(row) < 2 {
			continue
		}

		tx, ok := parseRow(row, cols, source)
		if !ok {
			dropped++
			continue
		}
		records = append(records, tx)
	}

	if dropped > 0 {
		logrus.WithFields(logrus.Fields{
			"source":  source,
			"dropped": dropped,
		}).Debug("dropped rows missing date or amount")
	}
	return records
}

func parseRow(row []string, cols map[string]int, source string) (common.Transaction, bool) {
	tx := common.Transaction{
		Category:   common.Uncategorized,
		SourceFile: source,
	}

	tx.Date = rowDate(row, cols)

	amount, ok := rowAmount(row, cols)
	if tx.Date.IsZero() || !ok {
		return common.Transaction{}, false
	}
	tx.Amount = amount

	tx.Description = rowDescription(row, cols)

	if idx, bound := cols["balance"]; bound && idx < len(row) {
		if balance, err := common.ParseAmount(row[idx]); err == nil {
			tx.Balance = &balance
		}
	}
	if idx, bound := cols["category"]; bound && idx < len(row) {
		if category := strings.TrimSpace(row[idx]); category != "" {
			tx.Category = category
		}
	}
	if idx, bound := cols["account"]; bound && idx < len(row) {
		tx.Account = strings.TrimSpace(row[idx])
	}

	return tx, true
}

func rowDate(row []string, cols map[string]int) time.Time {
	if idx, bound := cols["date"]; bound {
		if idx >= len(row) {
			return time.Time{}
		}
		date, err := common.ParseDate(row[idx])
		if err != nil {
			return time.Time{}
		}
		return date
	}

	for _, cell := range row {
		if common.LooksLikeDate(cell) {
			if date, err := common.ParseDate(cell); err == nil {
				return date
			}
		}
	}
	return time.Time{}
}

func rowAmount(row []string, cols map[string]int) (decimal.Decimal, bool) {
	if idx, bound := cols["amount"]; bound {
		if idx >= len(row) {
			return decimal.Zero, false
		}
		amount, err := common.ParseAmount(row[idx])
		return amount, err == nil
	}

	for _, cell := range row {
		if common.LooksLikeAmount(cell) && !common.LooksLikeDate(cell) {
			if amount, err := common.ParseAmount(cell); err == nil {
				return amount, true
			}
		}
	}
	return decimal.Zero, false
}

func rowDescription(row []string, cols map[string]int) string {
	if idx, bound := cols["description"]; bound {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	for _, cell := range row {
		if cell == "" || common.LooksLikeDate(cell) || common.LooksLikeAmount(cell) {
			continue
		}
		return strings.TrimSpace(cell)
	}
	return ""
}
