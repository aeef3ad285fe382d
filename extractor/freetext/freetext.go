// Package freetext recovers transactions from raw statement text when
// no table structure survived extraction. A line qualifies when it
// carries both a date-shaped and an amount-shaped substring; position
// decides which substring plays which role.
package freetext

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gcascante/bankmerge/extractor/common"
)

// Parse scans text rows for transaction-shaped lines. The first date
// match becomes the date; amounts are searched after it, the first
// becoming the amount and the last the running balance when a second
// match exists. The description is the text between date and first
// amount, stripped of any other date or amount fragments. Lines whose
// description trims to nothing are discarded.
func Parse(lines []string, source string) []common.Transaction {
	records := make([]common.Transaction, 0, len(lines)/4)

	for _, line := range lines {
		tx, ok := parseLine(line, source)
		if !ok {
			continue
		}
		records = append(records, tx)
	}

	logrus.WithFields(logrus.Fields{
		"source":  source,
		"lines":   len(lines),
		"records": len(records),
	}).Debug("free-text scan complete")
	return records
}

func parseLine(line, source string) (common.Transaction, bool) {
	dateText, _, dateEnd, ok := common.FindDate(line)
	if !ok {
		return common.Transaction{}, false
	}

	// Search amounts over a copy with remaining date substrings
	// blanked; digits inside a second date must not read as money.
	rest := common.MaskDates(line[dateEnd:])
	amounts := common.FindAmounts(rest)
	if len(amounts) == 0 {
		return common.Transaction{}, false
	}

	date, err := common.ParseDate(dateText)
	if err != nil {
		return common.Transaction{}, false
	}

	amount, err := common.ParseAmount(rest[amounts[0][0]:amounts[0][1]])
	if err != nil {
		return common.Transaction{}, false
	}

	tx := common.Transaction{
		Date:        date,
		Amount:      amount,
		Category:    common.Uncategorized,
		SourceFile:  source,
	}

	if len(amounts) > 1 {
		last := amounts[len(amounts)-1]
		if balance, err := common.ParseAmount(rest[last[0]:last[1]]); err == nil {
			tx.Balance = &balance
		}
	}

	desc := common.StripDatesAndAmounts(rest[:amounts[0][0]])
	desc = strings.TrimSpace(desc)
	if desc == "" {
		// Description is required; a bare date/amount line is noise.
		return common.Transaction{}, false
	}
	tx.Description = desc

	return tx, true
}
