// Package bac extracts transactions from BAC (Costa Rica) credit-card
// statements. The body carries no year and no currency: each line is
// "<reference> <MON>/<day> <description> <amount>", with the statement
// month and currency encoded in the file name instead.
package bac

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/gcascante/bankmerge/extractor/common"
)

const defaultTransactionPattern = `^\s*(\d+)\s+([A-Z]{3})/(\d{1,2})\s+(.*?)\s+([\d,]+\.\d{2})\s*$`

// now is swapped out in tests; the year-wrap rule is anchored to it.
var now = time.Now

type config struct {
	Transaction *regexp.Regexp
}

func loadConfig() config {
	pattern := defaultTransactionPattern
	if p := viper.GetString("statement.BAC.patterns.transaction"); p != "" {
		pattern = p
	}
	return config{Transaction: regexp.MustCompile(pattern)}
}

// DetectCurrency reads the currency marker out of a statement file
// name; empty when no marker is present.
func DetectCurrency(filename string) string {
	switch {
	case strings.Contains(filename, "_USD_"):
		return "USD"
	case strings.Contains(filename, "_CRC_"):
		return "CRC"
	}
	return ""
}

// StatementMonth finds the statement's reference month abbreviation in
// the file name, scanning abbreviations in calendar order.
func StatementMonth(filename string) string {
	upper := strings.ToUpper(filename)
	for _, abbr := range common.SpanishMonthOrder {
		if strings.Contains(upper, abbr) {
			return abbr
		}
	}
	return ""
}

// Extract parses every transaction-shaped line out of the statement
// text. Lines that do not match the fixed format are skipped without
// error; statements interleave headers, totals and disclaimers with
// the transactions. Every amount comes back negative: this layout only
// encodes debit lines.
func Extract(path string, rows []string) []common.Transaction {
	cfg := loadConfig()

	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	currency := DetectCurrency(stem)
	statementMonth := StatementMonth(stem)

	records := make([]common.Transaction, 0, len(rows)/4)

	for _, line := range rows {
		match := cfg.Transaction.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		day, err := strconv.Atoi(match[3])
		if err != nil {
			continue
		}

		date, ok := constructDate(match[2], day, statementMonth)
		if !ok {
			continue
		}

		amount, err := common.ParseAmount(match[5])
		if err != nil {
			continue
		}

		records = append(records, common.Transaction{
			Date:        date,
			Description: strings.TrimSpace(match[4]),
			Amount:      amount.Neg(),
			Currency:    currency,
			Reference:   match[1],
			Category:    common.Uncategorized,
			SourceFile:  base,
		})
	}

	logrus.WithFields(logrus.Fields{
		"source":   base,
		"currency": currency,
		"month":    statementMonth,
		"records":  len(records),
	}).Debug("fixed-format extraction complete")
	return records
}

// constructDate resolves a month abbreviation and day into a full
// date. A transaction month greater than the statement's reference
// month is assumed to belong to the previous year (a January statement
// carrying late-December lines).
//
// Known limitation: the year is anchored to the processing year, not
// anything stored in the document. Reprocessing a statement from an
// earlier calendar year assigns the wrong year, because the statement
// body carries no year to recover it from.
func constructDate(monthAbbr string, day int, statementMonth string) (time.Time, bool) {
	monthNum, ok := common.SpanishMonths[monthAbbr]
	if !ok {
		return time.Time{}, false
	}

	statementNum, ok := common.SpanishMonths[statementMonth]
	if !ok {
		statementNum = monthNum
	}

	year := now().Year()
	if monthNum > statementNum {
		year--
	}

	if day < 1 || day > 31 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(monthNum), day, 0, 0, 0, 0, time.Local), true
}
