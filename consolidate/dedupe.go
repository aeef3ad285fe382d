// Package consolidate merges parsed record sets into one clean,
// deduplicated, chronologically ordered ledger and reports on the run.
package consolidate

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gcascante/bankmerge/extractor/common"
)

// centTolerance bounds the amount comparison in the fuzzy phase: two
// amounts closer than one cent count as the same money.
var centTolerance = decimal.New(1, -2)

// Dedupe removes exact repeats, then fuzzy repeats within the given
// day tolerance. Input order decides which copy of a duplicate
// survives: always the earliest. The result preserves input order.
func Dedupe(records []common.Transaction, toleranceDays int) []common.Transaction {
	records = dedupeExact(records)
	if toleranceDays > 0 {
		records = dedupeFuzzy(records, toleranceDays)
	}
	return records
}

// exactKey normalizes the business identity triple. Description
// matching ignores case and internal whitespace runs, so the same
// merchant exported by two banks with different spacing still
// collides. Records missing the date or description cannot establish
// identity and get no key.
func exactKey(tx common.Transaction) (string, bool) {
	if tx.Date.IsZero() || strings.TrimSpace(tx.Description) == "" {
		return "", false
	}
	desc := strings.ToLower(strings.Join(strings.Fields(tx.Description), " "))
	return tx.Date.Format("2006-01-02") + "|" + desc + "|" + tx.Amount.StringFixed(2), true
}

func dedupeExact(records []common.Transaction) []common.Transaction {
	seen := make(map[string]bool, len(records))
	kept := records[:0:0]

	for _, tx := range records {
		key, ok := exactKey(tx)
		if ok {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		kept = append(kept, tx)
	}
	return kept
}

// dedupeFuzzy catches the same transaction reported by two sources
// with a shifted posting date. Records are walked in (date, amount)
// order; the forward scan stops as soon as amounts diverge by a cent
// or more, which keeps the pass O(n·k) for run length k instead of
// comparing every pair.
func dedupeFuzzy(records []common.Transaction, toleranceDays int) []common.Transaction {
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := records[order[a]], records[order[b]]
		if !ra.Date.Equal(rb.Date) {
			return ra.Date.Before(rb.Date)
		}
		return ra.Amount.Cmp(rb.Amount) < 0
	})

	dropped := make(map[int]bool)
	for i := 0; i < len(order); i++ {
		if dropped[order[i]] {
			continue
		}
		current := records[order[i]]

		for j := i + 1; j < len(order); j++ {
			if dropped[order[j]] {
				continue
			}
			candidate := records[order[j]]

			if candidate.Amount.Sub(current.Amount).Abs().Cmp(centTolerance) >= 0 {
				break
			}
			if daysApart(current.Date, candidate.Date) <= toleranceDays {
				dropped[order[j]] = true
			}
		}
	}

	if len(dropped) == 0 {
		return records
	}
	logrus.WithField("dropped", len(dropped)).Debug("fuzzy duplicates removed")

	kept := make([]common.Transaction, 0, len(records)-len(dropped))
	for i, tx := range records {
		if !dropped[i] {
			kept = append(kept, tx)
		}
	}
	return kept
}

// daysApart is the calendar-day distance. Both dates are re-anchored
// at UTC midnight so a daylight-saving shift inside the span cannot
// shave an hour off and round the distance down a day.
func daysApart(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(ub.Sub(ua).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}
