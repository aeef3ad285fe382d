package common

import (
	"regexp"

	"github.com/spf13/viper"
)

// Shared vocabulary for heuristic field discovery. Header matching and
// shape probes both come from here so every parser agrees on what a
// date or an amount looks like.

var (
	isoDateRegex   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	slashDateRegex = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)
	dashDateRegex  = regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{2,4}`)

	// ISO listed first so an unambiguous form wins over the
	// locale-ambiguous slash/dash forms.
	dateRegexes = []*regexp.Regexp{isoDateRegex, slashDateRegex, dashDateRegex}

	// Optional sign and currency symbol, optional thousands separators,
	// exactly two fractional digits when a fraction is present.
	amountRegex = regexp.MustCompile(`-?\$?\d{1,3}(?:,\d{3})*(?:\.\d{2})?`)
)

// defaultSynonyms maps canonical field names to the header spellings
// banks actually use. Overridable via the schema.columns config key.
var defaultSynonyms = map[string][]string{
	"date":        {"date", "transaction date", "trans date", "post date", "posting date", "fecha"},
	"description": {"description", "merchant", "desc", "memo", "details", "payee", "descripcion"},
	"amount":      {"amount", "transaction amount", "debit", "credit", "value", "monto"},
	"balance":     {"balance", "running balance", "account balance", "ending balance", "saldo"},
	"category":    {"category", "type", "transaction type", "class"},
	"account":     {"account", "account name", "account number", "cuenta"},
}

// CanonicalFields in the order the column mapper binds them.
var CanonicalFields = []string{"date", "description", "amount", "balance", "category", "account"}

// FieldSynonyms returns the header synonym table, preferring the
// schema.columns config section when one is set.
func FieldSynonyms() map[string][]string {
	if m := viper.GetStringMapStringSlice("schema.columns"); len(m) > 0 {
		return m
	}
	return defaultSynonyms
}

// SpanishMonths maps BAC's three-letter month abbreviations to month
// numbers. Order matters for filename scans, so the keys are kept in a
// separate calendar-ordered slice.
var SpanishMonths = map[string]int{
	"ENE": 1, "FEB": 2, "MAR": 3, "ABR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AGO": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DIC": 12,
}

var SpanishMonthOrder = []string{
	"ENE", "FEB", "MAR", "ABR", "MAY", "JUN",
	"JUL", "AGO", "SEP", "OCT", "NOV", "DIC",
}

// LooksLikeDate reports whether text contains a date-shaped substring.
// Cheap probe for column discovery; false on empty input.
func LooksLikeDate(text string) bool {
	if text == "" {
		return false
	}
	for _, re := range dateRegexes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// LooksLikeAmount reports whether text contains an amount-shaped
// substring. False on empty input.
func LooksLikeAmount(text string) bool {
	if text == "" {
		return false
	}
	return amountRegex.MatchString(text)
}

// FindDate returns the first date-shaped substring and its bounds, or
// ok=false when none is present.
func FindDate(text string) (match string, start, end int, ok bool) {
	best := []int(nil)
	for _, re := range dateRegexes {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if best == nil || loc[0] < best[0] {
			best = loc
		}
	}
	if best == nil {
		return "", 0, 0, false
	}
	return text[best[0]:best[1]], best[0], best[1], true
}

// FindAmounts returns the bounds of every amount-shaped substring.
func FindAmounts(text string) [][]int {
	return amountRegex.FindAllStringIndex(text, -1)
}

// MaskDates blanks every date-shaped substring with spaces so that a
// positional amount search over the result cannot latch onto digits
// inside a date, while indices stay valid for the original text.
func MaskDates(text string) string {
	masked := []byte(text)
	for _, re := range dateRegexes {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			for i := loc[0]; i < loc[1]; i++ {
				masked[i] = ' '
			}
		}
	}
	return string(masked)
}

// StripDatesAndAmounts removes every date- and amount-shaped substring,
// used when carving a description out of a free-text line.
func StripDatesAndAmounts(text string) string {
	for _, re := range dateRegexes {
		text = re.ReplaceAllString(text, "")
	}
	return amountRegex.ReplaceAllString(text, "")
}
