package common

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Layouts tried in order: strict ISO first, then the locale-ambiguous
// slash and dash forms. Ambiguous numeric dates ("03/04/2024") resolve
// as month/day/year.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"1-2-06",
}

// Textual layouts accepted by the fuzzy fallback.
var fuzzyLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2 2006",
	"2006-01-02T15:04:05",
	"02 Jan 06",
}

var amountSymbolRegex = regexp.MustCompile(`[^0-9.\-]`)

// ParseDate turns a date string into a calendar date. Strict ISO wins
// over ambiguous forms; a fuzzy fallback accepts human-readable
// phrases by locating a date-shaped or textual substring. The zero
// time plus a FieldParseError come back when nothing works.
func ParseDate(text string) (time.Time, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Time{}, &FieldParseError{Field: "date", Value: text}
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return Day(t), nil
		}
	}

	for _, layout := range fuzzyLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return Day(t), nil
		}
	}

	// Phrase fallback: pull the first date-shaped substring out of the
	// surrounding text and try again.
	if match, _, _, ok := FindDate(trimmed); ok && match != trimmed {
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, match, time.Local); err == nil {
				return Day(t), nil
			}
		}
	}

	return time.Time{}, &FieldParseError{Field: "date", Value: text}
}

// ParseAmount turns an amount string into a decimal. Accounting-style
// parentheses negate the value before any other symbol is stripped;
// currency symbols and thousands separators are removed. Fails on a
// non-numeric remainder.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, &FieldParseError{Field: "amount", Value: text}
	}

	negated := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negated = true
		s = s[1 : len(s)-1]
	}

	s = amountSymbolRegex.ReplaceAllString(s, "")
	if s == "" {
		return decimal.Zero, &FieldParseError{Field: "amount", Value: text}
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &FieldParseError{Field: "amount", Value: text}
	}

	if negated {
		amount = amount.Neg()
	}
	return amount, nil
}
