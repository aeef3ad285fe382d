// Package categorize assigns spending categories from a static keyword
// table. It is a lookup, not a classifier: unknown descriptions stay
// uncategorized.
package categorize

import (
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/gcascante/bankmerge/extractor/common"
)

type category struct {
	name     string
	keywords []string
}

// defaultCategories is the built-in table; the categories config
// section replaces it wholesale when present. Order is precedence:
// specific merchant vocabularies come before the generic transfer and
// fee keywords, so "coffee" wins over the "fee" inside it.
var defaultCategories = []category{
	{"Income", []string{"salary", "paycheck", "deposit", "payroll", "bonus", "refund", "interest", "dividend"}},
	{"Food & Dining", []string{"restaurant", "cafe", "coffee", "pizza", "burger", "bar", "food", "mcdonald", "doordash", "uber eats"}},
	{"Groceries", []string{"grocery", "super", "market", "mercado", "whole foods", "trader joe", "safeway"}},
	{"Transportation", []string{"uber", "lyft", "taxi", "gas", "fuel", "parking", "transit", "metro"}},
	{"Housing", []string{"rent", "mortgage", "electric", "water", "internet", "cable", "hoa"}},
	{"Shopping", []string{"amazon", "target", "walmart", "ebay", "etsy", "clothing"}},
	{"Healthcare", []string{"pharmacy", "farma", "cvs", "walgreens", "doctor", "medical", "dental", "clinic"}},
	{"Subscriptions", []string{"netflix", "spotify", "hulu", "disney", "apple", "prime", "subscription"}},
	{"Travel", []string{"hotel", "airbnb", "flight", "airline", "booking", "expedia"}},
	{"Transfers", []string{"transfer", "sinpe", "tef", "dtr", "withdrawal", "atm", "comision"}},
	{"Fees", []string{"fee", "charge", "penalty", "overdraft"}},
}

func categories() []category {
	m := viper.GetStringMapStringSlice("categories")
	if len(m) == 0 {
		return defaultCategories
	}

	// Viper lower-cases map keys; restore presentation case so the
	// Income guard and the emitted names survive a config override.
	// Config maps carry no order, so keys are scanned alphabetically
	// and the longest matching keyword wins across categories.
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]category, 0, len(m))
	for _, name := range names {
		list = append(list, category{name: presentationCase(name), keywords: m[name]})
	}
	return list
}

func presentationCase(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		r := []rune(word)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// For returns the category for a description. Income keywords only
// apply to positive amounts, so a "refund processing fee" debit does
// not turn into income. When keywords from several categories match,
// the longest match wins and category order breaks ties.
func For(description string, amount decimal.Decimal) string {
	desc := strings.ToLower(description)
	table := categories()

	if amount.IsPositive() {
		for _, cat := range table {
			if cat.name != "Income" {
				continue
			}
			for _, keyword := range cat.keywords {
				if strings.Contains(desc, keyword) {
					return "Income"
				}
			}
		}
	}

	best := common.Uncategorized
	bestLen := 0
	for _, cat := range table {
		if cat.name == "Income" {
			continue
		}
		for _, keyword := range cat.keywords {
			if len(keyword) > bestLen && strings.Contains(desc, keyword) {
				best = cat.name
				bestLen = len(keyword)
			}
		}
	}
	return best
}

// Apply fills in the category of every record that is still
// uncategorized; categories carried in from a source column win.
func Apply(records []common.Transaction) []common.Transaction {
	for i := range records {
		if records[i].Category == "" || records[i].Category == common.Uncategorized {
			records[i].Category = For(records[i].Description, records[i].Amount)
		}
	}
	return records
}
