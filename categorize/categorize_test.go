package categorize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/gcascante/bankmerge/extractor/common"
)

func TestFor_Keywords(t *testing.T) {
	debit := decimal.NewFromInt(-10)

	assert.Equal(t, "Food & Dining", For("STARBUCKS COFFEE #412", debit))
	assert.Equal(t, "Transportation", For("UBER TRIP HELP.UBER.COM", debit))
	assert.Equal(t, "Healthcare", For("FARMACIA CENTRAL", debit))
	assert.Equal(t, common.Uncategorized, For("UNKNOWN MERCHANT", debit))
}

func TestFor_OverlappingKeywordsPreferLongestMatch(t *testing.T) {
	debit := decimal.NewFromInt(-10)

	// "coffee" contains "fee"; the merchant keyword must win over the
	// generic fee keyword.
	assert.Equal(t, "Food & Dining", For("COFFEE ROASTERS", debit))
	assert.Equal(t, "Fees", For("MONTHLY MAINTENANCE FEE", debit))
	assert.Equal(t, "Fees", For("OVERDRAFT PENALTY", debit))
}

func TestFor_ConfigOverrideSurvivesViperKeyFolding(t *testing.T) {
	// Viper lower-cases map keys read from config files.
	viper.Set("categories", map[string][]string{
		"income":        {"payout"},
		"food & dining": {"noodle"},
	})
	t.Cleanup(viper.Reset)

	assert.Equal(t, "Food & Dining", For("NOODLE HOUSE", decimal.NewFromInt(-12)))
	assert.Equal(t, "Income", For("VENDOR PAYOUT", decimal.NewFromInt(200)))
	assert.NotEqual(t, "Income", For("VENDOR PAYOUT", decimal.NewFromInt(-200)))
}

func TestFor_IncomeNeedsPositiveAmount(t *testing.T) {
	assert.Equal(t, "Income", For("PAYROLL DEPOSIT", decimal.NewFromInt(1500)))
	assert.NotEqual(t, "Income", For("PAYROLL DEPOSIT", decimal.NewFromInt(-1500)))
}

func TestApply_PreservesSourceCategories(t *testing.T) {
	records := []common.Transaction{
		{Description: "STARBUCKS COFFEE", Amount: decimal.NewFromInt(-5), Category: "Business"},
		{Description: "STARBUCKS COFFEE", Amount: decimal.NewFromInt(-5), Category: common.Uncategorized},
	}

	Apply(records)

	assert.Equal(t, "Business", records[0].Category)
	assert.Equal(t, "Food & Dining", records[1].Category)
}
