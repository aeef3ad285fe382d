package consolidate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcascante/bankmerge/extractor/common"
)

func tx(date string, desc string, amount string) common.Transaction {
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		panic(err)
	}
	a, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	return common.Transaction{Date: d, Description: desc, Amount: a}
}

func TestDedupe_ExactKeepsEarliest(t *testing.T) {
	records := []common.Transaction{
		tx("2024-03-01", "Coffee Shop", "-4.50"),
		tx("2024-03-01", "Coffee Shop", "-4.50"),
		tx("2024-03-01", "Coffee Shop", "-4.50"),
	}
	records[0].SourceFile = "first.csv"
	records[1].SourceFile = "second.csv"
	records[2].SourceFile = "third.csv"

	result := Dedupe(records, 0)

	require.Len(t, result, 1)
	assert.Equal(t, "first.csv", result[0].SourceFile)
}

func TestDedupe_ExactNormalizesDescription(t *testing.T) {
	records := []common.Transaction{
		tx("2024-01-05", "Coffee Shop", "-4.50"),
		tx("2024-01-05", "COFFEE  SHOP", "-4.50"),
	}

	assert.Len(t, Dedupe(records, 0), 1)
}

func TestDedupe_SubstantiveDescriptionsBothSurvive(t *testing.T) {
	records := []common.Transaction{
		tx("2024-01-05", "Coffee Shop", "-4.50"),
		tx("2024-01-05", "Bagel Place", "-4.50"),
	}

	assert.Len(t, Dedupe(records, 0), 2)
}

func TestDedupe_MissingFieldsDoNotParticipate(t *testing.T) {
	// Two dateless records with identical remaining fields cannot
	// establish identity; both pass through the exact phase.
	records := []common.Transaction{
		{Description: "No date", Amount: decimal.NewFromInt(-5)},
		{Description: "No date", Amount: decimal.NewFromInt(-5)},
	}

	assert.Len(t, Dedupe(records, 0), 2)
}

func TestDedupe_FuzzyWithinTolerance(t *testing.T) {
	records := []common.Transaction{
		tx("2024-03-01", "CARD PAYMENT", "-50.00"),
		tx("2024-03-03", "Card payment posted", "-50.00"),
	}

	result := Dedupe(records, 2)

	require.Len(t, result, 1)
	assert.Equal(t, "CARD PAYMENT", result[0].Description)
}

func TestDedupe_FuzzyBoundaryIsInclusive(t *testing.T) {
	merged := Dedupe([]common.Transaction{
		tx("2024-03-01", "A", "-50.00"),
		tx("2024-03-03", "B", "-50.00"),
	}, 2)
	assert.Len(t, merged, 1)

	kept := Dedupe([]common.Transaction{
		tx("2024-03-01", "A", "-50.00"),
		tx("2024-03-04", "B", "-50.00"),
	}, 2)
	assert.Len(t, kept, 2)
}

func TestDedupe_FuzzyBoundaryAcrossSpringForward(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 is the spring-forward day, so these midnights are an
	// hour short of 72h apart. The calendar distance is still 3 days
	// and must stay outside a 2-day tolerance.
	records := []common.Transaction{
		{Date: time.Date(2024, 3, 9, 0, 0, 0, 0, loc), Description: "A", Amount: decimal.RequireFromString("-50.00")},
		{Date: time.Date(2024, 3, 12, 0, 0, 0, 0, loc), Description: "B", Amount: decimal.RequireFromString("-50.00")},
	}

	assert.Len(t, Dedupe(records, 2), 2)
}

func TestDedupe_FuzzyRequiresSameAmount(t *testing.T) {
	records := []common.Transaction{
		tx("2024-03-01", "A", "-50.00"),
		tx("2024-03-02", "B", "-50.02"),
	}

	assert.Len(t, Dedupe(records, 2), 2)
}

func TestDedupe_Idempotent(t *testing.T) {
	records := []common.Transaction{
		tx("2024-03-01", "A", "-50.00"),
		tx("2024-03-02", "B", "-50.00"),
		tx("2024-03-05", "C", "-50.00"),
		tx("2024-03-05", "D", "20.00"),
	}

	once := Dedupe(records, 2)
	twice := Dedupe(once, 2)

	assert.Equal(t, once, twice)
}

func TestDedupe_PreservesInputOrder(t *testing.T) {
	records := []common.Transaction{
		tx("2024-03-09", "Late", "-1.00"),
		tx("2024-03-01", "Early", "-2.00"),
	}

	result := Dedupe(records, 2)

	require.Len(t, result, 2)
	assert.Equal(t, "Late", result[0].Description)
	assert.Equal(t, "Early", result[1].Description)
}
