package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapColumns_Synonyms(t *testing.T) {
	header := []string{"Post Date", "Merchant", "Transaction Amount", "Running Balance"}

	cols := MapColumns(header)

	assert.Equal(t, 0, cols["date"])
	assert.Equal(t, 1, cols["description"])
	assert.Equal(t, 2, cols["amount"])
	assert.Equal(t, 3, cols["balance"])
}

func TestMapColumns_FirstMatchWins(t *testing.T) {
	// Two date-like headers: only the first binds.
	header := []string{"Date", "Posting Date", "Amount"}

	cols := MapColumns(header)

	assert.Equal(t, 0, cols["date"])
	assert.Equal(t, 2, cols["amount"])
}

func TestMapColumns_CellBindsOnce(t *testing.T) {
	// "credit" is an amount synonym; it must not also bind category.
	header := []string{"Date", "Description", "Credit"}

	cols := MapColumns(header)

	assert.Equal(t, 2, cols["amount"])
	_, bound := cols["category"]
	assert.False(t, bound)
}

func TestMapColumns_UnknownHeadersLeftUnbound(t *testing.T) {
	cols := MapColumns([]string{"Foo", "Bar"})
	assert.Empty(t, cols)
}

func TestParse_HeaderBound(t *testing.T) {
	grid := [][]string{
		{"Date", "Description", "Amount", "Balance"},
		{"2024-01-05", "Coffee Shop", "-4.50", "100.00"},
		{"2024-01-06", "Salary", "2,500.00", "2600.00"},
	}

	records := Parse(grid, "jan.csv")

	require.Len(t, records, 2)
	assert.Equal(t, "Coffee Shop", records[0].Description)
	assert.Equal(t, "-4.5", records[0].Amount.String())
	require.NotNil(t, records[0].Balance)
	assert.Equal(t, "100", records[0].Balance.String())
	assert.Equal(t, "jan.csv", records[0].SourceFile)
	assert.Equal(t, 2024, records[1].Date.Year())
}

func TestParse_PositionalFallback(t *testing.T) {
	// Headers with no synonym match still yield records when cells
	// have recognizable shapes.
	grid := [][]string{
		{"Col1", "Col2", "Col3"},
		{"01/05/2024", "SUPER MERCADO", "-12.00"},
	}

	records := Parse(grid, "banco.csv")

	require.Len(t, records, 1)
	assert.Equal(t, 1, int(records[0].Date.Month()))
	assert.Equal(t, 5, records[0].Date.Day())
	assert.Equal(t, "SUPER MERCADO", records[0].Description)
	assert.Equal(t, "-12", records[0].Amount.String())
}

func TestParse_BadRowsDroppedIndividually(t *testing.T) {
	grid := [][]string{
		{"Date", "Description", "Amount"},
		{"2024-01-05", "Kept", "-4.50"},
		{"not a date", "Dropped", "-4.50"},
		{"2024-01-06", "Also kept", "10.00"},
	}

	records := Parse(grid, "mixed.csv")

	require.Len(t, records, 2)
	assert.Equal(t, "Kept", records[0].Description)
	assert.Equal(t, "Also kept", records[1].Description)
}

func TestParse_NonTransactionalTableSkipped(t *testing.T) {
	grid := [][]string{
		{"Summary", "Value"},
		{"Total fees", "see below"},
	}

	assert.Empty(t, Parse(grid, "summary.pdf"))
}

func TestParse_HeaderOnlyTableSkipped(t *testing.T) {
	assert.Empty(t, Parse([][]string{{"Date", "Description", "Amount"}}, "empty.csv"))
}
