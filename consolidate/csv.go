package consolidate

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/gcascante/bankmerge/extractor/common"
)

var baseColumns = []string{"date", "description", "amount", "balance", "category", "account", "source_file"}

// WriteCSV writes the ledger with ISO dates, two-decimal amounts and
// empty strings for unset optionals. The currency and reference
// columns appear only when some record carries them, which is the
// bank-specific extraction flow.
func WriteCSV(path string, records []common.Transaction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	withBankColumns := false
	for _, tx := range records {
		if tx.Currency != "" || tx.Reference != "" {
			withBankColumns = true
			break
		}
	}

	header := baseColumns
	if withBankColumns {
		header = append(append([]string{}, baseColumns...), "currency", "reference")
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, tx := range records {
		balance := ""
		if tx.Balance != nil {
			balance = tx.Balance.StringFixed(2)
		}
		row := []string{
			tx.Date.Format("2006-01-02"),
			tx.Description,
			tx.Amount.StringFixed(2),
			balance,
			tx.Category,
			tx.Account,
			tx.SourceFile,
		}
		if withBankColumns {
			row = append(row, tx.Currency, tx.Reference)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
