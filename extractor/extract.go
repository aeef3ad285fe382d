// Package extractor classifies statement sources and routes each one
// to the parser that understands its shape.
package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gcascante/bankmerge/extractor/bac"
	"github.com/gcascante/bankmerge/extractor/common"
	"github.com/gcascante/bankmerge/extractor/decode"
	"github.com/gcascante/bankmerge/extractor/freetext"
	"github.com/gcascante/bankmerge/extractor/table"
)

// Kind selects the parsing strategy for a source.
type Kind string

const (
	// KindAuto infers the kind from the extension and name markers.
	KindAuto Kind = "auto"
	// KindTable parses a decoded grid with a header row.
	KindTable Kind = "table"
	// KindFreeText scans raw text rows for transaction-shaped lines.
	KindFreeText Kind = "freetext"
	// KindBAC parses the BAC fixed-format statement family.
	KindBAC Kind = "bac"
)

// KindFromString validates a user-supplied kind name.
func KindFromString(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindAuto, KindTable, KindFreeText, KindBAC:
		return k, nil
	case "":
		return KindAuto, nil
	default:
		return "", fmt.Errorf("unknown source type %q", s)
	}
}

// SupportedExt reports whether the engine has a decoder for the file.
func SupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx", ".xls", ".pdf":
		return true
	}
	return false
}

// Classify infers the parsing strategy. Spreadsheets are tables; PDFs
// carrying the BAC name marker go to the fixed-format parser, any
// other PDF to the free-text scan.
func Classify(path string) Kind {
	base := strings.ToUpper(filepath.Base(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx", ".xls":
		return KindTable
	case ".pdf":
		if strings.Contains(base, "BAC") && bac.StatementMonth(base) != "" {
			return KindBAC
		}
		return KindFreeText
	}
	return KindAuto
}

// ProcessFile extracts canonical records from one source. File-level
// failures come back as FileAccessError or DecodeError for the caller
// to count; an empty record set is not an error.
func ProcessFile(path string, kind Kind) ([]common.Transaction, error) {
	if !SupportedExt(path) {
		return nil, &common.FileAccessError{Path: path}
	}
	if _, err := os.Stat(path); err != nil {
		return nil, common.NewFileAccessError(path, err)
	}

	if kind == KindAuto || kind == "" {
		kind = Classify(path)
	}
	log := logrus.WithFields(logrus.Fields{"file": path, "kind": kind})

	switch kind {
	case KindTable:
		grids, err := decode.Grids(path)
		if err != nil {
			return nil, common.NewDecodeError(path, err)
		}
		records := parseGrids(grids, path)
		log.WithField("records", len(records)).Info("parsed tabular source")
		return records, nil

	case KindFreeText:
		rows, err := decode.PDFRows(path)
		if err != nil {
			return nil, common.NewDecodeError(path, err)
		}
		records := freetext.Parse(rows, filepath.Base(path))
		log.WithField("records", len(records)).Info("parsed free-text source")
		return records, nil

	case KindBAC:
		rows, err := decode.PDFRows(path)
		if err != nil {
			return nil, common.NewDecodeError(path, err)
		}
		records := bac.Extract(path, rows)
		log.WithField("records", len(records)).Info("parsed fixed-format source")
		return records, nil
	}

	return nil, &common.FileAccessError{Path: path}
}

func parseGrids(grids []decode.Grid, path string) []common.Transaction {
	base := filepath.Base(path)
	var records []common.Transaction

	for _, grid := range grids {
		records = append(records, table.Parse(grid, base)...)
	}

	if len(records) == 0 && len(grids) > 0 {
		// Surface why nothing came out: usually the required columns
		// never bound and no cell shape rescued them.
		missing := missingRequired(grids[0])
		if len(missing) > 0 {
			schemaErr := &common.SchemaError{Path: path, Missing: missing}
			logrus.WithField("file", path).Warn(schemaErr.Error())
		}
	}
	return records
}

func missingRequired(grid decode.Grid) []string {
	if len(grid) == 0 {
		return []string{"date", "description", "amount"}
	}
	cols := table.MapColumns(grid[0])
	var missing []string
	for _, field := range []string{"date", "description", "amount"} {
		if _, ok := cols[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}
