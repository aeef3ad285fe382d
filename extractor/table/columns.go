// Package table parses transaction tables: a decoded grid whose first
// row is a header and whose remaining rows are candidate transactions.
package table

import (
	"strings"

	"github.com/gcascante/bankmerge/extractor/common"
)

// MapColumns binds header cells to canonical field names using the
// synonym table. Fields are bound in canonical order; the first header
// cell whose normalized text matches a synonym wins, and a cell binds
// at most one field. Header cells that match nothing are left alone so
// extra columns survive untouched.
func MapColumns(header []string) map[string]int {
	synonyms := common.FieldSynonyms()
	bound := make(map[string]int)
	claimed := make(map[int]bool)

	for _, field := range common.CanonicalFields {
		for i, cell := range header {
			if claimed[i] {
				continue
			}
			normalized := strings.ToLower(strings.TrimSpace(cell))
			if normalized == "" {
				continue
			}
			if matchesAny(normalized, synonyms[field]) {
				bound[field] = i
				claimed[i] = true
				break
			}
		}
	}

	return bound
}

func matchesAny(normalized string, candidates []string) bool {
	for _, candidate := range candidates {
		if normalized == strings.ToLower(strings.TrimSpace(candidate)) {
			return true
		}
	}
	return false
}
