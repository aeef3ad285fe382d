package decode

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Grid is one decoded table: row 0 is the header, the rest is data.
type Grid [][]string

// Grids decodes a tabular statement into independent cell grids, one
// per sheet for workbook formats.
func Grids(path string) ([]Grid, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return csvGrids(path)
	case ".xlsx":
		return xlsxGrids(path)
	case ".xls":
		return xlsGrids(path)
	default:
		return nil, fmt.Errorf("no tabular decoder for %s", filepath.Ext(path))
	}
}

func csvGrids(path string) ([]Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	// Bank exports pad or truncate rows freely.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return []Grid{Grid(records)}, nil
}

func xlsxGrids(path string) ([]Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var grids []Grid
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			grids = append(grids, Grid(rows))
		}
	}
	return grids, nil
}

func xlsGrids(path string) ([]Grid, error) {
	workbook, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, err
	}

	var grids []Grid
	for n := 0; n < workbook.NumSheets(); n++ {
		sheet := workbook.GetSheet(n)
		if sheet == nil {
			continue
		}

		grid := make(Grid, 0, int(sheet.MaxRow)+1)
		for i := 0; i <= int(sheet.MaxRow); i++ {
			row := sheet.Row(i)
			if row == nil {
				continue
			}
			cells := make([]string, 0, row.LastCol())
			for col := 0; col < row.LastCol(); col++ {
				cells = append(cells, row.Col(col))
			}
			grid = append(grid, cells)
		}
		if len(grid) > 0 {
			grids = append(grids, grid)
		}
	}
	return grids, nil
}
