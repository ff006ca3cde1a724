// Package xlsx reads Excel workbooks into the tabular model using excelize.
// Workbooks are loaded eagerly: the file is parsed once, converted to
// in-memory sheets, and closed, so the rest of the program never holds file
// handles while reconciling.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/accord-sync/accord/internal/tabular"
)

// Opener implements tabular.Opener for .xlsx files on disk.
type Opener struct{}

func (Opener) Open(path string) (tabular.Workbook, error) {
	return Load(path)
}

// Load parses the workbook at path. Cell values arrive from excelize as
// formatted strings; the exact renderings "TRUE" and "FALSE" are mapped to
// boolean cells and everything else is kept as text, which preserves
// leading-zero identifiers that a numeric coercion would destroy.
func Load(path string) (*tabular.MemWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	wb := &tabular.MemWorkbook{Source: path}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet '%s' of %s: %w", name, path, err)
		}
		sheet := &tabular.MemSheet{SheetName: name}
		for i, row := range rows {
			cells := make([]tabular.Cell, len(row))
			for j, v := range row {
				cells[j] = classify(v)
			}
			if i == 0 {
				sheet.HeaderRow = cells
			} else {
				sheet.DataRows = append(sheet.DataRows, cells)
			}
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

func classify(v string) tabular.Cell {
	switch v {
	case "":
		return tabular.Empty
	case "TRUE":
		return tabular.Boolean(true)
	case "FALSE":
		return tabular.Boolean(false)
	default:
		return tabular.String(v)
	}
}
