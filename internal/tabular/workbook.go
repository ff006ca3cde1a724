package tabular

// Sheet is a single worksheet: one header row followed by data rows. Rows may
// be ragged; readers must tolerate short rows when indexing by resolved
// header position (a missing trailing cell reads as Empty).
type Sheet interface {
	// Name returns the worksheet name.
	Name() string

	// Header returns the first row of the sheet.
	Header() []Cell

	// Rows returns every row after the header, in sheet order.
	Rows() [][]Cell
}

// Workbook is an open spreadsheet document.
type Workbook interface {
	// SheetNames returns the worksheet names in document order.
	SheetNames() []string

	// Sheet returns the named worksheet. It returns a *SheetNotFoundError
	// when the workbook has no sheet with that name.
	Sheet(name string) (Sheet, error)
}

// Opener opens a workbook from a filesystem path. The xlsx subpackage
// provides the production implementation; tests supply fixed in-memory
// workbooks.
type Opener interface {
	Open(path string) (Workbook, error)
}

// At returns the cell at index i of row, or Empty when the row is too short.
func At(row []Cell, i int) Cell {
	if i < 0 || i >= len(row) {
		return Empty
	}
	return row[i]
}
