package tabular

import "fmt"

// MemSheet is a fixed in-memory worksheet.
type MemSheet struct {
	SheetName string
	HeaderRow []Cell
	DataRows  [][]Cell
}

func (s *MemSheet) Name() string   { return s.SheetName }
func (s *MemSheet) Header() []Cell { return s.HeaderRow }
func (s *MemSheet) Rows() [][]Cell { return s.DataRows }

// MemWorkbook is a fixed in-memory workbook used by tests and by any caller
// that assembles rows programmatically.
type MemWorkbook struct {
	Source string
	Sheets []*MemSheet
}

func (w *MemWorkbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.SheetName
	}
	return names
}

func (w *MemWorkbook) Sheet(name string) (Sheet, error) {
	for _, s := range w.Sheets {
		if s.SheetName == name {
			return s, nil
		}
	}
	return nil, &SheetNotFoundError{Source: w.Source, Sheet: name}
}

// MemOpener serves pre-registered workbooks by path.
type MemOpener map[string]*MemWorkbook

func (o MemOpener) Open(path string) (Workbook, error) {
	if wb, ok := o[path]; ok {
		return wb, nil
	}
	return nil, fmt.Errorf("open %s: no such workbook", path)
}
