// Package tabular defines the spreadsheet abstraction the loaders consume: a
// workbook exposing named sheets of typed cells, plus header resolution that
// maps configurable column names to physical positions. Concrete readers
// (the xlsx subpackage, the in-memory test workbook) implement these
// interfaces; nothing above this package knows about file formats.
package tabular

import (
	"strconv"
	"strings"
)

// CellKind discriminates the cell value types a sheet can contain.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindString
	KindBool
	KindNumber
)

// Cell is a single typed spreadsheet cell value.
type Cell struct {
	Kind CellKind
	Str  string
	Bool bool
	Num  float64
}

// Empty is the absent cell value.
var Empty = Cell{}

// String returns a string cell.
func String(s string) Cell { return Cell{Kind: KindString, Str: s} }

// Boolean returns a boolean cell.
func Boolean(b bool) Cell { return Cell{Kind: KindBool, Bool: b} }

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{Kind: KindNumber, Num: f} }

// IsEmpty reports whether the cell holds no value. A string cell that is
// entirely whitespace counts as empty, matching how spreadsheet tools treat
// cleared cells.
func (c Cell) IsEmpty() bool {
	if c.Kind == KindEmpty {
		return true
	}
	if c.Kind == KindString {
		return strings.TrimSpace(c.Str) == ""
	}
	return false
}

// Text renders the cell value as a string. Numeric cells use the shortest
// decimal representation; booleans render as "true"/"false".
func (c Cell) Text() string {
	switch c.Kind {
	case KindString:
		return c.Str
	case KindBool:
		return strconv.FormatBool(c.Bool)
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// Truthy coerces the cell to a boolean the lenient way: a boolean cell keeps
// its value, a string cell is true when it reads "true" or "yes"
// (case-insensitive, trimmed), and anything else is false. Coercion never
// fails; this mirrors how the active flag is read from user sheets.
func (c Cell) Truthy() bool {
	switch c.Kind {
	case KindBool:
		return c.Bool
	case KindString:
		v := strings.ToLower(strings.TrimSpace(c.Str))
		return v == "true" || v == "yes"
	default:
		return false
	}
}
