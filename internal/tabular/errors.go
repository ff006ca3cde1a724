// errors.go defines the error types shared by all workbook readers: header
// resolution failures and missing required worksheets. Each carries a short
// summary plus a detail line so the CLI can print them the same two-part way
// regardless of which reader produced them.
package tabular

import "fmt"

// HeaderErrorKind distinguishes the two ways header resolution can fail.
type HeaderErrorKind int

const (
	// HeaderMissing means no column matched a requested logical key.
	HeaderMissing HeaderErrorKind = iota
	// HeaderDuplicate means two columns matched the same logical key.
	HeaderDuplicate
)

// HeaderError reports a failure to resolve logical column names against a
// sheet's header row.
type HeaderError struct {
	Source string // workbook path or name, for the message only
	Kind   HeaderErrorKind
	Key    string // logical key that failed
	Header string // matched header text (duplicate case)
}

func (e *HeaderError) Summary() string {
	return fmt.Sprintf("failed to resolve headers in '%s' workbook", e.Source)
}

func (e *HeaderError) Detail() string {
	if e.Kind == HeaderDuplicate {
		return fmt.Sprintf("duplicate '%s' columns", e.Header)
	}
	return fmt.Sprintf("missing '%s' column", e.Key)
}

func (e *HeaderError) Error() string {
	return e.Summary() + ": " + e.Detail()
}

// SheetNotFoundError reports that a workbook lacks a required worksheet.
type SheetNotFoundError struct {
	Source string
	Sheet  string
}

func (e *SheetNotFoundError) Summary() string {
	return fmt.Sprintf("failed to read '%s' workbook", e.Source)
}

func (e *SheetNotFoundError) Detail() string {
	return fmt.Sprintf("workbook must contain '%s' sheet", e.Sheet)
}

func (e *SheetNotFoundError) Error() string {
	return e.Summary() + ": " + e.Detail()
}
