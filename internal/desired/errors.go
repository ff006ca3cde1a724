// errors.go defines the validation errors raised while assembling desired
// state. Every error is fatal on first detection and carries a short summary
// plus a detail line naming the offending file, sheet, row, and field.
package desired

import "fmt"

// DuplicateSlugError reports a workspace slug declared twice in the
// workspaces sheet. Duplicates are rejected outright; a repeated slug is
// never treated as an overwrite.
type DuplicateSlugError struct {
	Source string
	Slug   string
	Row    int
}

func (e *DuplicateSlugError) Summary() string {
	return fmt.Sprintf("failed to read '%s' workspace workbook", e.Source)
}

func (e *DuplicateSlugError) Detail() string {
	return fmt.Sprintf("workspace slug '%s' declared again in row %d", e.Slug, e.Row)
}

func (e *DuplicateSlugError) Error() string {
	return e.Summary() + ": " + e.Detail()
}

// TemplateError reports an invalid role template definition sheet.
type TemplateError struct {
	Sheet  string
	Reason string
}

func (e *TemplateError) Summary() string {
	return fmt.Sprintf("invalid role template definition in '%s' sheet", e.Sheet)
}

func (e *TemplateError) Detail() string { return e.Reason }

func (e *TemplateError) Error() string {
	return e.Summary() + ": " + e.Reason
}

// UserRowKind identifies the specific user-row validation failure.
type UserRowKind int

const (
	// UserRowIncomplete means the row had some but not all required fields.
	UserRowIncomplete UserRowKind = iota
	// UserRowUnknownWorkspace means the row referenced an undeclared slug.
	UserRowUnknownWorkspace
	// UserRowDuplicateAssignment means the same (email, workspace) pair was
	// declared twice.
	UserRowDuplicateAssignment
	// UserRowConflictingRole means two assignments for one user named
	// different role templates.
	UserRowConflictingRole
)

// UserRowError reports an invalid row in a users workbook.
type UserRowError struct {
	Source    string
	Row       int
	Kind      UserRowKind
	Field     string // incomplete: first missing logical field
	Workspace string
	Role      string // conflicting: role named by the offending row
	Prior     string // conflicting: role already assigned
	FirstFile string // duplicate/conflicting: file of the first assignment
}

func (e *UserRowError) Summary() string {
	return fmt.Sprintf("failed to parse users from '%s'", e.Source)
}

func (e *UserRowError) Detail() string {
	switch e.Kind {
	case UserRowIncomplete:
		return fmt.Sprintf("user is missing '%s' value in row %d", e.Field, e.Row)
	case UserRowUnknownWorkspace:
		return fmt.Sprintf("user at row %d references an unknown workspace '%s'", e.Row, e.Workspace)
	case UserRowDuplicateAssignment:
		return fmt.Sprintf("user at row %d has multiple role assignments for workspace '%s'\nfirst assigned in '%s'",
			e.Row, e.Workspace, e.FirstFile)
	case UserRowConflictingRole:
		return fmt.Sprintf("user at row %d has conflicting role assignments of role '%s' and '%s'\nfirst assigned in '%s'",
			e.Row, e.Role, e.Prior, e.FirstFile)
	}
	return fmt.Sprintf("invalid user row %d", e.Row)
}

func (e *UserRowError) Error() string {
	return e.Summary() + ": " + e.Detail()
}
