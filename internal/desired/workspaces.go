// Package desired loads the declarative desired state — workspaces, role
// templates, and users — from tabular sources into validated in-memory
// records. Loading is strict: the first inconsistency aborts with an error
// naming the offending file, sheet, row, and field.
package desired

import (
	"fmt"
	"strings"

	"github.com/accord-sync/accord/internal/tabular"
)

// WorkspacesSheet is the required worksheet name in the workspaces workbook.
const WorkspacesSheet = "Workspaces"

// Workspace is a desired workspace record. Name is the derived display name
// "[SLUG] Name".
type Workspace struct {
	Slug string
	Name string
}

// DisplayName derives the workspace display name from a slug and the raw
// name cell.
func DisplayName(slug, name string) string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(slug), strings.TrimSpace(name))
}

// LoadWorkspaces reads the desired workspaces from wb. Rows missing either
// the slug or the name cell are skipped; slugs are normalized to trimmed
// lowercase and must be unique. source appears in error messages only.
// slugColumn and nameColumn are the configured header names.
func LoadWorkspaces(wb tabular.Workbook, source, slugColumn, nameColumn string) ([]Workspace, error) {
	sheet, err := wb.Sheet(WorkspacesSheet)
	if err != nil {
		return nil, err
	}

	headers, err := tabular.ResolveHeaders(source, sheet.Header(), map[string]string{
		"slug": slugColumn,
		"name": nameColumn,
	})
	if err != nil {
		return nil, err
	}

	var workspaces []Workspace
	seen := make(map[string]bool)
	for i, row := range sheet.Rows() {
		slugCell := tabular.At(row, headers["slug"])
		nameCell := tabular.At(row, headers["name"])
		if slugCell.IsEmpty() || nameCell.IsEmpty() {
			continue
		}
		slug := strings.ToLower(strings.TrimSpace(slugCell.Text()))
		if seen[slug] {
			return nil, &DuplicateSlugError{Source: source, Slug: slug, Row: i + 2}
		}
		seen[slug] = true
		workspaces = append(workspaces, Workspace{
			Slug: slug,
			Name: DisplayName(slug, nameCell.Text()),
		})
	}
	return workspaces, nil
}
