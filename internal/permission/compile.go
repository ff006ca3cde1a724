package permission

import (
	"fmt"
	"sort"
	"strings"
)

// UnresolvedWorkspaceError reports a compile attempt that referenced a
// workspace with no remote identifier yet. Workspace reconciliation must run
// before roles are compiled.
type UnresolvedWorkspaceError struct {
	Role string
	Slug string
}

func (e *UnresolvedWorkspaceError) Summary() string {
	return fmt.Sprintf("failed to create role '%s'", e.Role)
}

func (e *UnresolvedWorkspaceError) Detail() string {
	return fmt.Sprintf("workspace '%s' not found", e.Slug)
}

func (e *UnresolvedWorkspaceError) Error() string {
	return e.Summary() + ": " + e.Detail()
}

// RoleName derives the name of a compiled role from the primary workspace
// slugs (in declared order) and the template name: "[A+B] Template".
func RoleName(primary []string, template string) string {
	return "[" + strings.ToUpper(strings.Join(primary, "+")) + "] " + template
}

// Compile expands a template against a concrete workspace set. primary lists
// the user group's workspaces in declared order; all lists every desired
// workspace slug; ids maps slug → remote workspace identifier.
//
// The document starts from the template's organization block and gains one
// grant per primary workspace with the primary permissions. When the template
// grants anything to other workspaces, every non-primary workspace also gets
// a grant with the other-workspace block. Grants are sorted by remote
// identifier so the result compares structurally against the remote document.
func Compile(t *Template, primary []string, all []string, ids map[string]string) (*Document, error) {
	roleName := RoleName(primary, t.Name)
	doc := &Document{
		OrganizationPermissions: t.Organization,
		Workspaces:              []WorkspaceGrant{},
	}

	inPrimary := make(map[string]bool, len(primary))
	for _, slug := range primary {
		inPrimary[slug] = true
		id, ok := ids[slug]
		if !ok {
			return nil, &UnresolvedWorkspaceError{Role: roleName, Slug: slug}
		}
		doc.Workspaces = append(doc.Workspaces, WorkspaceGrant{
			ID:                   id,
			WorkspacePermissions: t.Primary,
		})
	}

	if t.Other.Any() {
		for _, slug := range all {
			if inPrimary[slug] {
				continue
			}
			id, ok := ids[slug]
			if !ok {
				return nil, &UnresolvedWorkspaceError{Role: roleName, Slug: slug}
			}
			doc.Workspaces = append(doc.Workspaces, WorkspaceGrant{
				ID:                   id,
				WorkspacePermissions: t.Other,
			})
		}
	}

	doc.SortWorkspaces()
	return doc, nil
}

func sortGrants(grants []WorkspaceGrant) {
	sort.Slice(grants, func(i, j int) bool { return grants[i].ID < grants[j].ID })
}
