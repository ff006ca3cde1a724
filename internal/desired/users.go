package desired

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/accord-sync/accord/internal/tabular"
)

// UsersSheet is the required worksheet name in every users workbook.
const UsersSheet = "Users"

// UserColumns holds the configured header names for the five logical user
// fields.
type UserColumns struct {
	Workspace string
	Name      string
	Email     string
	Role      string
	Active    string
}

// Assignment records one workspace membership of a user: the workspace slug,
// the role template name, and the file that declared it (cited when a later
// declaration conflicts).
type Assignment struct {
	Workspace string
	Role      string
	File      string
}

// User is a desired user record, possibly merged from several source files.
// Assignments preserve declaration order; that order drives the compiled
// role name.
type User struct {
	Email       string
	Name        string
	Active      bool
	Assignments []Assignment
}

// PrimarySlugs returns the user's workspace slugs in declaration order.
func (u *User) PrimarySlugs() []string {
	slugs := make([]string, len(u.Assignments))
	for i, a := range u.Assignments {
		slugs[i] = a.Workspace
	}
	return slugs
}

// TemplateName returns the role template shared by all of the user's
// assignments. Loading guarantees the assignments agree.
func (u *User) TemplateName() string {
	if len(u.Assignments) == 0 {
		return ""
	}
	return u.Assignments[0].Role
}

func (u *User) assignment(slug string) *Assignment {
	for i := range u.Assignments {
		if u.Assignments[i].Workspace == slug {
			return &u.Assignments[i]
		}
	}
	return nil
}

// FindUserFiles lists the user workbooks in dir: every .xlsx file except
// Office lock files (~$...), sorted lexically so runs are reproducible and
// conflict errors always cite the same first file.
func FindUserFiles(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "[^~$]*.xlsx"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// logical user fields in the order missing-field errors report them
var userFields = []string{"workspace", "name", "email", "role", "active"}

// LoadUsers reads and merges user declarations from every workbook in paths.
// Users merge by email across files; the first declaration fixes name and
// active. A repeated (email, workspace) pair and conflicting role templates
// across one user's assignments are hard errors citing the first-assigned
// file. workspaces is the set of declared workspace slugs.
func LoadUsers(open tabular.Opener, paths []string, workspaces map[string]bool, cols UserColumns) ([]*User, error) {
	byEmail := make(map[string]*User)
	var users []*User

	for _, path := range paths {
		wb, err := open.Open(path)
		if err != nil {
			return nil, err
		}
		sheet, err := wb.Sheet(UsersSheet)
		if err != nil {
			return nil, err
		}
		headers, err := tabular.ResolveHeaders(path, sheet.Header(), map[string]string{
			"workspace": cols.Workspace,
			"name":      cols.Name,
			"email":     cols.Email,
			"role":      cols.Role,
			"active":    cols.Active,
		})
		if err != nil {
			return nil, err
		}

		for i, row := range sheet.Rows() {
			rowNum := i + 2

			cells := make(map[string]tabular.Cell, len(userFields))
			empty := true
			missing := ""
			for _, field := range userFields {
				cell := tabular.At(row, headers[field])
				cells[field] = cell
				if cell.IsEmpty() {
					if missing == "" {
						missing = field
					}
				} else {
					empty = false
				}
			}
			if empty {
				continue
			}
			if missing != "" {
				return nil, &UserRowError{
					Source: path, Row: rowNum,
					Kind: UserRowIncomplete, Field: missing,
				}
			}

			slug := strings.ToLower(strings.TrimSpace(cells["workspace"].Text()))
			email := strings.ToLower(strings.TrimSpace(cells["email"].Text()))
			name := strings.TrimSpace(cells["name"].Text())
			role := strings.TrimSpace(cells["role"].Text())
			active := cells["active"].Truthy()

			if !workspaces[slug] {
				return nil, &UserRowError{
					Source: path, Row: rowNum,
					Kind: UserRowUnknownWorkspace, Workspace: slug,
				}
			}

			user, ok := byEmail[email]
			if !ok {
				user = &User{Email: email, Name: name, Active: active}
				byEmail[email] = user
				users = append(users, user)
			}

			if prior := user.assignment(slug); prior != nil {
				return nil, &UserRowError{
					Source: path, Row: rowNum,
					Kind: UserRowDuplicateAssignment, Workspace: slug,
					FirstFile: prior.File,
				}
			}
			for _, a := range user.Assignments {
				if a.Role != role {
					return nil, &UserRowError{
						Source: path, Row: rowNum,
						Kind: UserRowConflictingRole,
						Role:  role, Prior: a.Role, FirstFile: a.File,
					}
				}
			}

			user.Assignments = append(user.Assignments, Assignment{
				Workspace: slug,
				Role:      role,
				File:      path,
			})
		}
	}
	return users, nil
}
