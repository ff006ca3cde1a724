package desired

import (
	"fmt"

	"github.com/accord-sync/accord/internal/permission"
	"github.com/accord-sync/accord/internal/tabular"
)

// Sources names the tabular inputs of a run and the configured column
// headers. Paths are passed to the opener as-is.
type Sources struct {
	Opener tabular.Opener

	WorkspacesPath string
	RolesPath      string
	UserPaths      []string

	WorkspaceSlugColumn string
	WorkspaceNameColumn string
	UserColumns         UserColumns
}

// State is the fully validated desired state of a run.
type State struct {
	Workspaces []Workspace
	Templates  map[string]*permission.Template
	Users      []*User
}

// Slugs returns the desired workspace slugs in declaration order.
func (s *State) Slugs() []string {
	slugs := make([]string, len(s.Workspaces))
	for i, w := range s.Workspaces {
		slugs[i] = w.Slug
	}
	return slugs
}

// SlugSet returns the desired workspace slugs as a set.
func (s *State) SlugSet() map[string]bool {
	set := make(map[string]bool, len(s.Workspaces))
	for _, w := range s.Workspaces {
		set[w.Slug] = true
	}
	return set
}

// Load assembles the desired state: workspaces, then role templates, then
// users (validated against the workspace set), and finally checks that every
// user's role template exists.
func Load(src Sources) (*State, error) {
	wb, err := src.Opener.Open(src.WorkspacesPath)
	if err != nil {
		return nil, err
	}
	workspaces, err := LoadWorkspaces(wb, src.WorkspacesPath, src.WorkspaceSlugColumn, src.WorkspaceNameColumn)
	if err != nil {
		return nil, err
	}

	rolesWB, err := src.Opener.Open(src.RolesPath)
	if err != nil {
		return nil, err
	}
	templates, err := LoadTemplates(rolesWB)
	if err != nil {
		return nil, err
	}

	state := &State{Workspaces: workspaces, Templates: templates}

	users, err := LoadUsers(src.Opener, src.UserPaths, state.SlugSet(), src.UserColumns)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if _, ok := templates[u.TemplateName()]; !ok {
			return nil, &TemplateError{
				Sheet:  u.TemplateName(),
				Reason: fmt.Sprintf("user '%s' references an undefined role template '%s'", u.Email, u.TemplateName()),
			}
		}
	}
	state.Users = users
	return state, nil
}
