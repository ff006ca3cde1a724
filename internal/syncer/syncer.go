// Package syncer runs the three reconciliation passes in dependency order:
// workspaces first (their remote identifiers feed role compilation), then
// roles (their identifiers feed user records), then users. Each pass queries
// the remote system, diffs against the desired state, asks for confirmation
// when anything would change, and applies creates and updates one at a time.
// Re-running after a clean pass is a no-op.
package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/accord-sync/accord/internal/desired"
	"github.com/accord-sync/accord/internal/permission"
	"github.com/accord-sync/accord/internal/reconcile"
	"github.com/accord-sync/accord/internal/remote"
)

// adminRoleName is the system-reserved role that always exists remotely and
// is never reported as unknown.
const adminRoleName = "Admin"

// ErrAborted is returned when the operator declines a confirmation prompt.
// One declined prompt aborts the whole run.
var ErrAborted = errors.New("synchronization aborted")

// Gate asks the operator to confirm a destructive step.
type Gate interface {
	Confirm(question string) (bool, error)
}

// Sink receives progress and report output. Implementations decide how to
// render it; the syncer never touches the terminal directly.
type Sink interface {
	Phase(msg string)
	Notice(msg string)
	Success(msg string)
	Item(msg string)
	Progress(current, total int, label string)
}

// Syncer reconciles desired state against the remote system.
type Syncer struct {
	Remote remote.Client
	Gate   Gate
	Sink   Sink
}

// Run executes the full pipeline. It returns ErrAborted when a confirmation
// is declined; any other error is a validation or remote failure. A failure
// mid-apply leaves the remote system partially updated.
func (s *Syncer) Run(ctx context.Context, state *desired.State) error {
	workspaceIDs, unknownWorkspaces, err := s.syncWorkspaces(ctx, state)
	if err != nil {
		return err
	}

	roleIDs, unknownRoles, err := s.syncRoles(ctx, state, workspaceIDs)
	if err != nil {
		return err
	}

	unknownUsers, err := s.syncUsers(ctx, state, roleIDs)
	if err != nil {
		return err
	}

	s.reportUnknown(unknownWorkspaces, unknownRoles, unknownUsers)
	return nil
}

// syncWorkspaces reconciles the workspace tier and returns slug → remote
// identifier for every desired workspace.
func (s *Syncer) syncWorkspaces(ctx context.Context, state *desired.State) (map[string]string, []remote.Workspace, error) {
	s.Sink.Phase("Synchronizing Workspaces...")

	existing, err := s.Remote.ListWorkspaces(ctx)
	if err != nil {
		return nil, nil, err
	}

	plan := reconcile.Build(state.Workspaces, existing,
		func(w desired.Workspace) string { return w.Slug },
		func(w remote.Workspace) string { return w.Slug },
		func(d desired.Workspace, r *remote.Workspace) bool { return d.Name == r.Name },
		nil,
	)

	ids := make(map[string]string, len(plan.Items))
	if !plan.Dirty() {
		for _, item := range plan.Items {
			ids[item.Desired.Slug] = item.Remote.ID
		}
		s.Sink.Success(fmt.Sprintf(" All %d workspaces are up to date", len(plan.Items)))
		return ids, plan.Unknown, nil
	}

	created, updated := plan.Counts()
	s.Sink.Notice(fmt.Sprintf(" Workspaces have changed (%d created, %d updated)", created, updated))
	if err := s.confirm("Are you sure you wish to synchronize workspaces?"); err != nil {
		return nil, nil, err
	}

	total := created + updated
	step := 0
	for _, item := range plan.Items {
		switch item.Action {
		case reconcile.Create:
			step++
			s.Sink.Progress(step, total, item.Desired.Slug)
			ws, err := s.Remote.CreateWorkspace(ctx, item.Desired.Slug, item.Desired.Name)
			if err != nil {
				return nil, nil, err
			}
			ids[item.Desired.Slug] = ws.ID
		case reconcile.Update:
			step++
			s.Sink.Progress(step, total, item.Desired.Slug)
			item.Remote.Name = item.Desired.Name
			if err := s.Remote.UpdateWorkspace(ctx, item.Remote); err != nil {
				return nil, nil, err
			}
			ids[item.Desired.Slug] = item.Remote.ID
		default:
			ids[item.Desired.Slug] = item.Remote.ID
		}
	}
	s.Sink.Success(" Workspaces successfully synchronized")
	return ids, plan.Unknown, nil
}

// compiledRole is a role template expanded for one user group.
type compiledRole struct {
	Name string
	Doc  *permission.Document
}

// compileRoles derives the required roles from the user set. Two users with
// the same workspaces and template share one role; role identity is the
// compiled name.
func compileRoles(state *desired.State, workspaceIDs map[string]string) ([]compiledRole, map[string]string, error) {
	var roles []compiledRole
	index := make(map[string]int)
	userRole := make(map[string]string, len(state.Users))

	for _, user := range state.Users {
		slugs := user.PrimarySlugs()
		name := permission.RoleName(slugs, user.TemplateName())
		userRole[user.Email] = name
		if _, ok := index[name]; ok {
			continue
		}
		doc, err := permission.Compile(state.Templates[user.TemplateName()], slugs, state.Slugs(), workspaceIDs)
		if err != nil {
			return nil, nil, err
		}
		index[name] = len(roles)
		roles = append(roles, compiledRole{Name: name, Doc: doc})
	}
	return roles, userRole, nil
}

// syncRoles reconciles the role tier and returns compiled-role-name → remote
// identifier.
func (s *Syncer) syncRoles(ctx context.Context, state *desired.State, workspaceIDs map[string]string) (map[string]string, []remote.Role, error) {
	s.Sink.Phase("Synchronizing Roles...")

	roles, _, err := compileRoles(state, workspaceIDs)
	if err != nil {
		return nil, nil, err
	}

	existing, err := s.Remote.ListRoles(ctx)
	if err != nil {
		return nil, nil, err
	}
	for i := range existing {
		existing[i].Permissions.SortWorkspaces()
	}

	plan := reconcile.Build(roles, existing,
		func(r compiledRole) string { return r.Name },
		func(r remote.Role) string { return r.Name },
		func(d compiledRole, r *remote.Role) bool { return d.Doc.Equal(r.Permissions.Doc()) },
		func(r remote.Role) bool { return r.Name == adminRoleName },
	)

	ids := make(map[string]string, len(plan.Items))
	if !plan.Dirty() {
		for _, item := range plan.Items {
			ids[item.Desired.Name] = item.Remote.ID
		}
		s.Sink.Success(fmt.Sprintf(" All %d roles are up to date", len(plan.Items)))
		return ids, plan.Unknown, nil
	}

	created, updated := plan.Counts()
	s.Sink.Notice(fmt.Sprintf(" Roles have changed (%d created, %d updated)", created, updated))
	if err := s.confirm("Are you sure you wish to synchronize roles?"); err != nil {
		return nil, nil, err
	}

	total := created + updated
	step := 0
	for _, item := range plan.Items {
		switch item.Action {
		case reconcile.Create:
			step++
			s.Sink.Progress(step, total, item.Desired.Name)
			role, err := s.Remote.CreateRole(ctx, item.Desired.Name, item.Desired.Doc)
			if err != nil {
				return nil, nil, err
			}
			ids[item.Desired.Name] = role.ID
		case reconcile.Update:
			step++
			s.Sink.Progress(step, total, item.Desired.Name)
			item.Remote.Permissions = remote.RolePermissions{Document: *item.Desired.Doc}
			if err := s.Remote.UpdateRole(ctx, item.Remote); err != nil {
				return nil, nil, err
			}
			ids[item.Desired.Name] = item.Remote.ID
		default:
			ids[item.Desired.Name] = item.Remote.ID
		}
	}
	s.Sink.Success(" Roles successfully synchronized")
	return ids, plan.Unknown, nil
}

// userRecord is a desired user resolved to its compiled role's remote
// identifier.
type userRecord struct {
	Email  string
	Name   string
	Active bool
	RoleID string
}

// syncUsers reconciles the user tier.
func (s *Syncer) syncUsers(ctx context.Context, state *desired.State, roleIDs map[string]string) ([]remote.User, error) {
	s.Sink.Phase("Synchronizing Users...")

	records := make([]userRecord, len(state.Users))
	for i, user := range state.Users {
		name := permission.RoleName(user.PrimarySlugs(), user.TemplateName())
		records[i] = userRecord{
			Email:  user.Email,
			Name:   user.Name,
			Active: user.Active,
			RoleID: roleIDs[name],
		}
	}

	existing, err := s.Remote.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	plan := reconcile.Build(records, existing,
		func(u userRecord) string { return u.Email },
		func(u remote.User) string { return u.Email },
		func(d userRecord, r *remote.User) bool {
			return d.Name == r.Name && d.Active == r.Active && d.RoleID == r.RoleID
		},
		nil,
	)

	if !plan.Dirty() {
		s.Sink.Success(fmt.Sprintf(" All %d users are up to date", len(plan.Items)))
		return plan.Unknown, nil
	}

	created, updated := plan.Counts()
	s.Sink.Notice(fmt.Sprintf(" Users have changed (%d created, %d updated)", created, updated))
	if err := s.confirm("Are you sure you wish to synchronize users?"); err != nil {
		return nil, err
	}

	total := created + updated
	step := 0
	for _, item := range plan.Items {
		switch item.Action {
		case reconcile.Create:
			step++
			s.Sink.Progress(step, total, item.Desired.Email)
			if _, err := s.Remote.CreateUser(ctx, item.Desired.Email, item.Desired.Name, item.Desired.RoleID); err != nil {
				return nil, err
			}
		case reconcile.Update:
			step++
			s.Sink.Progress(step, total, item.Desired.Email)
			item.Remote.Name = item.Desired.Name
			item.Remote.Active = item.Desired.Active
			item.Remote.RoleID = item.Desired.RoleID
			if err := s.Remote.UpdateUser(ctx, item.Remote); err != nil {
				return nil, err
			}
		}
	}
	s.Sink.Success(" Users successfully synchronized")
	return plan.Unknown, nil
}

// reportUnknown lists remote records no desired declaration matched. They are
// reported only, never mutated or deleted.
func (s *Syncer) reportUnknown(workspaces []remote.Workspace, roles []remote.Role, users []remote.User) {
	if len(workspaces)+len(roles)+len(users) == 0 {
		return
	}
	s.Sink.Phase("Identifying Unknown Resources...")
	if len(workspaces) > 0 {
		s.Sink.Notice(fmt.Sprintf(" Identified %d unknown workspaces:", len(workspaces)))
		for _, ws := range workspaces {
			s.Sink.Item(fmt.Sprintf("  %s (%s)", ws.Name, ws.Slug))
		}
	}
	if len(roles) > 0 {
		s.Sink.Notice(fmt.Sprintf(" Identified %d unknown roles:", len(roles)))
		for _, role := range roles {
			s.Sink.Item(fmt.Sprintf("  %s", role.Name))
		}
	}
	if len(users) > 0 {
		s.Sink.Notice(fmt.Sprintf(" Identified %d unknown users:", len(users)))
		for _, user := range users {
			s.Sink.Item(fmt.Sprintf("  %s (%s)", user.Name, user.Email))
		}
	}
}

func (s *Syncer) confirm(question string) error {
	ok, err := s.Gate.Confirm(question)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	return nil
}
