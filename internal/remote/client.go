// Package remote defines the access-management API client interface and its
// wire types. The reconciler depends only on this interface; the restapi
// subpackage provides the HTTP implementation and tests substitute an
// in-memory fake.
package remote

import (
	"context"

	"github.com/accord-sync/accord/internal/permission"
)

// Workspace is a remote workspace record.
type Workspace struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// RolePermissions is the permission document as the remote system stores it.
// Beyond the canonical document it carries two bookkeeping fields the desired
// state never specifies; decoding a remote document into this type drops any
// further unknown keys, and Doc() strips Private/User for comparison.
type RolePermissions struct {
	permission.Document
	Private bool    `json:"private"`
	User    *string `json:"user"`
}

// Doc returns the canonical document without the remote-only bookkeeping
// fields.
func (p *RolePermissions) Doc() *permission.Document {
	return &p.Document
}

// Role is a remote role record with its full permission document.
type Role struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Permissions RolePermissions `json:"permissions"`
}

// User is a remote user record.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	RoleID string `json:"role_id"`
}

// Client is the remote access-management API. Listing returns full records;
// create calls return the stored record including its new identifier; update
// calls persist in-place edits keyed by identifier. Retry and pagination are
// the implementation's concern, not the caller's.
type Client interface {
	ListWorkspaces(ctx context.Context) ([]Workspace, error)
	CreateWorkspace(ctx context.Context, slug, name string) (*Workspace, error)
	UpdateWorkspace(ctx context.Context, ws *Workspace) error

	ListRoles(ctx context.Context) ([]Role, error)
	CreateRole(ctx context.Context, name string, doc *permission.Document) (*Role, error)
	UpdateRole(ctx context.Context, role *Role) error

	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, email, name, roleID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
}
