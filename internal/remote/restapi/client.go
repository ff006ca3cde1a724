// Package restapi implements the remote.Client interface over the
// access-management HTTP API. Requests are context-aware and authenticate
// with the API key pair from a JSON credentials file; responses decode into
// the typed wire structs, so unknown keys in remote permission documents are
// dropped at the boundary.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/accord-sync/accord/internal/permission"
	"github.com/accord-sync/accord/internal/remote"
)

// Credentials is an API key pair issued by the remote system.
type Credentials struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
}

// LoadCredentials reads an API key pair from a JSON credentials file.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file %s: %w", path, err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials file %s: %w", path, err)
	}
	if creds.ID == "" || creds.Secret == "" {
		return nil, remote.ErrCredentialsRequired
	}
	return &creds, nil
}

// Client talks to the remote access-management API.
type Client struct {
	baseURL string
	creds   Credentials
	hc      *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string, creds *Credentials) (*Client, error) {
	if creds == nil || creds.ID == "" || creds.Secret == "" {
		return nil, remote.ErrCredentialsRequired
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   *creds,
		hc:      http.DefaultClient,
	}, nil
}

// ListWorkspaces fetches all remote workspaces.
func (c *Client) ListWorkspaces(ctx context.Context) ([]remote.Workspace, error) {
	var workspaces []remote.Workspace
	if err := c.get(ctx, "/workspaces", &workspaces); err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return workspaces, nil
}

// CreateWorkspace creates a workspace and returns the stored record.
func (c *Client) CreateWorkspace(ctx context.Context, slug, name string) (*remote.Workspace, error) {
	body := map[string]string{"slug": slug, "name": name}
	var ws remote.Workspace
	if err := c.send(ctx, http.MethodPost, "/workspaces", body, &ws); err != nil {
		return nil, fmt.Errorf("create workspace '%s': %w", slug, err)
	}
	return &ws, nil
}

// UpdateWorkspace persists edits to an existing workspace.
func (c *Client) UpdateWorkspace(ctx context.Context, ws *remote.Workspace) error {
	body := map[string]string{"slug": ws.Slug, "name": ws.Name}
	if err := c.send(ctx, http.MethodPut, "/workspaces/"+ws.ID, body, nil); err != nil {
		return fmt.Errorf("update workspace '%s': %w", ws.Slug, err)
	}
	return nil
}

// ListRoles fetches all remote roles with their full permission documents.
// The list endpoint returns summaries, so each role is fetched individually;
// workspace grants are sorted by identifier for stable comparison.
func (c *Client) ListRoles(ctx context.Context) ([]remote.Role, error) {
	var summaries []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.get(ctx, "/roles", &summaries); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	roles := make([]remote.Role, 0, len(summaries))
	for _, s := range summaries {
		var role remote.Role
		if err := c.get(ctx, "/roles/"+s.ID, &role); err != nil {
			return nil, fmt.Errorf("get role '%s': %w", s.Name, err)
		}
		role.Permissions.SortWorkspaces()
		roles = append(roles, role)
	}
	return roles, nil
}

// CreateRole creates a role with the given permission document.
func (c *Client) CreateRole(ctx context.Context, name string, doc *permission.Document) (*remote.Role, error) {
	body := map[string]any{"name": name, "permissions": doc}
	var role remote.Role
	if err := c.send(ctx, http.MethodPost, "/roles", body, &role); err != nil {
		return nil, fmt.Errorf("create role '%s': %w", name, err)
	}
	return &role, nil
}

// UpdateRole persists edits to an existing role. The remote-only bookkeeping
// fields are reset to their defaults before the write.
func (c *Client) UpdateRole(ctx context.Context, role *remote.Role) error {
	role.Permissions.Private = false
	role.Permissions.User = nil
	body := map[string]any{"name": role.Name, "permissions": &role.Permissions}
	if err := c.send(ctx, http.MethodPut, "/roles/"+role.ID, body, nil); err != nil {
		return fmt.Errorf("update role '%s': %w", role.Name, err)
	}
	return nil
}

// ListUsers fetches all remote users.
func (c *Client) ListUsers(ctx context.Context) ([]remote.User, error) {
	var users []remote.User
	if err := c.get(ctx, "/users", &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateUser creates a user with the given role.
func (c *Client) CreateUser(ctx context.Context, email, name, roleID string) (*remote.User, error) {
	body := map[string]string{"email": email, "name": name, "role_id": roleID}
	var user remote.User
	if err := c.send(ctx, http.MethodPost, "/users", body, &user); err != nil {
		return nil, fmt.Errorf("create user '%s': %w", email, err)
	}
	return &user, nil
}

// UpdateUser persists edits to an existing user.
func (c *Client) UpdateUser(ctx context.Context, user *remote.User) error {
	body := map[string]any{
		"email":   user.Email,
		"name":    user.Name,
		"active":  user.Active,
		"role_id": user.RoleID,
	}
	if err := c.send(ctx, http.MethodPut, "/users/"+user.ID, body, nil); err != nil {
		return fmt.Errorf("update user '%s': %w", user.Email, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.send(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.creds.ID, c.creds.Secret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return remote.WrapAPIError(0, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return remote.WrapAPIError(resp.StatusCode, "request rejected", remote.ErrCredentialsInvalid)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return remote.WrapAPIError(resp.StatusCode, "request failed", fmt.Errorf("%s", strings.TrimSpace(string(msg))))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
