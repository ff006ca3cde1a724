package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accord-sync/accord/internal/permission"
	"github.com/accord-sync/accord/internal/remote"
)

var testCreds = &Credentials{ID: "key-id", Secret: "key-secret"}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, testCreds)
	require.NoError(t, err)
	return c
}

func TestLoadCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"abc","secret":"xyz"}`), 0o600))

	creds, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", creds.ID)
	assert.Equal(t, "xyz", creds.Secret)
}

func TestLoadCredentials_Invalid(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCredentials(filepath.Join(dir, "absent.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		_, err := LoadCredentials(path)
		assert.Error(t, err)
	})

	t.Run("empty key pair", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"id":"","secret":""}`), 0o600))
		_, err := LoadCredentials(path)
		assert.ErrorIs(t, err, remote.ErrCredentialsRequired)
	})
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New("http://localhost", nil)
	assert.ErrorIs(t, err, remote.ErrCredentialsRequired)

	_, err = New("http://localhost", &Credentials{ID: "only-id"})
	assert.ErrorIs(t, err, remote.ErrCredentialsRequired)
}

func TestListWorkspaces(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/workspaces", r.URL.Path)

		id, secret, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key-id", id)
		assert.Equal(t, "key-secret", secret)

		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "ws-1", "slug": "clinic-a", "name": "[CLINIC-A] Clinic A"},
		})
	}))

	workspaces, err := c.ListWorkspaces(context.Background())
	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	assert.Equal(t, remote.Workspace{ID: "ws-1", Slug: "clinic-a", Name: "[CLINIC-A] Clinic A"}, workspaces[0])
}

func TestCreateWorkspace(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/workspaces", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "clinic-a", body["slug"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"id": "ws-9", "slug": body["slug"], "name": body["name"],
		})
	}))

	ws, err := c.CreateWorkspace(context.Background(), "clinic-a", "[CLINIC-A] Clinic A")
	require.NoError(t, err)
	assert.Equal(t, "ws-9", ws.ID)
}

func TestListRoles_StripsUnknownPermissionKeys(t *testing.T) {
	// The detail endpoint injects bookkeeping fields and a key the client
	// does not model; decoding must keep the first and drop the second, and
	// grants must come back sorted by identifier.
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/roles":
			json.NewEncoder(w).Encode([]map[string]string{{"id": "role-1", "name": "[A] Standard"}})
		case "/roles/role-1":
			json.NewEncoder(w).Encode(map[string]any{
				"id":   "role-1",
				"name": "[A] Standard",
				"permissions": map[string]any{
					"create_api_keys":   true,
					"private":           true,
					"user":              "someone",
					"future_permission": true,
					"workspaces": []map[string]any{
						{"id": "ws-2", "read_patients": true, "novel_flag": true},
						{"id": "ws-1", "read_patients": false},
					},
				},
			})
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	}))

	roles, err := c.ListRoles(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 1)

	role := roles[0]
	assert.True(t, role.Permissions.Private)
	require.NotNil(t, role.Permissions.User)
	assert.Equal(t, "someone", *role.Permissions.User)

	doc := role.Permissions.Doc()
	assert.True(t, doc.CreateAPIKeys)
	require.Len(t, doc.Workspaces, 2)
	assert.Equal(t, "ws-1", doc.Workspaces[0].ID)
	assert.Equal(t, "ws-2", doc.Workspaces[1].ID)
	assert.True(t, doc.Workspaces[1].ReadPatients)
}

func TestUpdateRole_ResetsBookkeepingFields(t *testing.T) {
	var sent map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/roles/role-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		w.WriteHeader(http.StatusOK)
	}))

	owner := "someone"
	role := &remote.Role{
		ID:   "role-1",
		Name: "[A] Standard",
		Permissions: remote.RolePermissions{
			Document: permission.Document{
				OrganizationPermissions: permission.OrganizationPermissions{ManageAccess: true},
				Workspaces:              []permission.WorkspaceGrant{},
			},
			Private: true,
			User:    &owner,
		},
	}

	require.NoError(t, c.UpdateRole(context.Background(), role))

	perms, ok := sent["permissions"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, perms["private"])
	assert.Nil(t, perms["user"])
	assert.Equal(t, true, perms["manage_access"])
}

func TestCreateUser(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "role-1", body["role_id"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id": "user-1", "email": body["email"], "name": body["name"],
			"active": true, "role_id": body["role_id"],
		})
	}))

	user, err := c.CreateUser(context.Background(), "ada@example.com", "Ada", "role-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.True(t, user.Active)
}

func TestSend_RejectedCredentials(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.ListUsers(context.Background())
	assert.ErrorIs(t, err, remote.ErrCredentialsInvalid)

	var apiErr *remote.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestSend_ServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workspace slug already in use", http.StatusConflict)
	}))

	_, err := c.CreateWorkspace(context.Background(), "clinic-a", "[CLINIC-A] Clinic A")

	var apiErr *remote.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "workspace slug already in use")
}
