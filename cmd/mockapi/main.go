// Package main is a development stand-in for the remote access-management
// API. It serves the workspace/role/user endpoints the sync client calls,
// backed by in-memory maps, so a full run can be exercised locally without a
// real tenant. State is lost on restart. The permission documents are stored
// as raw JSON, and roles gain the private/user bookkeeping fields the real
// system adds, which makes this useful for verifying the client's stripping
// behavior end to end.
package main

import (
	"flag"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type workspace struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type role struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Permissions map[string]any `json:"permissions"`
}

type user struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	RoleID string `json:"role_id"`
}

type store struct {
	mu         sync.Mutex
	workspaces map[string]*workspace
	roles      map[string]*role
	users      map[string]*user
}

func newStore() *store {
	s := &store{
		workspaces: make(map[string]*workspace),
		roles:      make(map[string]*role),
		users:      make(map[string]*user),
	}
	// Every tenant ships with the reserved Admin role.
	admin := &role{
		ID:   uuid.NewString(),
		Name: "Admin",
		Permissions: map[string]any{
			"manage_access": true,
			"private":       false,
			"user":          nil,
			"workspaces":    []any{},
		},
	}
	s.roles[admin.ID] = admin
	return s
}

// decorate adds the bookkeeping fields the real system maintains on every
// stored permission document.
func decorate(perms map[string]any) map[string]any {
	if perms == nil {
		perms = map[string]any{}
	}
	if _, ok := perms["private"]; !ok {
		perms["private"] = false
	}
	if _, ok := perms["user"]; !ok {
		perms["user"] = nil
	}
	return perms
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	s := newStore()
	r := gin.Default()

	r.GET("/workspaces", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]*workspace, 0, len(s.workspaces))
		for _, ws := range s.workspaces {
			out = append(out, ws)
		}
		c.JSON(http.StatusOK, out)
	})
	r.POST("/workspaces", func(c *gin.Context) {
		var in workspace
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		in.ID = uuid.NewString()
		s.mu.Lock()
		s.workspaces[in.ID] = &in
		s.mu.Unlock()
		c.JSON(http.StatusCreated, &in)
	})
	r.PUT("/workspaces/:id", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		ws, ok := s.workspaces[c.Param("id")]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "workspace not found"})
			return
		}
		var in workspace
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ws.Slug, ws.Name = in.Slug, in.Name
		c.JSON(http.StatusOK, ws)
	})

	r.GET("/roles", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]gin.H, 0, len(s.roles))
		for _, role := range s.roles {
			out = append(out, gin.H{"id": role.ID, "name": role.Name})
		}
		c.JSON(http.StatusOK, out)
	})
	r.GET("/roles/:id", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		role, ok := s.roles[c.Param("id")]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
			return
		}
		c.JSON(http.StatusOK, role)
	})
	r.POST("/roles", func(c *gin.Context) {
		var in role
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		in.ID = uuid.NewString()
		in.Permissions = decorate(in.Permissions)
		s.mu.Lock()
		s.roles[in.ID] = &in
		s.mu.Unlock()
		c.JSON(http.StatusCreated, &in)
	})
	r.PUT("/roles/:id", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		role, ok := s.roles[c.Param("id")]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
			return
		}
		var in struct {
			Name        string         `json:"name"`
			Permissions map[string]any `json:"permissions"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		role.Name = in.Name
		role.Permissions = decorate(in.Permissions)
		c.JSON(http.StatusOK, role)
	})

	r.GET("/users", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]*user, 0, len(s.users))
		for _, u := range s.users {
			out = append(out, u)
		}
		c.JSON(http.StatusOK, out)
	})
	r.POST("/users", func(c *gin.Context) {
		var in user
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		in.ID = uuid.NewString()
		in.Active = true // new accounts start active
		s.mu.Lock()
		s.users[in.ID] = &in
		s.mu.Unlock()
		c.JSON(http.StatusCreated, &in)
	})
	r.PUT("/users/:id", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		u, ok := s.users[c.Param("id")]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		var in user
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		u.Email, u.Name, u.Active, u.RoleID = in.Email, in.Name, in.Active, in.RoleID
		c.JSON(http.StatusOK, u)
	})

	log.Printf("mock access-management API listening on %s", *addr)
	if err := r.Run(*addr); err != nil {
		log.Fatal(err)
	}
}
