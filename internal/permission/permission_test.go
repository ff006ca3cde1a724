package permission

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// Template
// ---------------------------------------------------------------------------

func TestNewTemplate_AllDenied(t *testing.T) {
	tpl := NewTemplate("Standard")

	var zero Template
	zero.Name = "Standard"
	if *tpl != zero {
		t.Errorf("NewTemplate() = %+v, want every permission false", tpl)
	}
}

func TestTemplateSet(t *testing.T) {
	tests := []struct {
		name     string
		category string
		label    string
		want     bool
		check    func(*Template) bool
	}{
		{
			name:     "organization management",
			category: "Organization Management Permissions",
			label:    "Manage Users, Roles, and Workspaces",
			want:     true,
			check:    func(tpl *Template) bool { return tpl.Organization.ManageAccess },
		},
		{
			name:     "advanced user",
			category: "Advanced User Permissions",
			label:    "Create API Keys",
			want:     true,
			check:    func(tpl *Template) bool { return tpl.Organization.CreateAPIKeys },
		},
		{
			name:     "all workspaces",
			category: "All Workspaces",
			label:    "View PHI",
			want:     true,
			check:    func(tpl *Template) bool { return tpl.Organization.OrganizationViewPHI },
		},
		{
			name:     "primary workspaces",
			category: "Primary Workspaces",
			label:    "Read Patients",
			want:     true,
			check:    func(tpl *Template) bool { return tpl.Primary.ReadPatients },
		},
		{
			name:     "other workspaces",
			category: "Other Workspaces",
			label:    "Collaborator",
			want:     true,
			check:    func(tpl *Template) bool { return tpl.Other.Collaborator },
		},
		{
			name:     "unknown category",
			category: "Imaginary",
			label:    "Read Patients",
			want:     false,
		},
		{
			name:     "unknown label",
			category: "Primary Workspaces",
			label:    "Imaginary",
			want:     false,
		},
		{
			name:     "label from other category",
			category: "Advanced User Permissions",
			label:    "Read Patients",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := NewTemplate("T")
			if got := tpl.Set(tt.category, tt.label, true); got != tt.want {
				t.Fatalf("Set(%q, %q) = %v, want %v", tt.category, tt.label, got, tt.want)
			}
			if tt.check != nil && !tt.check(tpl) {
				t.Errorf("Set(%q, %q) did not flip the expected field", tt.category, tt.label)
			}
		})
	}
}

func TestIsCategory(t *testing.T) {
	for _, name := range Categories() {
		if !IsCategory(name) {
			t.Errorf("IsCategory(%q) = false for a listed category", name)
		}
	}
	if IsCategory("Workspaces") {
		t.Error("IsCategory(\"Workspaces\") = true, want false")
	}
}

func TestWorkspacePermissionsAny(t *testing.T) {
	var p WorkspacePermissions
	if p.Any() {
		t.Error("Any() = true for zero block")
	}
	p.DeleteCollections = true
	if !p.Any() {
		t.Error("Any() = false with a granted permission")
	}
}

// ---------------------------------------------------------------------------
// RoleName
// ---------------------------------------------------------------------------

func TestRoleName(t *testing.T) {
	tests := []struct {
		name     string
		primary  []string
		template string
		want     string
	}{
		{"single", []string{"clinic-a"}, "Standard", "[CLINIC-A] Standard"},
		{"declared order kept", []string{"bbb", "aaa"}, "Standard", "[BBB+AAA] Standard"},
		{"none", nil, "Physics", "[] Physics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoleName(tt.primary, tt.template); got != tt.want {
				t.Errorf("RoleName() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Compile
// ---------------------------------------------------------------------------

func TestCompile_PrimaryOnly(t *testing.T) {
	tpl := NewTemplate("Standard")
	tpl.Organization.CreateAPIKeys = true
	tpl.Primary.ReadPatients = true

	ids := map[string]string{"a": "id-a", "b": "id-b", "c": "id-c"}
	doc, err := Compile(tpl, []string{"b"}, []string{"a", "b", "c"}, ids)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if !doc.CreateAPIKeys {
		t.Error("organization block not carried into document")
	}
	if len(doc.Workspaces) != 1 {
		t.Fatalf("len(Workspaces) = %d, want 1 (no other-workspace grants)", len(doc.Workspaces))
	}
	g := doc.Workspaces[0]
	if g.ID != "id-b" || !g.ReadPatients {
		t.Errorf("grant = %+v, want id-b with read_patients", g)
	}
}

func TestCompile_OtherWorkspaceExpansion(t *testing.T) {
	tpl := NewTemplate("Standard")
	tpl.Primary.WritePatients = true
	tpl.Other.ReadPatients = true

	ids := map[string]string{"a": "id-3", "b": "id-1", "c": "id-2"}
	doc, err := Compile(tpl, []string{"a"}, []string{"a", "b", "c"}, ids)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if len(doc.Workspaces) != 3 {
		t.Fatalf("len(Workspaces) = %d, want 3", len(doc.Workspaces))
	}

	// Sorted by remote identifier.
	for i, want := range []string{"id-1", "id-2", "id-3"} {
		if doc.Workspaces[i].ID != want {
			t.Errorf("Workspaces[%d].ID = %s, want %s", i, doc.Workspaces[i].ID, want)
		}
	}

	for _, g := range doc.Workspaces {
		primary := g.ID == "id-3"
		if g.WritePatients != primary {
			t.Errorf("grant %s: WritePatients = %v, want %v", g.ID, g.WritePatients, primary)
		}
		if g.ReadPatients != !primary {
			t.Errorf("grant %s: ReadPatients = %v, want %v", g.ID, g.ReadPatients, !primary)
		}
	}
}

func TestCompile_UnresolvedWorkspace(t *testing.T) {
	tpl := NewTemplate("Standard")
	_, err := Compile(tpl, []string{"ghost"}, []string{"ghost"}, map[string]string{})

	var uErr *UnresolvedWorkspaceError
	if !errors.As(err, &uErr) {
		t.Fatalf("Compile() error = %v, want *UnresolvedWorkspaceError", err)
	}
	if uErr.Slug != "ghost" {
		t.Errorf("Slug = %q, want %q", uErr.Slug, "ghost")
	}
	if uErr.Role != "[GHOST] Standard" {
		t.Errorf("Role = %q, want %q", uErr.Role, "[GHOST] Standard")
	}
}

// ---------------------------------------------------------------------------
// Document equality
// ---------------------------------------------------------------------------

func TestDocumentEqual(t *testing.T) {
	base := func() *Document {
		return &Document{
			OrganizationPermissions: OrganizationPermissions{ManageAccess: true},
			Workspaces: []WorkspaceGrant{
				{ID: "w1", WorkspacePermissions: WorkspacePermissions{ReadPatients: true}},
				{ID: "w2"},
			},
		}
	}

	a, b := base(), base()
	if !a.Equal(b) {
		t.Error("Equal() = false for identical documents")
	}

	b = base()
	b.ManageAccess = false
	if a.Equal(b) {
		t.Error("Equal() = true with differing organization block")
	}

	b = base()
	b.Workspaces[1].ViewPHI = true
	if a.Equal(b) {
		t.Error("Equal() = true with differing workspace grant")
	}

	b = base()
	b.Workspaces = b.Workspaces[:1]
	if a.Equal(b) {
		t.Error("Equal() = true with differing grant count")
	}
}

func TestDocumentSortWorkspaces(t *testing.T) {
	doc := &Document{Workspaces: []WorkspaceGrant{{ID: "z"}, {ID: "a"}, {ID: "m"}}}
	doc.SortWorkspaces()

	for i, want := range []string{"a", "m", "z"} {
		if doc.Workspaces[i].ID != want {
			t.Errorf("Workspaces[%d].ID = %s, want %s", i, doc.Workspaces[i].ID, want)
		}
	}
}
