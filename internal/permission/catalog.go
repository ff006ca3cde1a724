package permission

import "sort"

// The catalog maps the category headers and permission labels that appear in
// role sheets onto template fields. It is fixed configuration: sheets may
// only use these exact category names and, within a category, these exact
// labels.
//
// "Advanced User Permissions", "Organization Management Permissions", and
// "All Workspaces" all land in the organization block; "Primary Workspaces"
// and "Other Workspaces" land in the respective per-workspace blocks.

type fieldRef func(*Template) *bool

var catalog = map[string]map[string]fieldRef{
	"Advanced User Permissions": {
		"Create API Keys": func(t *Template) *bool { return &t.Organization.CreateAPIKeys },
	},
	"Organization Management Permissions": {
		"Manage Users, Roles, and Workspaces": func(t *Template) *bool { return &t.Organization.ManageAccess },
		"Manage Custom Metrics":               func(t *Template) *bool { return &t.Organization.ManageCustomMetrics },
		"Manage Renaming Rules":               func(t *Template) *bool { return &t.Organization.ManageTemplateMetricSets },
		"Manage Scorecard Templates":          func(t *Template) *bool { return &t.Organization.ManageRenamingRules },
		"Manage Checklist Templates":          func(t *Template) *bool { return &t.Organization.ManageTemplateChecklists },
		"Manage Structure Set Templates":      func(t *Template) *bool { return &t.Organization.ManageTemplateStructureSets },
		"Manage Workspace Algorithms":         func(t *Template) *bool { return &t.Organization.ManageWorkspaceAlgorithms },
	},
	"All Workspaces": {
		"Read Patients":         func(t *Template) *bool { return &t.Organization.OrganizationReadPatients },
		"Manage Patient Access": func(t *Template) *bool { return &t.Organization.OrganizationManageAccessPatients },
		"View PHI":              func(t *Template) *bool { return &t.Organization.OrganizationViewPHI },
		"Download DICOM":        func(t *Template) *bool { return &t.Organization.OrganizationDownloadDICOM },
		"Upload DICOM":          func(t *Template) *bool { return &t.Organization.OrganizationUploadDICOM },
		"Write Patients":        func(t *Template) *bool { return &t.Organization.OrganizationWritePatients },
		"Contour Patients":      func(t *Template) *bool { return &t.Organization.OrganizationContourPatients },
		"Delete Patients":       func(t *Template) *bool { return &t.Organization.OrganizationDeletePatients },
		"Read Collections":      func(t *Template) *bool { return &t.Organization.OrganizationReadCollections },
		"Write Collections":     func(t *Template) *bool { return &t.Organization.OrganizationWriteCollections },
		"Delete Collections":    func(t *Template) *bool { return &t.Organization.OrganizationDeleteCollections },
		"Collaborator":          func(t *Template) *bool { return &t.Organization.OrganizationCollaborator },
	},
	"Primary Workspaces": workspaceLabels(func(t *Template) *WorkspacePermissions { return &t.Primary }),
	"Other Workspaces":   workspaceLabels(func(t *Template) *WorkspacePermissions { return &t.Other }),
}

func workspaceLabels(block func(*Template) *WorkspacePermissions) map[string]fieldRef {
	return map[string]fieldRef{
		"Read Patients":         func(t *Template) *bool { return &block(t).ReadPatients },
		"Manage Patient Access": func(t *Template) *bool { return &block(t).ManageAccessPatients },
		"View PHI":              func(t *Template) *bool { return &block(t).ViewPHI },
		"Download DICOM":        func(t *Template) *bool { return &block(t).DownloadDICOM },
		"Upload DICOM":          func(t *Template) *bool { return &block(t).UploadDICOM },
		"Write Patients":        func(t *Template) *bool { return &block(t).WritePatients },
		"Contour Patients":      func(t *Template) *bool { return &block(t).ContourPatients },
		"Delete Patients":       func(t *Template) *bool { return &block(t).DeletePatients },
		"Read Collections":      func(t *Template) *bool { return &block(t).ReadCollections },
		"Write Collections":     func(t *Template) *bool { return &block(t).WriteCollections },
		"Delete Collections":    func(t *Template) *bool { return &block(t).DeleteCollections },
		"Collaborator":          func(t *Template) *bool { return &block(t).Collaborator },
	}
}

// IsCategory reports whether name is one of the fixed category headers.
func IsCategory(name string) bool {
	_, ok := catalog[name]
	return ok
}

// Categories returns the fixed category names in sorted order.
func Categories() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
