// Package permission models the access-management permission system: the
// fixed category/label catalog role sheets are written against, the typed
// permission blocks a role template carries, and the compiler that expands a
// template plus a set of primary workspaces into the canonical document the
// remote API stores on a role.
//
// Permissions are explicit struct fields rather than a string-keyed tree, so
// a typo in a permission path is a compile error here instead of a silently
// ignored key on the remote side.
package permission

// OrganizationPermissions holds the organization-level booleans of a
// permission document. The organization_* fields are the all-workspaces
// grants that apply across every workspace without a per-workspace entry.
type OrganizationPermissions struct {
	CreateAPIKeys bool `json:"create_api_keys"`

	ManageAccess                bool `json:"manage_access"`
	ManageCustomMetrics         bool `json:"manage_custom_metrics"`
	ManageTemplateMetricSets    bool `json:"manage_template_metric_sets"`
	ManageRenamingRules         bool `json:"manage_renaming_rules"`
	ManageTemplateChecklists    bool `json:"manage_template_checklists"`
	ManageTemplateStructureSets bool `json:"manage_template_structure_sets"`
	ManageWorkspaceAlgorithms   bool `json:"manage_workspace_algorithms"`

	OrganizationReadPatients         bool `json:"organization_read_patients"`
	OrganizationManageAccessPatients bool `json:"organization_manage_access_patients"`
	OrganizationViewPHI              bool `json:"organization_view_phi"`
	OrganizationDownloadDICOM        bool `json:"organization_download_dicom"`
	OrganizationUploadDICOM          bool `json:"organization_upload_dicom"`
	OrganizationWritePatients        bool `json:"organization_write_patients"`
	OrganizationContourPatients      bool `json:"organization_contour_patients"`
	OrganizationDeletePatients       bool `json:"organization_delete_patients"`
	OrganizationReadCollections      bool `json:"organization_read_collections"`
	OrganizationWriteCollections     bool `json:"organization_write_collections"`
	OrganizationDeleteCollections    bool `json:"organization_delete_collections"`
	OrganizationCollaborator         bool `json:"organization_collaborator"`
}

// WorkspacePermissions holds the per-workspace booleans. The same shape is
// used for the primary-workspace grants and the other-workspace grants of a
// template.
type WorkspacePermissions struct {
	ReadPatients         bool `json:"read_patients"`
	ManageAccessPatients bool `json:"manage_access_patients"`
	ViewPHI              bool `json:"view_phi"`
	DownloadDICOM        bool `json:"download_dicom"`
	UploadDICOM          bool `json:"upload_dicom"`
	WritePatients        bool `json:"write_patients"`
	ContourPatients      bool `json:"contour_patients"`
	DeletePatients       bool `json:"delete_patients"`
	ReadCollections      bool `json:"read_collections"`
	WriteCollections     bool `json:"write_collections"`
	DeleteCollections    bool `json:"delete_collections"`
	Collaborator         bool `json:"collaborator"`
}

// Any reports whether at least one permission in the block is granted.
func (p WorkspacePermissions) Any() bool {
	return p.ReadPatients || p.ManageAccessPatients || p.ViewPHI ||
		p.DownloadDICOM || p.UploadDICOM || p.WritePatients ||
		p.ContourPatients || p.DeletePatients || p.ReadCollections ||
		p.WriteCollections || p.DeleteCollections || p.Collaborator
}

// WorkspaceGrant is one workspace entry of a permission document: a remote
// workspace identifier plus the permissions granted within it.
type WorkspaceGrant struct {
	ID string `json:"id"`
	WorkspacePermissions
}

// Document is the canonical permission document stored on a role. Its JSON
// form matches the remote representation: organization booleans at the top
// level and one entry per granted workspace.
type Document struct {
	OrganizationPermissions
	Workspaces []WorkspaceGrant `json:"workspaces"`
}

// Equal reports deep equality of two documents. Workspace grants are compared
// positionally; Compile always emits them sorted by identifier, and remote
// documents are sorted the same way before comparison.
func (d *Document) Equal(other *Document) bool {
	if d.OrganizationPermissions != other.OrganizationPermissions {
		return false
	}
	if len(d.Workspaces) != len(other.Workspaces) {
		return false
	}
	for i, g := range d.Workspaces {
		if g != other.Workspaces[i] {
			return false
		}
	}
	return true
}

// SortWorkspaces orders the workspace grants by remote identifier so two
// documents with the same content always compare equal.
func (d *Document) SortWorkspaces() {
	sortGrants(d.Workspaces)
}
