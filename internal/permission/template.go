package permission

// Template is a named, reusable permission profile before workspace
// expansion. A freshly constructed template has every known permission set to
// false; role sheets then switch individual permissions on.
type Template struct {
	Name         string
	Organization OrganizationPermissions
	Primary      WorkspacePermissions
	Other        WorkspacePermissions
}

// NewTemplate returns a template with every permission denied.
func NewTemplate(name string) *Template {
	return &Template{Name: name}
}

// Set assigns the permission identified by category and label. It reports
// whether the label exists within the category; callers are expected to have
// validated the category with IsCategory first.
func (t *Template) Set(category, label string, value bool) bool {
	labels, ok := catalog[category]
	if !ok {
		return false
	}
	ref, ok := labels[label]
	if !ok {
		return false
	}
	*ref(t) = value
	return true
}
