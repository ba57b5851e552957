package projects_enums

type ProjectRole string

const (
	ProjectRoleOwner       ProjectRole = "OWNER"
	ProjectRoleManager     ProjectRole = "MANAGER"
	ProjectRoleContributor ProjectRole = "CONTRIBUTOR"
	ProjectRoleViewer      ProjectRole = "VIEWER"
)

// IsValid validates the ProjectRole
func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleOwner, ProjectRoleManager, ProjectRoleContributor, ProjectRoleViewer:
		return true
	default:
		return false
	}
}
