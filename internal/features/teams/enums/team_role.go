package teams_enums

type TeamRole string

const (
	TeamRoleAdmin   TeamRole = "ADMIN"
	TeamRoleManager TeamRole = "MANAGER"
	TeamRoleMember  TeamRole = "MEMBER"
	TeamRoleViewer  TeamRole = "VIEWER"
)

// IsValid validates the TeamRole
func (r TeamRole) IsValid() bool {
	switch r {
	case TeamRoleAdmin, TeamRoleManager, TeamRoleMember, TeamRoleViewer:
		return true
	default:
		return false
	}
}
