package access

import (
	projects_enums "sprintdesk/internal/features/projects/enums"
	teams_enums "sprintdesk/internal/features/teams/enums"
)

// Permission flags are a pure function of role, computed on read. They are
// never persisted, so a role change can never leave stale flags behind.

type TeamPermissionFlags struct {
	CanManageTeam       bool `json:"canManageTeam"`
	CanInviteMembers    bool `json:"canInviteMembers"`
	CanRemoveMembers    bool `json:"canRemoveMembers"`
	CanManageRoles      bool `json:"canManageRoles"`
	CanCreateProjects   bool `json:"canCreateProjects"`
	CanApproveBandwidth bool `json:"canApproveBandwidth"`
	CanViewReports      bool `json:"canViewReports"`
}

type ProjectPermissionFlags struct {
	CanEditProject   bool `json:"canEditProject"`
	CanDeleteProject bool `json:"canDeleteProject"`
	CanManageSprints bool `json:"canManageSprints"`
	CanManageMembers bool `json:"canManageMembers"`
	CanCreateTasks   bool `json:"canCreateTasks"`
	CanAssignTasks   bool `json:"canAssignTasks"`
}

func PermissionsForTeamRole(role teams_enums.TeamRole) TeamPermissionFlags {
	switch role {
	case teams_enums.TeamRoleAdmin:
		return TeamPermissionFlags{
			CanManageTeam:       true,
			CanInviteMembers:    true,
			CanRemoveMembers:    true,
			CanManageRoles:      true,
			CanCreateProjects:   true,
			CanApproveBandwidth: true,
			CanViewReports:      true,
		}
	case teams_enums.TeamRoleManager:
		return TeamPermissionFlags{
			CanInviteMembers:    true,
			CanCreateProjects:   true,
			CanApproveBandwidth: true,
			CanViewReports:      true,
		}
	case teams_enums.TeamRoleMember:
		return TeamPermissionFlags{
			CanViewReports: true,
		}
	default:
		return TeamPermissionFlags{}
	}
}

func PermissionsForProjectRole(role projects_enums.ProjectRole) ProjectPermissionFlags {
	switch role {
	case projects_enums.ProjectRoleOwner:
		return ProjectPermissionFlags{
			CanEditProject:   true,
			CanDeleteProject: true,
			CanManageSprints: true,
			CanManageMembers: true,
			CanCreateTasks:   true,
			CanAssignTasks:   true,
		}
	case projects_enums.ProjectRoleManager:
		return ProjectPermissionFlags{
			CanEditProject:   true,
			CanManageSprints: true,
			CanManageMembers: true,
			CanCreateTasks:   true,
			CanAssignTasks:   true,
		}
	case projects_enums.ProjectRoleContributor:
		return ProjectPermissionFlags{
			CanCreateTasks: true,
			CanAssignTasks: true,
		}
	default:
		return ProjectPermissionFlags{}
	}
}
