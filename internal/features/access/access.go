package access

import (
	projects_enums "sprintdesk/internal/features/projects/enums"
	projects_models "sprintdesk/internal/features/projects/models"
	teams_enums "sprintdesk/internal/features/teams/enums"
	teams_models "sprintdesk/internal/features/teams/models"
)

// teamPermissions maps each team action to the roles allowed to perform it.
// Unknown actions resolve to an empty list, so the check fails closed.
var teamPermissions = map[TeamAction][]teams_enums.TeamRole{
	TeamActionManageTeam:       {teams_enums.TeamRoleAdmin},
	TeamActionDeleteTeam:       {teams_enums.TeamRoleAdmin},
	TeamActionManageRoles:      {teams_enums.TeamRoleAdmin},
	TeamActionRemoveMembers:    {teams_enums.TeamRoleAdmin},
	TeamActionInviteMembers:    {teams_enums.TeamRoleAdmin, teams_enums.TeamRoleManager},
	TeamActionCreateProject:    {teams_enums.TeamRoleAdmin, teams_enums.TeamRoleManager},
	TeamActionApproveBandwidth: {teams_enums.TeamRoleAdmin, teams_enums.TeamRoleManager},
	TeamActionViewAnalytics: {
		teams_enums.TeamRoleAdmin,
		teams_enums.TeamRoleManager,
		teams_enums.TeamRoleMember,
		teams_enums.TeamRoleViewer,
	},
	TeamActionViewReports: {
		teams_enums.TeamRoleAdmin,
		teams_enums.TeamRoleManager,
		teams_enums.TeamRoleMember,
	},
	TeamActionViewTeam: {
		teams_enums.TeamRoleAdmin,
		teams_enums.TeamRoleManager,
		teams_enums.TeamRoleMember,
		teams_enums.TeamRoleViewer,
	},
}

var projectPermissions = map[ProjectAction][]projects_enums.ProjectRole{
	ProjectActionDeleteProject: {projects_enums.ProjectRoleOwner},
	ProjectActionEditProject:   {projects_enums.ProjectRoleOwner, projects_enums.ProjectRoleManager},
	ProjectActionManageSprints: {projects_enums.ProjectRoleOwner, projects_enums.ProjectRoleManager},
	ProjectActionInviteMembers: {projects_enums.ProjectRoleOwner, projects_enums.ProjectRoleManager},
	ProjectActionRemoveMembers: {projects_enums.ProjectRoleOwner, projects_enums.ProjectRoleManager},
	ProjectActionDeleteTasks:   {projects_enums.ProjectRoleOwner, projects_enums.ProjectRoleManager},
	ProjectActionCreateTasks: {
		projects_enums.ProjectRoleOwner,
		projects_enums.ProjectRoleManager,
		projects_enums.ProjectRoleContributor,
	},
	ProjectActionEditTasks: {
		projects_enums.ProjectRoleOwner,
		projects_enums.ProjectRoleManager,
		projects_enums.ProjectRoleContributor,
	},
	ProjectActionAssignTasks: {
		projects_enums.ProjectRoleOwner,
		projects_enums.ProjectRoleManager,
		projects_enums.ProjectRoleContributor,
	},
	ProjectActionViewProject: {
		projects_enums.ProjectRoleOwner,
		projects_enums.ProjectRoleManager,
		projects_enums.ProjectRoleContributor,
		projects_enums.ProjectRoleViewer,
	},
}

// CheckTeamPermission reports whether the membership allows the team action.
// A missing or non-active membership is denied, as is an unknown action.
func CheckTeamPermission(membership *teams_models.TeamMembership, action TeamAction) bool {
	if membership == nil || !membership.IsActiveMember() {
		return false
	}

	for _, role := range teamPermissions[action] {
		if membership.Role == role {
			return true
		}
	}

	return false
}

// CheckProjectPermission reports whether the pair of memberships allows the
// project action. Team admins bypass project-level checks entirely.
func CheckProjectPermission(
	teamMembership *teams_models.TeamMembership,
	projectMembership *projects_models.ProjectMembership,
	action ProjectAction,
) bool {
	if teamMembership != nil && teamMembership.IsActiveMember() &&
		teamMembership.Role == teams_enums.TeamRoleAdmin {
		return true
	}

	if projectMembership == nil {
		return false
	}

	for _, role := range projectPermissions[action] {
		if projectMembership.Role == role {
			return true
		}
	}

	return false
}
