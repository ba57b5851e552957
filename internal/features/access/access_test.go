package access

import (
	"testing"

	projects_enums "sprintdesk/internal/features/projects/enums"
	projects_models "sprintdesk/internal/features/projects/models"
	teams_enums "sprintdesk/internal/features/teams/enums"
	teams_models "sprintdesk/internal/features/teams/models"

	"github.com/stretchr/testify/assert"
)

func teamMembership(role teams_enums.TeamRole, status teams_enums.MembershipStatus) *teams_models.TeamMembership {
	return &teams_models.TeamMembership{Role: role, Status: status}
}

func projectMembership(role projects_enums.ProjectRole) *projects_models.ProjectMembership {
	return &projects_models.ProjectMembership{Role: role}
}

func Test_CheckTeamPermission_NilMembershipDenied(t *testing.T) {
	assert.False(t, CheckTeamPermission(nil, TeamActionViewTeam))
}

func Test_CheckTeamPermission_UnknownActionFailsClosed(t *testing.T) {
	admin := teamMembership(teams_enums.TeamRoleAdmin, teams_enums.MembershipStatusActive)

	assert.False(t, CheckTeamPermission(admin, TeamAction("LAUNCH_ROCKETS")))
}

func Test_CheckTeamPermission_SuspendedMembershipDenied(t *testing.T) {
	suspended := teamMembership(teams_enums.TeamRoleAdmin, teams_enums.MembershipStatusSuspended)

	assert.False(t, CheckTeamPermission(suspended, TeamActionViewTeam))
}

func Test_CheckTeamPermission_RoleMatrix(t *testing.T) {
	admin := teamMembership(teams_enums.TeamRoleAdmin, teams_enums.MembershipStatusActive)
	manager := teamMembership(teams_enums.TeamRoleManager, teams_enums.MembershipStatusActive)
	member := teamMembership(teams_enums.TeamRoleMember, teams_enums.MembershipStatusActive)
	viewer := teamMembership(teams_enums.TeamRoleViewer, teams_enums.MembershipStatusActive)

	assert.True(t, CheckTeamPermission(admin, TeamActionDeleteTeam))
	assert.False(t, CheckTeamPermission(manager, TeamActionDeleteTeam))

	assert.True(t, CheckTeamPermission(manager, TeamActionInviteMembers))
	assert.False(t, CheckTeamPermission(member, TeamActionInviteMembers))

	assert.True(t, CheckTeamPermission(manager, TeamActionApproveBandwidth))
	assert.False(t, CheckTeamPermission(viewer, TeamActionApproveBandwidth))

	assert.True(t, CheckTeamPermission(viewer, TeamActionViewTeam))
	assert.False(t, CheckTeamPermission(viewer, TeamActionViewReports))
}

func Test_CheckProjectPermission_TeamAdminBypassesProjectChecks(t *testing.T) {
	admin := teamMembership(teams_enums.TeamRoleAdmin, teams_enums.MembershipStatusActive)

	// No project membership row at all.
	assert.True(t, CheckProjectPermission(admin, nil, ProjectActionDeleteProject))
	assert.True(t, CheckProjectPermission(admin, nil, ProjectActionManageSprints))

	// Even a viewer project role does not restrict a team admin.
	viewer := projectMembership(projects_enums.ProjectRoleViewer)
	assert.True(t, CheckProjectPermission(admin, viewer, ProjectActionDeleteProject))
}

func Test_CheckProjectPermission_NoMembershipDenied(t *testing.T) {
	member := teamMembership(teams_enums.TeamRoleMember, teams_enums.MembershipStatusActive)

	assert.False(t, CheckProjectPermission(member, nil, ProjectActionViewProject))
}

func Test_CheckProjectPermission_RoleMatrix(t *testing.T) {
	teamMember := teamMembership(teams_enums.TeamRoleMember, teams_enums.MembershipStatusActive)

	owner := projectMembership(projects_enums.ProjectRoleOwner)
	manager := projectMembership(projects_enums.ProjectRoleManager)
	contributor := projectMembership(projects_enums.ProjectRoleContributor)
	viewer := projectMembership(projects_enums.ProjectRoleViewer)

	assert.True(t, CheckProjectPermission(teamMember, owner, ProjectActionDeleteProject))
	assert.False(t, CheckProjectPermission(teamMember, manager, ProjectActionDeleteProject))

	assert.True(t, CheckProjectPermission(teamMember, manager, ProjectActionManageSprints))
	assert.False(t, CheckProjectPermission(teamMember, contributor, ProjectActionManageSprints))

	assert.True(t, CheckProjectPermission(teamMember, contributor, ProjectActionAssignTasks))
	assert.False(t, CheckProjectPermission(teamMember, viewer, ProjectActionAssignTasks))

	assert.True(t, CheckProjectPermission(teamMember, viewer, ProjectActionViewProject))
}

func Test_CheckProjectPermission_SuspendedTeamAdminDoesNotBypass(t *testing.T) {
	suspendedAdmin := teamMembership(teams_enums.TeamRoleAdmin, teams_enums.MembershipStatusSuspended)

	assert.False(t, CheckProjectPermission(suspendedAdmin, nil, ProjectActionViewProject))
}
