package access

import (
	"testing"

	projects_enums "sprintdesk/internal/features/projects/enums"
	teams_enums "sprintdesk/internal/features/teams/enums"

	"github.com/stretchr/testify/assert"
)

func Test_PermissionsForTeamRole_Deterministic(t *testing.T) {
	first := PermissionsForTeamRole(teams_enums.TeamRoleAdmin)
	second := PermissionsForTeamRole(teams_enums.TeamRoleAdmin)

	assert.Equal(t, first, second)
}

func Test_PermissionsForTeamRole_RoundTripRestoresFlags(t *testing.T) {
	adminFlags := PermissionsForTeamRole(teams_enums.TeamRoleAdmin)

	// Demote and re-promote: the derived flags must be restored exactly.
	memberFlags := PermissionsForTeamRole(teams_enums.TeamRoleMember)
	assert.NotEqual(t, adminFlags, memberFlags)

	restored := PermissionsForTeamRole(teams_enums.TeamRoleAdmin)
	assert.Equal(t, adminFlags, restored)
}

func Test_PermissionsForTeamRole_FlagSets(t *testing.T) {
	admin := PermissionsForTeamRole(teams_enums.TeamRoleAdmin)
	assert.True(t, admin.CanManageTeam)
	assert.True(t, admin.CanManageRoles)
	assert.True(t, admin.CanApproveBandwidth)

	manager := PermissionsForTeamRole(teams_enums.TeamRoleManager)
	assert.False(t, manager.CanManageTeam)
	assert.False(t, manager.CanManageRoles)
	assert.True(t, manager.CanInviteMembers)
	assert.True(t, manager.CanApproveBandwidth)

	viewer := PermissionsForTeamRole(teams_enums.TeamRoleViewer)
	assert.Equal(t, TeamPermissionFlags{}, viewer)
}

func Test_PermissionsForProjectRole_FlagSets(t *testing.T) {
	owner := PermissionsForProjectRole(projects_enums.ProjectRoleOwner)
	assert.True(t, owner.CanDeleteProject)
	assert.True(t, owner.CanManageSprints)

	manager := PermissionsForProjectRole(projects_enums.ProjectRoleManager)
	assert.False(t, manager.CanDeleteProject)
	assert.True(t, manager.CanManageSprints)

	contributor := PermissionsForProjectRole(projects_enums.ProjectRoleContributor)
	assert.Equal(t, ProjectPermissionFlags{CanCreateTasks: true, CanAssignTasks: true}, contributor)

	viewer := PermissionsForProjectRole(projects_enums.ProjectRoleViewer)
	assert.Equal(t, ProjectPermissionFlags{}, viewer)
}

func Test_PermissionsForUnknownRole_Empty(t *testing.T) {
	assert.Equal(t, TeamPermissionFlags{}, PermissionsForTeamRole(teams_enums.TeamRole("INTERN")))
	assert.Equal(t, ProjectPermissionFlags{}, PermissionsForProjectRole(projects_enums.ProjectRole("GUEST")))
}
