package analytics

import (
	"testing"

	teams_enums "sprintdesk/internal/features/teams/enums"
	teams_models "sprintdesk/internal/features/teams/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func activeMember(userID uuid.UUID, managerID *uuid.UUID) *teams_models.TeamMembership {
	return &teams_models.TeamMembership{
		ID:                 uuid.New(),
		TeamID:             uuid.New(),
		UserID:             userID,
		Role:               teams_enums.TeamRoleMember,
		Status:             teams_enums.MembershipStatusActive,
		ReportingManagerID: managerID,
	}
}

func Test_VisibleUserIDs_AdminSeesAllActiveMembers(t *testing.T) {
	admin := uuid.New()
	other1 := uuid.New()
	other2 := uuid.New()

	members := []*teams_models.TeamMembership{
		activeMember(admin, nil),
		activeMember(other1, nil),
		activeMember(other2, nil),
	}

	visible := VisibleUserIDs(admin, teams_enums.TeamRoleAdmin, members)

	assert.ElementsMatch(t, []uuid.UUID{admin, other1, other2}, visible)
}

func Test_VisibleUserIDs_ManagerSeesAllActiveMembers(t *testing.T) {
	manager := uuid.New()
	other := uuid.New()

	members := []*teams_models.TeamMembership{
		activeMember(manager, nil),
		activeMember(other, nil),
	}

	visible := VisibleUserIDs(manager, teams_enums.TeamRoleManager, members)

	assert.ElementsMatch(t, []uuid.UUID{manager, other}, visible)
}

func Test_VisibleUserIDs_MemberSeesSelfAndDirectReports(t *testing.T) {
	requester := uuid.New()
	directReport := uuid.New()
	unrelated := uuid.New()

	members := []*teams_models.TeamMembership{
		activeMember(requester, nil),
		activeMember(directReport, &requester),
		activeMember(unrelated, nil),
	}

	visible := VisibleUserIDs(requester, teams_enums.TeamRoleMember, members)

	assert.ElementsMatch(t, []uuid.UUID{requester, directReport}, visible)
}

func Test_VisibleUserIDs_ScopeIsNotTransitive(t *testing.T) {
	requester := uuid.New()
	directReport := uuid.New()
	reportOfReport := uuid.New()

	members := []*teams_models.TeamMembership{
		activeMember(requester, nil),
		activeMember(directReport, &requester),
		activeMember(reportOfReport, &directReport),
	}

	visible := VisibleUserIDs(requester, teams_enums.TeamRoleMember, members)

	assert.ElementsMatch(t, []uuid.UUID{requester, directReport}, visible)
	assert.NotContains(t, visible, reportOfReport)
}

func Test_VisibleUserIDs_MemberWithNoReportsSeesOnlySelf(t *testing.T) {
	requester := uuid.New()

	members := []*teams_models.TeamMembership{
		activeMember(requester, nil),
		activeMember(uuid.New(), nil),
	}

	visible := VisibleUserIDs(requester, teams_enums.TeamRoleViewer, members)

	assert.Equal(t, []uuid.UUID{requester}, visible)
}

func Test_VisibleUserIDs_SelfIncludedOnce(t *testing.T) {
	requester := uuid.New()

	// A self-referencing reporting manager must not duplicate the requester.
	members := []*teams_models.TeamMembership{
		activeMember(requester, &requester),
	}

	visible := VisibleUserIDs(requester, teams_enums.TeamRoleMember, members)

	assert.Equal(t, []uuid.UUID{requester}, visible)
}
