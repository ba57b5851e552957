package teams_controllers

import (
	"net/http"
	"testing"

	teams_dto "sprintdesk/internal/features/teams/dto"
	teams_enums "sprintdesk/internal/features/teams/enums"
	users_dto "sprintdesk/internal/features/users/dto"
	users_enums "sprintdesk/internal/features/users/enums"
	users_middleware "sprintdesk/internal/features/users/middleware"
	users_services "sprintdesk/internal/features/users/services"
	users_testing "sprintdesk/internal/features/users/testing"
	test_utils "sprintdesk/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_TeamLifecycle_CreatorBecomesAdmin(t *testing.T) {
	router := createTeamTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)

	team := createTestTeam(t, router, owner, "Platform")

	assert.Equal(t, "Platform", team.Name)
	assert.Equal(t, owner.UserID, team.OwnerID)
	assert.True(t, team.IsActive)

	var listResponse teams_dto.ListTeamsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/teams",
		"Bearer "+owner.Token,
		http.StatusOK,
		&listResponse,
	)

	found := false
	for _, item := range listResponse.Teams {
		if item.ID == team.ID {
			found = true
			require.NotNil(t, item.UserRole)
			assert.Equal(t, teams_enums.TeamRoleAdmin, *item.UserRole)
		}
	}
	assert.True(t, found, "Created team should appear in the owner's team list")

	var membersResponse teams_dto.GetMembersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/members",
		"Bearer "+owner.Token,
		http.StatusOK,
		&membersResponse,
	)

	require.Len(t, membersResponse.Members, 1)
	creator := membersResponse.Members[0]
	assert.Equal(t, owner.UserID, creator.UserID)
	assert.Equal(t, teams_enums.TeamRoleAdmin, creator.Role)
	assert.True(t, creator.Permissions.CanManageTeam)
	assert.True(t, creator.Permissions.CanManageRoles)
}

func Test_AddMember_AndChangeRole(t *testing.T) {
	router := createTeamTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	invitee := users_testing.CreateTestUser(users_enums.UserRoleMember)

	team := createTestTeam(t, router, owner, "Delivery")

	addRequest := teams_dto.AddMemberRequestDTO{
		Email: invitee.Email,
		Role:  teams_enums.TeamRoleMember,
	}
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/members",
		"Bearer "+owner.Token,
		addRequest,
		http.StatusOK,
	)

	// Adding the same user again conflicts
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/members",
		"Bearer "+owner.Token,
		addRequest,
		http.StatusConflict,
	)

	roleRequest := teams_dto.ChangeMemberRoleRequestDTO{Role: teams_enums.TeamRoleManager}
	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/members/"+invitee.UserID.String()+"/role",
		"Bearer "+owner.Token,
		roleRequest,
		http.StatusOK,
	)

	var membersResponse teams_dto.GetMembersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/members",
		"Bearer "+owner.Token,
		http.StatusOK,
		&membersResponse,
	)

	for _, member := range membersResponse.Members {
		if member.UserID == invitee.UserID {
			assert.Equal(t, teams_enums.TeamRoleManager, member.Role)
			assert.True(t, member.Permissions.CanApproveBandwidth)
			assert.False(t, member.Permissions.CanManageTeam)
		}
	}
}

func Test_ChangeMemberRole_LastAdminProtected(t *testing.T) {
	router := createTeamTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)

	team := createTestTeam(t, router, owner, "Solo")

	roleRequest := teams_dto.ChangeMemberRoleRequestDTO{Role: teams_enums.TeamRoleMember}
	resp := test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/members/"+owner.UserID.String()+"/role",
		"Bearer "+owner.Token,
		roleRequest,
		http.StatusConflict,
	)

	assert.Contains(t, string(resp.Body), "last team admin")
}

func Test_RemoveMember_LastAdminProtected(t *testing.T) {
	router := createTeamTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)

	team := createTestTeam(t, router, owner, "Tiny")

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/members/"+owner.UserID.String(),
		"Bearer "+owner.Token,
		http.StatusConflict,
	)
}

func Test_UpdateTeam_AsViewer_ReturnsForbidden(t *testing.T) {
	router := createTeamTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	viewer := users_testing.CreateTestUser(users_enums.UserRoleMember)

	team := createTestTeam(t, router, owner, "Gated")

	addRequest := teams_dto.AddMemberRequestDTO{
		Email: viewer.Email,
		Role:  teams_enums.TeamRoleViewer,
	}
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/members",
		"Bearer "+owner.Token,
		addRequest,
		http.StatusOK,
	)

	updateRequest := teams_dto.UpdateTeamRequestDTO{Name: "Renamed"}
	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String(),
		"Bearer "+viewer.Token,
		updateRequest,
		http.StatusForbidden,
	)
}

func Test_GetTeam_AsNonMember_ReturnsForbidden(t *testing.T) {
	router := createTeamTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	outsider := users_testing.CreateTestUser(users_enums.UserRoleMember)

	team := createTestTeam(t, router, owner, "Private")

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String(),
		"Bearer "+outsider.Token,
		http.StatusForbidden,
	)
}

func Test_AddMember_UnknownEmail_ReturnsNotFound(t *testing.T) {
	router := createTeamTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)

	team := createTestTeam(t, router, owner, "Lookup")

	addRequest := teams_dto.AddMemberRequestDTO{
		Email: "nobody@example.com",
		Role:  teams_enums.TeamRoleMember,
	}
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/members",
		"Bearer "+owner.Token,
		addRequest,
		http.StatusNotFound,
	)
}

func createTestTeam(
	t *testing.T,
	router *gin.Engine,
	owner *users_dto.SignInResponseDTO,
	name string,
) *teams_dto.TeamResponseDTO {
	t.Helper()

	createRequest := teams_dto.CreateTeamRequestDTO{
		Name:        name,
		Description: "test team",
	}

	var response teams_dto.TeamResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/teams",
		"Bearer "+owner.Token,
		createRequest,
		http.StatusOK,
		&response,
	)

	return &response
}

func createTeamTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")

	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	GetTeamController().RegisterRoutes(protected.(*gin.RouterGroup))
	GetMembershipController().RegisterRoutes(protected.(*gin.RouterGroup))

	return router
}
