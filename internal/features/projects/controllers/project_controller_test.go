package projects_controllers

import (
	"net/http"
	"testing"

	projects_dto "sprintdesk/internal/features/projects/dto"
	projects_enums "sprintdesk/internal/features/projects/enums"
	teams_controllers "sprintdesk/internal/features/teams/controllers"
	teams_dto "sprintdesk/internal/features/teams/dto"
	teams_enums "sprintdesk/internal/features/teams/enums"
	teams_middleware "sprintdesk/internal/features/teams/middleware"
	teams_services "sprintdesk/internal/features/teams/services"
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

func Test_CreateProject_CreatorBecomesOwner(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)

	team := createTeamForProjects(t, router, owner, "Owners")
	project := createTestProject(t, router, team, owner, "Billing")

	assert.Equal(t, team.ID, project.TeamID)
	assert.Equal(t, owner.UserID, project.CreatedBy)
	assert.Equal(t, projects_enums.ProjectStatusActive, project.Status)

	var membersResponse projects_dto.GetMembersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/projects/"+project.ID.String()+"/members",
		"Bearer "+owner.Token,
		http.StatusOK,
		&membersResponse,
	)

	require.Len(t, membersResponse.Members, 1)
	assert.Equal(t, owner.UserID, membersResponse.Members[0].UserID)
	assert.Equal(t, projects_enums.ProjectRoleOwner, membersResponse.Members[0].Role)
	assert.True(t, membersResponse.Members[0].Permissions.CanDeleteProject)
}

func Test_DeleteProject_ContributorForbidden_OwnerSucceeds(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	contributor := users_testing.CreateTestUser(users_enums.UserRoleMember)

	team := createTeamForProjects(t, router, owner, "Delivery")
	project := createTestProject(t, router, team, owner, "Checkout")

	addTeamMember(t, router, team, owner, contributor, teams_enums.TeamRoleMember)

	addRequest := projects_dto.AddMemberRequestDTO{
		Email:    contributor.Email,
		Role:     projects_enums.ProjectRoleContributor,
		Workload: 50,
	}
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/projects/"+project.ID.String()+"/members",
		"Bearer "+owner.Token,
		addRequest,
		http.StatusOK,
	)

	projectURL := "/api/v1/teams/" + team.ID.String() + "/projects/" + project.ID.String()

	test_utils.MakeDeleteRequest(t, router, projectURL, "Bearer "+contributor.Token, http.StatusForbidden)
	test_utils.MakeDeleteRequest(t, router, projectURL, "Bearer "+owner.Token, http.StatusOK)
}

func Test_DeleteProject_TeamAdminWithoutMembershipSucceeds(t *testing.T) {
	router := createProjectTestRouter()
	admin := users_testing.CreateTestUser(users_enums.UserRoleMember)
	manager := users_testing.CreateTestUser(users_enums.UserRoleMember)

	team := createTeamForProjects(t, router, admin, "Oversight")
	addTeamMember(t, router, team, admin, manager, teams_enums.TeamRoleManager)

	// The team manager creates the project, so the admin holds no
	// project membership row at all.
	project := createTestProject(t, router, team, manager, "Internal")

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/projects/"+project.ID.String(),
		"Bearer "+admin.Token,
		http.StatusOK,
	)
}

func Test_ChangeMemberRole_LastOwnerProtected(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)

	team := createTeamForProjects(t, router, owner, "Sole")
	project := createTestProject(t, router, team, owner, "Core")

	roleRequest := projects_dto.ChangeMemberRoleRequestDTO{Role: projects_enums.ProjectRoleManager}
	resp := test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/projects/"+project.ID.String()+
			"/members/"+owner.UserID.String()+"/role",
		"Bearer "+owner.Token,
		roleRequest,
		http.StatusConflict,
	)

	assert.Contains(t, string(resp.Body), "owner")
}

func Test_CreateProject_AsViewer_ReturnsForbidden(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	viewer := users_testing.CreateTestUser(users_enums.UserRoleMember)

	team := createTeamForProjects(t, router, owner, "Readonly")
	addTeamMember(t, router, team, owner, viewer, teams_enums.TeamRoleViewer)

	createRequest := projects_dto.CreateProjectRequestDTO{Name: "Denied"}
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/projects",
		"Bearer "+viewer.Token,
		createRequest,
		http.StatusForbidden,
	)
}

func Test_TeamLead_ManagesMembersWithoutMembershipRow(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	lead := users_testing.CreateTestUser(users_enums.UserRoleMember)
	target := users_testing.CreateTestUser(users_enums.UserRoleMember)

	team := createTeamForProjects(t, router, owner, "Led")
	addTeamMember(t, router, team, owner, lead, teams_enums.TeamRoleMember)
	addTeamMember(t, router, team, owner, target, teams_enums.TeamRoleMember)

	createRequest := projects_dto.CreateProjectRequestDTO{
		Name:       "Steered",
		TeamLeadID: &lead.UserID,
	}

	var project projects_dto.ProjectResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/projects",
		"Bearer "+owner.Token,
		createRequest,
		http.StatusOK,
		&project,
	)

	membersURL := "/api/v1/teams/" + team.ID.String() + "/projects/" + project.ID.String() + "/members"

	// The lead holds no project membership row, only the lead designation.
	addRequest := projects_dto.AddMemberRequestDTO{
		Email:    target.Email,
		Role:     projects_enums.ProjectRoleContributor,
		Workload: 40,
	}
	test_utils.MakePostRequest(t, router, membersURL, "Bearer "+lead.Token, addRequest, http.StatusOK)

	var membersResponse projects_dto.GetMembersResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		membersURL,
		"Bearer "+owner.Token,
		http.StatusOK,
		&membersResponse,
	)

	for _, member := range membersResponse.Members {
		assert.NotEqual(t, lead.UserID, member.UserID, "Lead should not gain a membership row")
	}

	test_utils.MakeDeleteRequest(
		t,
		router,
		membersURL+"/"+target.UserID.String(),
		"Bearer "+lead.Token,
		http.StatusOK,
	)

	// The designation does not extend past member management.
	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/projects/"+project.ID.String(),
		"Bearer "+lead.Token,
		http.StatusForbidden,
	)
}

func Test_NonLeadNonMember_CannotManageMembers(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	bystander := users_testing.CreateTestUser(users_enums.UserRoleMember)
	target := users_testing.CreateTestUser(users_enums.UserRoleMember)

	team := createTeamForProjects(t, router, owner, "Fenced")
	addTeamMember(t, router, team, owner, bystander, teams_enums.TeamRoleMember)
	addTeamMember(t, router, team, owner, target, teams_enums.TeamRoleMember)

	project := createTestProject(t, router, team, owner, "Guarded")

	addRequest := projects_dto.AddMemberRequestDTO{
		Email:    target.Email,
		Role:     projects_enums.ProjectRoleContributor,
		Workload: 40,
	}
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/projects/"+project.ID.String()+"/members",
		"Bearer "+bystander.Token,
		addRequest,
		http.StatusForbidden,
	)
}

func createTeamForProjects(
	t *testing.T,
	router *gin.Engine,
	owner *users_dto.SignInResponseDTO,
	name string,
) *teams_dto.TeamResponseDTO {
	t.Helper()

	createRequest := teams_dto.CreateTeamRequestDTO{Name: name}

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

func addTeamMember(
	t *testing.T,
	router *gin.Engine,
	team *teams_dto.TeamResponseDTO,
	admin *users_dto.SignInResponseDTO,
	user *users_dto.SignInResponseDTO,
	role teams_enums.TeamRole,
) {
	t.Helper()

	addRequest := teams_dto.AddMemberRequestDTO{
		Email: user.Email,
		Role:  role,
	}
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/members",
		"Bearer "+admin.Token,
		addRequest,
		http.StatusOK,
	)
}

func createTestProject(
	t *testing.T,
	router *gin.Engine,
	team *teams_dto.TeamResponseDTO,
	creator *users_dto.SignInResponseDTO,
	name string,
) *projects_dto.ProjectResponseDTO {
	t.Helper()

	createRequest := projects_dto.CreateProjectRequestDTO{
		Name:        name,
		Description: "test project",
	}

	var response projects_dto.ProjectResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/teams/"+team.ID.String()+"/projects",
		"Bearer "+creator.Token,
		createRequest,
		http.StatusOK,
		&response,
	)

	return &response
}

func createProjectTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")

	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	protectedGroup := protected.(*gin.RouterGroup)

	teams_controllers.GetTeamController().RegisterRoutes(protectedGroup)
	teams_controllers.GetMembershipController().RegisterRoutes(protectedGroup)

	teamRoutes := protectedGroup.Group("/teams/:teamId")
	teamRoutes.Use(teams_middleware.ResolveTeamContext(teams_services.GetTeamService()))

	GetProjectController().RegisterRoutes(teamRoutes)
	GetMembershipController().RegisterRoutes(teamRoutes)

	return router
}
