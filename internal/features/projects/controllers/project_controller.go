package projects_controllers

import (
	"net/http"

	"sprintdesk/internal/apperrors"
	"sprintdesk/internal/features/access"
	projects_dto "sprintdesk/internal/features/projects/dto"
	projects_middleware "sprintdesk/internal/features/projects/middleware"
	projects_services "sprintdesk/internal/features/projects/services"
	teams_middleware "sprintdesk/internal/features/teams/middleware"
	users_middleware "sprintdesk/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	projectService *projects_services.ProjectService
}

func (c *ProjectController) RegisterRoutes(teamRoutes *gin.RouterGroup) {
	teamRoutes.POST("/projects", c.CreateProject)
	teamRoutes.GET("/projects", c.GetProjects)

	projectRoutes := teamRoutes.Group("/projects/:projectId")
	projectRoutes.Use(projects_middleware.ResolveProjectContext(c.projectService))

	projectRoutes.GET(
		"",
		projects_middleware.RequireProjectPermission(c.projectService, access.ProjectActionViewProject),
		c.GetProject,
	)
	projectRoutes.PUT("", c.UpdateProject)
	projectRoutes.DELETE("", c.DeleteProject)
}

// CreateProject
// @Summary Create a new project
// @Description Create a project in the team; the creator becomes its owner
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param request body projects_dto.CreateProjectRequestDTO true "Project creation data"
// @Success 200 {object} projects_dto.ProjectResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	team, _ := teams_middleware.GetTeamFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)

	var request projects_dto.CreateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := c.projectService.CreateProject(team, teamMembership, &request, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetProjects
// @Summary List team projects
// @Description List the team's projects visible to the current user
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Success 200 {object} projects_dto.ListProjectsResponseDTO
// @Failure 401 {object} map[string]string
// @Router /teams/{teamId}/projects [get]
func (c *ProjectController) GetProjects(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	team, _ := teams_middleware.GetTeamFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)

	response, err := c.projectService.GetTeamProjects(team, teamMembership, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetProject
// @Summary Get a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Success 200 {object} projects_models.Project
// @Failure 404 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	ctx.JSON(http.StatusOK, project)
}

// UpdateProject
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param request body projects_dto.UpdateProjectRequestDTO true "Fields to update"
// @Success 200 {object} projects_models.Project
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId} [put]
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	var request projects_dto.UpdateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := c.projectService.UpdateProject(project, &request, teamMembership, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// DeleteProject
// @Summary Delete a project
// @Description Delete the project and all its sprints, tasks and memberships
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	if err := c.projectService.DeleteProject(project, teamMembership, user); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
