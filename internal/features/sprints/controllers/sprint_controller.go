package sprints_controllers

import (
	"net/http"

	"sprintdesk/internal/apperrors"
	projects_middleware "sprintdesk/internal/features/projects/middleware"
	projects_services "sprintdesk/internal/features/projects/services"
	sprints_dto "sprintdesk/internal/features/sprints/dto"
	sprints_services "sprintdesk/internal/features/sprints/services"
	teams_middleware "sprintdesk/internal/features/teams/middleware"
	users_middleware "sprintdesk/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SprintController struct {
	sprintService   *sprints_services.SprintService
	movementService *sprints_services.MovementService
	projectService  *projects_services.ProjectService
}

func (c *SprintController) RegisterRoutes(teamRoutes *gin.RouterGroup) {
	sprintRoutes := teamRoutes.Group("/projects/:projectId/sprints")
	sprintRoutes.Use(projects_middleware.ResolveProjectContext(c.projectService))

	sprintRoutes.POST("", c.CreateSprint)
	sprintRoutes.GET("", c.GetSprints)
	sprintRoutes.GET("/:sprintId", c.GetSprint)
	sprintRoutes.PUT("/:sprintId", c.UpdateSprint)
	sprintRoutes.POST("/:sprintId/start", c.StartSprint)
	sprintRoutes.POST("/:sprintId/complete", c.CompleteSprint)
	sprintRoutes.POST("/:sprintId/cancel", c.CancelSprint)
	sprintRoutes.DELETE("/:sprintId", c.DeleteSprint)
	sprintRoutes.POST("/:sprintId/tasks", c.AddTasksToSprint)

	backlogRoutes := teamRoutes.Group("/projects/:projectId/backlog")
	backlogRoutes.Use(projects_middleware.ResolveProjectContext(c.projectService))

	backlogRoutes.GET("", c.GetBacklog)
	backlogRoutes.PUT("/tasks/:taskId", c.RemoveTaskFromSprint)
}

// CreateSprint
// @Summary Create a sprint
// @Description Create a sprint in planning state
// @Tags sprints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param request body sprints_dto.CreateSprintRequestDTO true "Sprint data"
// @Success 200 {object} sprints_dto.SprintResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/sprints [post]
func (c *SprintController) CreateSprint(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	var request sprints_dto.CreateSprintRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sprint, err := c.sprintService.CreateSprint(project, teamMembership, &request, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sprint)
}

// GetSprints
// @Summary List project sprints
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Success 200 {object} sprints_dto.ListSprintsResponseDTO
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/sprints [get]
func (c *SprintController) GetSprints(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	response, err := c.sprintService.GetSprints(project, teamMembership, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetSprint
// @Summary Get a sprint
// @Description Get a sprint with its metrics, burndown and derived fields
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param sprintId path string true "Sprint ID"
// @Success 200 {object} sprints_dto.SprintResponseDTO
// @Failure 404 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/sprints/{sprintId} [get]
func (c *SprintController) GetSprint(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	sprintID, err := uuid.Parse(ctx.Param("sprintId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sprint ID format"})
		return
	}

	sprint, err := c.sprintService.GetSprint(project, teamMembership, user, sprintID)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sprint)
}

// UpdateSprint
// @Summary Update a sprint
// @Description Edit a sprint that is not completed or cancelled
// @Tags sprints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param sprintId path string true "Sprint ID"
// @Param request body sprints_dto.UpdateSprintRequestDTO true "Fields to update"
// @Success 200 {object} sprints_dto.SprintResponseDTO
// @Failure 409 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/sprints/{sprintId} [put]
func (c *SprintController) UpdateSprint(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	sprintID, err := uuid.Parse(ctx.Param("sprintId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sprint ID format"})
		return
	}

	var request sprints_dto.UpdateSprintRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sprint, err := c.sprintService.UpdateSprint(project, teamMembership, sprintID, &request, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sprint)
}

// StartSprint
// @Summary Start a sprint
// @Description Activate a planned sprint; only one sprint per project can be active
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param sprintId path string true "Sprint ID"
// @Success 200 {object} sprints_dto.SprintResponseDTO
// @Failure 409 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/sprints/{sprintId}/start [post]
func (c *SprintController) StartSprint(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	sprintID, err := uuid.Parse(ctx.Param("sprintId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sprint ID format"})
		return
	}

	sprint, err := c.sprintService.StartSprint(project, teamMembership, sprintID, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sprint)
}

// CompleteSprint
// @Summary Complete a sprint
// @Description Complete an active sprint, freezing its velocity; optionally move incomplete tasks
// @Tags sprints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param sprintId path string true "Sprint ID"
// @Param request body sprints_dto.CompleteSprintRequestDTO true "Completion options"
// @Success 200 {object} sprints_dto.SprintResponseDTO
// @Failure 409 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/sprints/{sprintId}/complete [post]
func (c *SprintController) CompleteSprint(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	sprintID, err := uuid.Parse(ctx.Param("sprintId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sprint ID format"})
		return
	}

	var request sprints_dto.CompleteSprintRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sprint, err := c.sprintService.CompleteSprint(project, teamMembership, sprintID, &request, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sprint)
}

// CancelSprint
// @Summary Cancel a sprint
// @Description Cancel a sprint and return all its tasks to the backlog
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param sprintId path string true "Sprint ID"
// @Success 200 {object} sprints_dto.SprintResponseDTO
// @Failure 409 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/sprints/{sprintId}/cancel [post]
func (c *SprintController) CancelSprint(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	sprintID, err := uuid.Parse(ctx.Param("sprintId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sprint ID format"})
		return
	}

	sprint, err := c.sprintService.CancelSprint(project, teamMembership, sprintID, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sprint)
}

// DeleteSprint
// @Summary Delete a sprint
// @Description Delete a sprint that is still in planning
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param sprintId path string true "Sprint ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/sprints/{sprintId} [delete]
func (c *SprintController) DeleteSprint(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	sprintID, err := uuid.Parse(ctx.Param("sprintId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sprint ID format"})
		return
	}

	if err := c.sprintService.DeleteSprint(project, teamMembership, sprintID, user); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sprint deleted successfully"})
}

// AddTasksToSprint
// @Summary Add tasks to a sprint
// @Description Move tasks into the sprint; each task is validated independently
// @Tags sprints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param sprintId path string true "Sprint ID"
// @Param request body sprints_dto.MoveTasksRequestDTO true "Task IDs"
// @Success 200 {object} sprints_dto.MoveTasksResponseDTO
// @Failure 409 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/sprints/{sprintId}/tasks [post]
func (c *SprintController) AddTasksToSprint(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	sprintID, err := uuid.Parse(ctx.Param("sprintId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sprint ID format"})
		return
	}

	var request sprints_dto.MoveTasksRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := c.movementService.AddTasksToSprint(project, teamMembership, sprintID, &request, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetBacklog
// @Summary Get the project backlog
// @Description List unscheduled tasks and carry-over from the last completed sprint
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Success 200 {object} sprints_dto.BacklogResponseDTO
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/backlog [get]
func (c *SprintController) GetBacklog(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	response, err := c.movementService.GetBacklog(project, teamMembership, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// RemoveTaskFromSprint
// @Summary Return a task to the backlog
// @Description Detach the task from its sprint; completed sprints keep their tasks
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/backlog/tasks/{taskId} [put]
func (c *SprintController) RemoveTaskFromSprint(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if err := c.movementService.RemoveTaskFromSprint(project, teamMembership, taskID, user); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task returned to backlog"})
}
