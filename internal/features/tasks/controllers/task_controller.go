package tasks_controllers

import (
	"net/http"

	"sprintdesk/internal/apperrors"
	projects_middleware "sprintdesk/internal/features/projects/middleware"
	projects_services "sprintdesk/internal/features/projects/services"
	tasks_dto "sprintdesk/internal/features/tasks/dto"
	tasks_services "sprintdesk/internal/features/tasks/services"
	teams_middleware "sprintdesk/internal/features/teams/middleware"
	users_middleware "sprintdesk/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskController struct {
	taskService    *tasks_services.TaskService
	projectService *projects_services.ProjectService
}

func (c *TaskController) RegisterRoutes(teamRoutes *gin.RouterGroup) {
	taskRoutes := teamRoutes.Group("/projects/:projectId/tasks")
	taskRoutes.Use(projects_middleware.ResolveProjectContext(c.projectService))

	taskRoutes.POST("", c.CreateTask)
	taskRoutes.GET("", c.GetTasks)
	taskRoutes.GET("/:taskId", c.GetTask)
	taskRoutes.PUT("/:taskId", c.UpdateTask)
	taskRoutes.PUT("/:taskId/assignee", c.AssignTask)
	taskRoutes.DELETE("/:taskId", c.DeleteTask)
}

// CreateTask
// @Summary Create a task
// @Description Create a task in the project backlog
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param request body tasks_dto.CreateTaskRequestDTO true "Task data"
// @Success 200 {object} tasks_models.Task
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	var request tasks_dto.CreateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := c.taskService.CreateTask(project, teamMembership, &request, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// GetTasks
// @Summary List project tasks
// @Description List tasks filtered by status, assignee, sprint or backlog
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param status query string false "Task status"
// @Param assignedToId query string false "Assignee user ID"
// @Param sprintId query string false "Sprint ID"
// @Param backlogOnly query bool false "Only backlog tasks"
// @Success 200 {object} tasks_dto.ListTasksResponseDTO
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/tasks [get]
func (c *TaskController) GetTasks(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	var request tasks_dto.ListTasksRequestDTO
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := c.taskService.GetTasks(project, teamMembership, user, &request)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetTask
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} tasks_models.Task
// @Failure 404 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/tasks/{taskId} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := c.taskService.GetTask(project, teamMembership, user, taskID)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// UpdateTask
// @Summary Update a task
// @Description Update task fields; status changes maintain completedAt
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param taskId path string true "Task ID"
// @Param request body tasks_dto.UpdateTaskRequestDTO true "Fields to update"
// @Success 200 {object} tasks_models.Task
// @Failure 400 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/tasks/{taskId} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var request tasks_dto.UpdateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := c.taskService.UpdateTask(project, teamMembership, taskID, &request, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// AssignTask
// @Summary Assign a task
// @Description Set or clear the task assignee; the assignee is notified
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param taskId path string true "Task ID"
// @Param request body tasks_dto.AssignTaskRequestDTO true "Assignee"
// @Success 200 {object} tasks_models.Task
// @Failure 400 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/tasks/{taskId}/assignee [put]
func (c *TaskController) AssignTask(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var request tasks_dto.AssignTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := c.taskService.AssignTask(project, teamMembership, taskID, request.AssigneeID, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// DeleteTask
// @Summary Delete a task
// @Description Delete the task; child tasks are detached, not deleted
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/tasks/{taskId} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if err := c.taskService.DeleteTask(project, teamMembership, taskID, user); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
