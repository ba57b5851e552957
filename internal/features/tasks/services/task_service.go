package tasks_services

import (
	"fmt"
	"log/slog"
	"time"

	"sprintdesk/internal/apperrors"
	"sprintdesk/internal/features/access"
	notifications "sprintdesk/internal/features/notifications"
	projects_models "sprintdesk/internal/features/projects/models"
	projects_services "sprintdesk/internal/features/projects/services"
	tasks_dto "sprintdesk/internal/features/tasks/dto"
	tasks_enums "sprintdesk/internal/features/tasks/enums"
	tasks_interfaces "sprintdesk/internal/features/tasks/interfaces"
	tasks_models "sprintdesk/internal/features/tasks/models"
	tasks_repositories "sprintdesk/internal/features/tasks/repositories"
	teams_models "sprintdesk/internal/features/teams/models"
	teams_services "sprintdesk/internal/features/teams/services"
	users_models "sprintdesk/internal/features/users/models"

	"github.com/google/uuid"
)

type TaskService struct {
	taskRepository      *tasks_repositories.TaskRepository
	projectService      *projects_services.ProjectService
	teamService         *teams_services.TeamService
	notificationService *notifications.NotificationService
	metricsRefresher    tasks_interfaces.SprintMetricsRefresher
	logger              *slog.Logger
}

// SetMetricsRefresher breaks the package cycle with the sprint feature; the
// sprint service registers itself here during startup.
func (s *TaskService) SetMetricsRefresher(refresher tasks_interfaces.SprintMetricsRefresher) {
	s.metricsRefresher = refresher
}

// CreateTask creates the task in the project backlog. Tasks join sprints
// only through the sprint task movement endpoints.
func (s *TaskService) CreateTask(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	request *tasks_dto.CreateTaskRequestDTO,
	creator *users_models.User,
) (*tasks_models.Task, error) {
	err := s.projectService.RequirePermission(project, teamMembership, creator.ID, access.ProjectActionCreateTasks)
	if err != nil {
		return nil, err
	}

	if !request.WorkItemType.IsValid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid work item type: %s", request.WorkItemType))
	}

	priority := request.Priority
	if priority == "" {
		priority = tasks_enums.TaskPriorityMedium
	}

	if !priority.IsValid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid task priority: %s", priority))
	}

	task := &tasks_models.Task{
		ID:           uuid.New(),
		TeamID:       project.TeamID,
		ProjectID:    project.ID,
		Title:        request.Title,
		Description:  request.Description,
		WorkItemType: request.WorkItemType,
		Status:       tasks_enums.TaskStatusTodo,
		Priority:     priority,
		StoryPoints:  request.StoryPoints,
		DueDate:      request.DueDate,
		CreatedBy:    creator.ID,
	}

	if err := s.validateParent(task, request.ParentTaskID); err != nil {
		return nil, err
	}

	if request.AssignedToID != nil {
		if err := s.validateAssignee(project, *request.AssignedToID); err != nil {
			return nil, err
		}

		task.AssignedToID = request.AssignedToID
	}

	if err := s.taskRepository.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if task.AssignedToID != nil {
		s.notifyAssignment(task, creator.ID)
	}

	return task, nil
}

func (s *TaskService) GetTasks(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	user *users_models.User,
	request *tasks_dto.ListTasksRequestDTO,
) (*tasks_dto.ListTasksResponseDTO, error) {
	err := s.projectService.RequirePermission(project, teamMembership, user.ID, access.ProjectActionViewProject)
	if err != nil {
		return nil, err
	}

	filter := &tasks_repositories.TaskFilter{
		Status:       request.Status,
		AssignedToID: request.AssignedToID,
		SprintID:     request.SprintID,
		BacklogOnly:  request.BacklogOnly,
	}

	tasks, err := s.taskRepository.GetTasksByProject(project.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &tasks_dto.ListTasksResponseDTO{Tasks: tasks}, nil
}

func (s *TaskService) GetTask(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	user *users_models.User,
	taskID uuid.UUID,
) (*tasks_models.Task, error) {
	err := s.projectService.RequirePermission(project, teamMembership, user.ID, access.ProjectActionViewProject)
	if err != nil {
		return nil, err
	}

	return s.getProjectTask(project, taskID)
}

// UpdateTask applies the requested field changes. A status change keeps
// completedAt in lockstep, and any change to a task inside a sprint
// recomputes that sprint's metrics.
func (s *TaskService) UpdateTask(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	taskID uuid.UUID,
	request *tasks_dto.UpdateTaskRequestDTO,
	actor *users_models.User,
) (*tasks_models.Task, error) {
	err := s.projectService.RequirePermission(project, teamMembership, actor.ID, access.ProjectActionEditTasks)
	if err != nil {
		return nil, err
	}

	task, err := s.getProjectTask(project, taskID)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		task.Title = *request.Title
	}

	if request.Description != nil {
		task.Description = *request.Description
	}

	if request.Status != nil {
		if !request.Status.IsValid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid task status: %s", *request.Status))
		}

		task.ApplyStatus(*request.Status, time.Now())
	}

	if request.Priority != nil {
		if !request.Priority.IsValid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid task priority: %s", *request.Priority))
		}

		task.Priority = *request.Priority
	}

	if request.StoryPoints != nil {
		task.StoryPoints = *request.StoryPoints
	}

	if request.ParentTaskID != nil {
		if err := s.validateParent(task, request.ParentTaskID); err != nil {
			return nil, err
		}
	}

	if request.DueDate != nil {
		task.DueDate = request.DueDate
	}

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.refreshSprintMetrics(task.SprintID)

	return task, nil
}

// AssignTask sets or clears the assignee and notifies the new assignee.
func (s *TaskService) AssignTask(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	taskID uuid.UUID,
	assigneeID *uuid.UUID,
	actor *users_models.User,
) (*tasks_models.Task, error) {
	err := s.projectService.RequirePermission(project, teamMembership, actor.ID, access.ProjectActionAssignTasks)
	if err != nil {
		return nil, err
	}

	task, err := s.getProjectTask(project, taskID)
	if err != nil {
		return nil, err
	}

	if assigneeID != nil {
		if err := s.validateAssignee(project, *assigneeID); err != nil {
			return nil, err
		}
	}

	task.AssignedToID = assigneeID

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	if assigneeID != nil {
		s.notifyAssignment(task, actor.ID)
	}

	return task, nil
}

func (s *TaskService) DeleteTask(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	taskID uuid.UUID,
	actor *users_models.User,
) error {
	err := s.projectService.RequirePermission(project, teamMembership, actor.ID, access.ProjectActionDeleteTasks)
	if err != nil {
		return err
	}

	task, err := s.getProjectTask(project, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepository.DetachChildren(task.ID); err != nil {
		return fmt.Errorf("failed to detach child tasks: %w", err)
	}

	if err := s.taskRepository.DeleteTask(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.refreshSprintMetrics(task.SprintID)

	return nil
}

func (s *TaskService) OnBeforeProjectDeletion(projectID uuid.UUID) error {
	return s.taskRepository.DeleteByProject(projectID)
}

func (s *TaskService) getProjectTask(
	project *projects_models.Project,
	taskID uuid.UUID,
) (*tasks_models.Task, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if task == nil || task.ProjectID != project.ID {
		return nil, apperrors.NotFound("task not found")
	}

	return task, nil
}

// validateParent resolves and validates the requested parent link. A zero
// UUID clears the link.
func (s *TaskService) validateParent(task *tasks_models.Task, parentTaskID *uuid.UUID) error {
	if parentTaskID == nil || *parentTaskID == uuid.Nil {
		if task.WorkItemType.RequiresParent() {
			return apperrors.Validation(
				fmt.Sprintf("a %s requires a parent task", task.WorkItemType))
		}

		if parentTaskID != nil {
			task.ParentTaskID = nil
		}

		return nil
	}

	parent, err := s.taskRepository.GetTaskByID(*parentTaskID)
	if err != nil {
		return fmt.Errorf("failed to get parent task: %w", err)
	}

	if parent == nil {
		return apperrors.NotFound("parent task not found")
	}

	if err := tasks_models.ValidateHierarchy(task.ID, task.WorkItemType, task.ProjectID, parent); err != nil {
		return err
	}

	task.ParentTaskID = parentTaskID

	return nil
}

func (s *TaskService) validateAssignee(project *projects_models.Project, assigneeID uuid.UUID) error {
	assigneeTeamMembership, err := s.teamService.GetMembership(project.TeamID, assigneeID)
	if err != nil {
		return fmt.Errorf("failed to check assignee team membership: %w", err)
	}

	if assigneeTeamMembership == nil || !assigneeTeamMembership.IsActiveMember() {
		return apperrors.Validation("assignee must be an active member of the team")
	}

	return nil
}

func (s *TaskService) notifyAssignment(task *tasks_models.Task, actorID uuid.UUID) {
	_, err := s.notificationService.CreateNotification(&notifications.CreateNotificationParams{
		RecipientID:      *task.AssignedToID,
		TeamID:           task.TeamID,
		Type:             notifications.NotificationTypeTaskAssigned,
		Title:            "Task assigned to you",
		Message:          fmt.Sprintf("You were assigned the task %q", task.Title),
		RelatedTaskID:    &task.ID,
		RelatedProjectID: &task.ProjectID,
		ActorID:          &actorID,
	})
	if err != nil {
		s.logger.Error("Failed to create assignment notification",
			slog.String("taskId", task.ID.String()),
			slog.String("error", err.Error()))
	}
}

func (s *TaskService) refreshSprintMetrics(sprintID *uuid.UUID) {
	if sprintID == nil || s.metricsRefresher == nil {
		return
	}

	if err := s.metricsRefresher.RefreshSprintMetrics(*sprintID); err != nil {
		s.logger.Error("Failed to refresh sprint metrics",
			slog.String("sprintId", sprintID.String()),
			slog.String("error", err.Error()))
	}
}
