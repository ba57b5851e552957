package sprints_services

import (
	"fmt"

	"sprintdesk/internal/apperrors"
	"sprintdesk/internal/features/access"
	projects_models "sprintdesk/internal/features/projects/models"
	projects_services "sprintdesk/internal/features/projects/services"
	sprints_dto "sprintdesk/internal/features/sprints/dto"
	sprints_enums "sprintdesk/internal/features/sprints/enums"
	sprints_repositories "sprintdesk/internal/features/sprints/repositories"
	tasks_models "sprintdesk/internal/features/tasks/models"
	tasks_repositories "sprintdesk/internal/features/tasks/repositories"
	teams_models "sprintdesk/internal/features/teams/models"
	users_models "sprintdesk/internal/features/users/models"

	"github.com/google/uuid"
)

// MovementService moves tasks between the backlog and sprints. It is the
// only code that ever writes a task's sprint assignment.
type MovementService struct {
	sprintRepository *sprints_repositories.SprintRepository
	taskRepository   *tasks_repositories.TaskRepository
	projectService   *projects_services.ProjectService
	sprintService    *SprintService
}

// AddTasksToSprint moves the given tasks into the sprint. Each task is
// checked independently; valid tasks move even when others fail.
func (s *MovementService) AddTasksToSprint(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	sprintID uuid.UUID,
	request *sprints_dto.MoveTasksRequestDTO,
	actor *users_models.User,
) (*sprints_dto.MoveTasksResponseDTO, error) {
	err := s.projectService.RequirePermission(project, teamMembership, actor.ID, access.ProjectActionManageSprints)
	if err != nil {
		return nil, err
	}

	sprint, err := s.sprintService.getProjectSprint(project, sprintID)
	if err != nil {
		return nil, err
	}

	if sprint.Status.IsTerminal() {
		return nil, apperrors.Conflict("cannot add tasks to a completed or cancelled sprint")
	}

	response := &sprints_dto.MoveTasksResponseDTO{
		Moved:  make([]uuid.UUID, 0, len(request.TaskIDs)),
		Failed: make([]sprints_dto.MoveTaskErrorDTO, 0),
	}

	sourceSprintIDs := make(map[uuid.UUID]bool)

	for _, taskID := range request.TaskIDs {
		task, err := s.taskRepository.GetTaskByID(taskID)
		if err != nil {
			return nil, fmt.Errorf("failed to get task: %w", err)
		}

		reason := validateTaskMove(task, project, sprintID)
		if reason != "" {
			response.Failed = append(response.Failed, sprints_dto.MoveTaskErrorDTO{
				TaskID: taskID,
				Reason: reason,
			})
			continue
		}

		if task.SprintID != nil {
			sourceSprintIDs[*task.SprintID] = true
		}

		response.Moved = append(response.Moved, taskID)
	}

	if len(response.Moved) > 0 {
		if err := s.taskRepository.AssignTasksToSprint(response.Moved, sprint.ID); err != nil {
			return nil, fmt.Errorf("failed to move tasks: %w", err)
		}

		if err := s.sprintService.RefreshSprintMetrics(sprint.ID); err != nil {
			return nil, err
		}

		for sourceID := range sourceSprintIDs {
			if err := s.sprintService.RefreshSprintMetrics(sourceID); err != nil {
				return nil, err
			}
		}
	}

	return response, nil
}

// RemoveTaskFromSprint returns a task to the backlog. Tasks of a completed
// sprint are part of its history and stay put.
func (s *MovementService) RemoveTaskFromSprint(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	taskID uuid.UUID,
	actor *users_models.User,
) error {
	err := s.projectService.RequirePermission(project, teamMembership, actor.ID, access.ProjectActionManageSprints)
	if err != nil {
		return err
	}

	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	if task == nil || task.ProjectID != project.ID {
		return apperrors.NotFound("task not found")
	}

	if task.SprintID == nil {
		return apperrors.Validation("task is already in the backlog")
	}

	sprint, err := s.sprintService.getProjectSprint(project, *task.SprintID)
	if err != nil {
		return err
	}

	if sprint.Status == sprints_enums.SprintStatusCompleted {
		return apperrors.Conflict("tasks cannot be removed from a completed sprint")
	}

	if err := s.taskRepository.DetachTaskFromSprint(task.ID); err != nil {
		return fmt.Errorf("failed to detach task: %w", err)
	}

	return s.sprintService.RefreshSprintMetrics(sprint.ID)
}

// GetBacklog lists unscheduled tasks together with the carry-over from the
// most recently completed sprint.
func (s *MovementService) GetBacklog(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	user *users_models.User,
) (*sprints_dto.BacklogResponseDTO, error) {
	err := s.projectService.RequirePermission(project, teamMembership, user.ID, access.ProjectActionViewProject)
	if err != nil {
		return nil, err
	}

	backlogTasks, err := s.taskRepository.GetTasksByProject(project.ID, &tasks_repositories.TaskFilter{
		BacklogOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list backlog tasks: %w", err)
	}

	carryOver := make([]*tasks_models.Task, 0)

	lastCompleted, err := s.sprintRepository.GetLatestCompletedSprint(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get last completed sprint: %w", err)
	}

	if lastCompleted != nil {
		carryOver, err = s.taskRepository.GetIncompleteTasksBySprint(lastCompleted.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list carry-over tasks: %w", err)
		}
	}

	return &sprints_dto.BacklogResponseDTO{
		Tasks:     backlogTasks,
		CarryOver: carryOver,
	}, nil
}

func validateTaskMove(task *tasks_models.Task, project *projects_models.Project, targetSprintID uuid.UUID) string {
	if task == nil || task.ProjectID != project.ID {
		return "task not found in this project"
	}

	if task.SprintID != nil && *task.SprintID == targetSprintID {
		return "task is already in this sprint"
	}

	return ""
}
