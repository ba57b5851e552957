package sprints_services

import (
	"fmt"
	"log/slog"
	"time"

	"sprintdesk/internal/apperrors"
	"sprintdesk/internal/features/access"
	audit_logs "sprintdesk/internal/features/audit_logs"
	notifications "sprintdesk/internal/features/notifications"
	projects_models "sprintdesk/internal/features/projects/models"
	projects_repositories "sprintdesk/internal/features/projects/repositories"
	projects_services "sprintdesk/internal/features/projects/services"
	sprints_dto "sprintdesk/internal/features/sprints/dto"
	sprints_enums "sprintdesk/internal/features/sprints/enums"
	sprints_models "sprintdesk/internal/features/sprints/models"
	sprints_repositories "sprintdesk/internal/features/sprints/repositories"
	tasks_repositories "sprintdesk/internal/features/tasks/repositories"
	teams_models "sprintdesk/internal/features/teams/models"
	users_models "sprintdesk/internal/features/users/models"

	"github.com/google/uuid"
)

type SprintService struct {
	sprintRepository            *sprints_repositories.SprintRepository
	taskRepository              *tasks_repositories.TaskRepository
	projectService              *projects_services.ProjectService
	projectMembershipRepository *projects_repositories.MembershipRepository
	notificationService         *notifications.NotificationService
	auditLogService             *audit_logs.AuditLogService
	logger                      *slog.Logger
}

func (s *SprintService) CreateSprint(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	request *sprints_dto.CreateSprintRequestDTO,
	creator *users_models.User,
) (*sprints_dto.SprintResponseDTO, error) {
	err := s.projectService.RequirePermission(project, teamMembership, creator.ID, access.ProjectActionManageSprints)
	if err != nil {
		return nil, err
	}

	if !request.EndDate.After(request.StartDate) {
		return nil, apperrors.Validation("sprint end date must be after the start date")
	}

	sprint := &sprints_models.Sprint{
		ID:        uuid.New(),
		ProjectID: project.ID,
		TeamID:    project.TeamID,
		Name:      request.Name,
		Goal:      request.Goal,
		StartDate: request.StartDate.UTC(),
		EndDate:   request.EndDate.UTC(),
		Status:    sprints_enums.SprintStatusPlanning,
		Capacity:  request.Capacity,
		Burndown:  []sprints_models.BurndownPoint{},
		CreatedBy: creator.ID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.sprintRepository.CreateSprint(sprint); err != nil {
		return nil, fmt.Errorf("failed to create sprint: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Sprint created: %s", sprint.Name),
		&creator.ID,
		&project.TeamID,
		&project.ID,
	)

	return sprintToResponse(sprint), nil
}

func (s *SprintService) GetSprints(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	user *users_models.User,
) (*sprints_dto.ListSprintsResponseDTO, error) {
	err := s.projectService.RequirePermission(project, teamMembership, user.ID, access.ProjectActionViewProject)
	if err != nil {
		return nil, err
	}

	sprints, err := s.sprintRepository.GetSprintsByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sprints: %w", err)
	}

	responses := make([]*sprints_dto.SprintResponseDTO, 0, len(sprints))
	for _, sprint := range sprints {
		responses = append(responses, sprintToResponse(sprint))
	}

	return &sprints_dto.ListSprintsResponseDTO{Sprints: responses}, nil
}

func (s *SprintService) GetSprint(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	user *users_models.User,
	sprintID uuid.UUID,
) (*sprints_dto.SprintResponseDTO, error) {
	err := s.projectService.RequirePermission(project, teamMembership, user.ID, access.ProjectActionViewProject)
	if err != nil {
		return nil, err
	}

	sprint, err := s.getProjectSprint(project, sprintID)
	if err != nil {
		return nil, err
	}

	return sprintToResponse(sprint), nil
}

// UpdateSprint edits the plan of a sprint that has not ended yet.
func (s *SprintService) UpdateSprint(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	sprintID uuid.UUID,
	request *sprints_dto.UpdateSprintRequestDTO,
	actor *users_models.User,
) (*sprints_dto.SprintResponseDTO, error) {
	err := s.projectService.RequirePermission(project, teamMembership, actor.ID, access.ProjectActionManageSprints)
	if err != nil {
		return nil, err
	}

	sprint, err := s.getProjectSprint(project, sprintID)
	if err != nil {
		return nil, err
	}

	if sprint.Status.IsTerminal() {
		return nil, apperrors.Conflict("a completed or cancelled sprint cannot be edited")
	}

	if request.Name != nil {
		sprint.Name = *request.Name
	}

	if request.Goal != nil {
		sprint.Goal = *request.Goal
	}

	if request.StartDate != nil {
		sprint.StartDate = request.StartDate.UTC()
	}

	if request.EndDate != nil {
		sprint.EndDate = request.EndDate.UTC()
	}

	if !sprint.EndDate.After(sprint.StartDate) {
		return nil, apperrors.Validation("sprint end date must be after the start date")
	}

	if request.Capacity != nil {
		sprint.Capacity = *request.Capacity
	}

	if err := s.sprintRepository.UpdateSprint(sprint); err != nil {
		return nil, fmt.Errorf("failed to update sprint: %w", err)
	}

	return sprintToResponse(sprint), nil
}

// StartSprint activates a planned sprint. The project's active sprint slot
// is claimed atomically, so of two racing starts exactly one succeeds.
func (s *SprintService) StartSprint(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	sprintID uuid.UUID,
	actor *users_models.User,
) (*sprints_dto.SprintResponseDTO, error) {
	err := s.projectService.RequirePermission(project, teamMembership, actor.ID, access.ProjectActionManageSprints)
	if err != nil {
		return nil, err
	}

	sprint, err := s.getProjectSprint(project, sprintID)
	if err != nil {
		return nil, err
	}

	if sprint.Status != sprints_enums.SprintStatusPlanning {
		return nil, apperrors.Conflict("only a sprint in planning can be started")
	}

	claimed, err := s.projectService.ClaimActiveSprint(project.ID, sprint.ID)
	if err != nil {
		return nil, err
	}

	if !claimed {
		return nil, apperrors.Conflict("the project already has an active sprint")
	}

	tasks, err := s.taskRepository.GetTasksBySprint(sprint.ID)
	if err != nil {
		s.releaseClaim(project.ID, sprint.ID)
		return nil, fmt.Errorf("failed to load sprint tasks: %w", err)
	}

	sprint.RecomputeMetrics(tasks)

	if err := sprint.ApplyStart(time.Now()); err != nil {
		s.releaseClaim(project.ID, sprint.ID)
		return nil, err
	}

	if err := s.sprintRepository.UpdateSprint(sprint); err != nil {
		s.releaseClaim(project.ID, sprint.ID)
		return nil, fmt.Errorf("failed to start sprint: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Sprint started: %s", sprint.Name),
		&actor.ID,
		&project.TeamID,
		&project.ID,
	)

	s.notifyProjectMembers(project, sprint, actor.ID,
		notifications.NotificationTypeSprintStarted,
		"Sprint started",
		fmt.Sprintf("Sprint %q has started", sprint.Name))

	return sprintToResponse(sprint), nil
}

// CompleteSprint finalizes an active sprint: metrics are recomputed one last
// time, velocity is frozen, and incomplete tasks optionally move to a target
// sprint. Without a target they stay behind as carry-over.
func (s *SprintService) CompleteSprint(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	sprintID uuid.UUID,
	request *sprints_dto.CompleteSprintRequestDTO,
	actor *users_models.User,
) (*sprints_dto.SprintResponseDTO, error) {
	err := s.projectService.RequirePermission(project, teamMembership, actor.ID, access.ProjectActionManageSprints)
	if err != nil {
		return nil, err
	}

	sprint, err := s.getProjectSprint(project, sprintID)
	if err != nil {
		return nil, err
	}

	var target *sprints_models.Sprint
	if request.MoveIncompleteToSprintID != nil {
		target, err = s.getProjectSprint(project, *request.MoveIncompleteToSprintID)
		if err != nil {
			return nil, err
		}

		if target.ID == sprint.ID {
			return nil, apperrors.Validation("cannot move incomplete tasks into the sprint being completed")
		}

		if target.Status.IsTerminal() {
			return nil, apperrors.Conflict("cannot move tasks into a completed or cancelled sprint")
		}
	}

	tasks, err := s.taskRepository.GetTasksBySprint(sprint.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sprint tasks: %w", err)
	}

	sprint.RecomputeMetrics(tasks)

	if err := sprint.ApplyComplete(time.Now()); err != nil {
		return nil, err
	}

	if request.Retrospective != nil {
		sprint.Retrospective = request.Retrospective
	}

	if err := s.sprintRepository.UpdateSprint(sprint); err != nil {
		return nil, fmt.Errorf("failed to complete sprint: %w", err)
	}

	if err := s.projectService.ReleaseActiveSprint(project.ID, sprint.ID); err != nil {
		return nil, err
	}

	if target != nil {
		if err := s.taskRepository.RedirectIncompleteTasks(sprint.ID, &target.ID); err != nil {
			return nil, fmt.Errorf("failed to move incomplete tasks: %w", err)
		}

		if err := s.RefreshSprintMetrics(target.ID); err != nil {
			return nil, err
		}
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Sprint completed: %s (velocity %d)", sprint.Name, sprint.Metrics.Velocity),
		&actor.ID,
		&project.TeamID,
		&project.ID,
	)

	s.notifyProjectMembers(project, sprint, actor.ID,
		notifications.NotificationTypeSprintCompleted,
		"Sprint completed",
		fmt.Sprintf("Sprint %q has been completed", sprint.Name))

	return sprintToResponse(sprint), nil
}

// CancelSprint aborts a sprint and returns every task to the backlog.
func (s *SprintService) CancelSprint(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	sprintID uuid.UUID,
	actor *users_models.User,
) (*sprints_dto.SprintResponseDTO, error) {
	err := s.projectService.RequirePermission(project, teamMembership, actor.ID, access.ProjectActionManageSprints)
	if err != nil {
		return nil, err
	}

	sprint, err := s.getProjectSprint(project, sprintID)
	if err != nil {
		return nil, err
	}

	if err := sprint.ApplyCancel(); err != nil {
		return nil, err
	}

	if err := s.sprintRepository.UpdateSprint(sprint); err != nil {
		return nil, fmt.Errorf("failed to cancel sprint: %w", err)
	}

	// Unconditional: also frees a claim orphaned by a failed start.
	if err := s.projectService.ReleaseActiveSprint(project.ID, sprint.ID); err != nil {
		return nil, err
	}

	if err := s.taskRepository.DetachAllTasksFromSprint(sprint.ID); err != nil {
		return nil, fmt.Errorf("failed to detach sprint tasks: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Sprint cancelled: %s", sprint.Name),
		&actor.ID,
		&project.TeamID,
		&project.ID,
	)

	return sprintToResponse(sprint), nil
}

// DeleteSprint removes a planned or cancelled sprint and detaches its tasks
// back to the backlog. Active and completed sprints are protected.
func (s *SprintService) DeleteSprint(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	sprintID uuid.UUID,
	actor *users_models.User,
) error {
	err := s.projectService.RequirePermission(project, teamMembership, actor.ID, access.ProjectActionManageSprints)
	if err != nil {
		return err
	}

	sprint, err := s.getProjectSprint(project, sprintID)
	if err != nil {
		return err
	}

	if sprint.Status == sprints_enums.SprintStatusActive {
		return apperrors.Conflict("cancel or complete the sprint first")
	}

	if sprint.Status == sprints_enums.SprintStatusCompleted {
		return apperrors.Conflict("a completed sprint cannot be deleted")
	}

	if err := s.projectService.ReleaseActiveSprint(project.ID, sprint.ID); err != nil {
		return err
	}

	if err := s.taskRepository.DetachAllTasksFromSprint(sprint.ID); err != nil {
		return fmt.Errorf("failed to detach sprint tasks: %w", err)
	}

	if err := s.sprintRepository.DeleteSprint(sprint.ID); err != nil {
		return fmt.Errorf("failed to delete sprint: %w", err)
	}

	return nil
}

// RefreshSprintMetrics recomputes the sprint's aggregates from its tasks.
// Terminal sprints are frozen; an active sprint also records today's
// burndown point, overwriting an earlier point from the same day.
func (s *SprintService) RefreshSprintMetrics(sprintID uuid.UUID) error {
	sprint, err := s.sprintRepository.GetSprintByID(sprintID)
	if err != nil {
		return fmt.Errorf("failed to get sprint: %w", err)
	}

	if sprint == nil || sprint.Status.IsTerminal() {
		return nil
	}

	tasks, err := s.taskRepository.GetTasksBySprint(sprint.ID)
	if err != nil {
		return fmt.Errorf("failed to load sprint tasks: %w", err)
	}

	sprint.RecomputeMetrics(tasks)

	if sprint.Status == sprints_enums.SprintStatusActive {
		sprint.RecordBurndownPoint(time.Now())
	}

	if err := s.sprintRepository.UpdateSprint(sprint); err != nil {
		return fmt.Errorf("failed to save sprint metrics: %w", err)
	}

	return nil
}

func (s *SprintService) OnBeforeProjectDeletion(projectID uuid.UUID) error {
	return s.sprintRepository.DeleteByProject(projectID)
}

// releaseClaim gives the active-sprint slot back after a failed start. The
// repository release only clears the pointer while this sprint holds it, so
// calling it on a lost race is harmless.
func (s *SprintService) releaseClaim(projectID, sprintID uuid.UUID) {
	if err := s.projectService.ReleaseActiveSprint(projectID, sprintID); err != nil {
		s.logger.Error("Failed to release active sprint claim",
			slog.String("sprintId", sprintID.String()),
			slog.String("error", err.Error()))
	}
}

func (s *SprintService) getProjectSprint(
	project *projects_models.Project,
	sprintID uuid.UUID,
) (*sprints_models.Sprint, error) {
	sprint, err := s.sprintRepository.GetSprintByID(sprintID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sprint: %w", err)
	}

	if sprint == nil || sprint.ProjectID != project.ID {
		return nil, apperrors.NotFound("sprint not found")
	}

	return sprint, nil
}

func (s *SprintService) notifyProjectMembers(
	project *projects_models.Project,
	sprint *sprints_models.Sprint,
	actorID uuid.UUID,
	notificationType notifications.NotificationType,
	title, message string,
) {
	members, err := s.projectMembershipRepository.GetProjectMembers(project.ID)
	if err != nil {
		s.logger.Error("Failed to load project members for notification",
			slog.String("projectId", project.ID.String()),
			slog.String("error", err.Error()))
		return
	}

	for _, member := range members {
		_, err := s.notificationService.CreateNotification(&notifications.CreateNotificationParams{
			RecipientID:      member.UserID,
			TeamID:           project.TeamID,
			Type:             notificationType,
			Title:            title,
			Message:          message,
			RelatedProjectID: &project.ID,
			RelatedSprintID:  &sprint.ID,
			ActorID:          &actorID,
		})
		if err != nil {
			s.logger.Error("Failed to create sprint notification",
				slog.String("sprintId", sprint.ID.String()),
				slog.String("error", err.Error()))
		}
	}
}

func sprintToResponse(sprint *sprints_models.Sprint) *sprints_dto.SprintResponseDTO {
	now := time.Now()

	return &sprints_dto.SprintResponseDTO{
		Sprint:        sprint,
		Duration:      sprint.Duration(),
		Progress:      sprint.Progress(),
		IsOverdue:     sprint.IsOverdue(now),
		DaysRemaining: sprint.DaysRemaining(now),
	}
}
