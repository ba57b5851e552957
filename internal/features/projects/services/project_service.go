package projects_services

import (
	"fmt"
	"time"

	"sprintdesk/internal/apperrors"
	"sprintdesk/internal/features/access"
	audit_logs "sprintdesk/internal/features/audit_logs"
	projects_dto "sprintdesk/internal/features/projects/dto"
	projects_enums "sprintdesk/internal/features/projects/enums"
	projects_interfaces "sprintdesk/internal/features/projects/interfaces"
	projects_models "sprintdesk/internal/features/projects/models"
	projects_repositories "sprintdesk/internal/features/projects/repositories"
	teams_enums "sprintdesk/internal/features/teams/enums"
	teams_models "sprintdesk/internal/features/teams/models"
	users_models "sprintdesk/internal/features/users/models"
	cache_utils "sprintdesk/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type ProjectService struct {
	projectRepository        *projects_repositories.ProjectRepository
	membershipRepository     *projects_repositories.MembershipRepository
	auditLogService          *audit_logs.AuditLogService
	projectDeletionListeners []projects_interfaces.ProjectDeletionListener

	projectCacheUtil *cache_utils.CacheUtil[projects_models.Project]
	singleflight     singleflight.Group // Prevents thundering herd on DB calls
}

func (s *ProjectService) AddProjectDeletionListener(listener projects_interfaces.ProjectDeletionListener) {
	s.projectDeletionListeners = append(s.projectDeletionListeners, listener)
}

// CreateProject creates the project inside the team and makes the creator its
// OWNER member.
func (s *ProjectService) CreateProject(
	team *teams_models.Team,
	teamMembership *teams_models.TeamMembership,
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	if !access.CheckTeamPermission(teamMembership, access.TeamActionCreateProject) {
		return nil, apperrors.Forbidden("you do not have permission to create projects in this team")
	}

	project := &projects_models.Project{
		ID:          uuid.New(),
		TeamID:      team.ID,
		Name:        request.Name,
		Description: request.Description,
		Status:      projects_enums.ProjectStatusActive,
		TeamLeadID:  request.TeamLeadID,
		CreatedBy:   creator.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.projectRepository.CreateProject(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.projectCacheUtil.Set(project.ID.String(), project)

	membership := &projects_models.ProjectMembership{
		ProjectID: project.ID,
		UserID:    creator.ID,
		Role:      projects_enums.ProjectRoleOwner,
		Workload:  100,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to create project membership: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project created: %s", project.Name),
		&creator.ID,
		&team.ID,
		&project.ID,
	)

	ownerRole := projects_enums.ProjectRoleOwner
	return projectToResponse(project, &ownerRole), nil
}

// GetTeamProjects lists the team's projects visible to the user. Team admins
// see every project; everyone else sees only projects they are a member of.
func (s *ProjectService) GetTeamProjects(
	team *teams_models.Team,
	teamMembership *teams_models.TeamMembership,
	user *users_models.User,
) (*projects_dto.ListProjectsResponseDTO, error) {
	if teamMembership.Role == teams_enums.TeamRoleAdmin {
		projects, err := s.projectRepository.GetProjectsByTeam(team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get team projects: %w", err)
		}

		results := make([]projects_dto.ProjectResponseDTO, 0, len(projects))
		for _, project := range projects {
			results = append(results, *projectToResponse(project, nil))
		}

		return &projects_dto.ListProjectsResponseDTO{Projects: results}, nil
	}

	projects, err := s.projectRepository.GetProjectsWithRolesByUser(team.ID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	return &projects_dto.ListProjectsResponseDTO{Projects: projects}, nil
}

func (s *ProjectService) UpdateProject(
	project *projects_models.Project,
	request *projects_dto.UpdateProjectRequestDTO,
	teamMembership *teams_models.TeamMembership,
	user *users_models.User,
) (*projects_models.Project, error) {
	if err := s.RequirePermission(project, teamMembership, user.ID, access.ProjectActionEditProject); err != nil {
		return nil, err
	}

	if request.Name != nil {
		project.Name = *request.Name
	}

	if request.Description != nil {
		project.Description = *request.Description
	}

	if request.Status != nil {
		if !request.Status.IsValid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid project status: %s", *request.Status))
		}

		project.Status = *request.Status
	}

	if request.TeamLeadID != nil {
		project.TeamLeadID = request.TeamLeadID
	}

	if err := s.projectRepository.UpdateProject(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.projectCacheUtil.Set(project.ID.String(), project)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project updated: %s", project.Name),
		&user.ID,
		&project.TeamID,
		&project.ID,
	)

	return project, nil
}

// DeleteProject removes the project and its dependents. Listeners run in
// registration order so sprints and tasks go before memberships; the first
// failure aborts the whole cascade.
func (s *ProjectService) DeleteProject(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	user *users_models.User,
) error {
	if err := s.RequirePermission(project, teamMembership, user.ID, access.ProjectActionDeleteProject); err != nil {
		return err
	}

	if err := s.deleteProjectCascade(project); err != nil {
		return err
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project deleted: %s", project.Name),
		&user.ID,
		&project.TeamID,
		&project.ID,
	)

	return nil
}

func (s *ProjectService) deleteProjectCascade(project *projects_models.Project) error {
	for _, listener := range s.projectDeletionListeners {
		if err := listener.OnBeforeProjectDeletion(project.ID); err != nil {
			return fmt.Errorf("failed to clean up project dependents: %w", err)
		}
	}

	if err := s.membershipRepository.DeleteByProject(project.ID); err != nil {
		return fmt.Errorf("failed to delete project memberships: %w", err)
	}

	if err := s.projectRepository.DeleteProject(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.projectCacheUtil.Invalidate(project.ID.String())

	return nil
}

// OnBeforeTeamDeletion cascades a team deletion through every project the
// team owns.
func (s *ProjectService) OnBeforeTeamDeletion(teamID uuid.UUID) error {
	projects, err := s.projectRepository.GetProjectsByTeam(teamID)
	if err != nil {
		return fmt.Errorf("failed to list team projects for deletion: %w", err)
	}

	for _, project := range projects {
		if err := s.deleteProjectCascade(project); err != nil {
			return err
		}
	}

	return nil
}

func (s *ProjectService) GetProjectWithCache(projectID uuid.UUID) (*projects_models.Project, error) {
	cached := s.projectCacheUtil.Get(projectID.String())
	if cached != nil {
		if cached.IsNotExists {
			return nil, nil
		}

		return cached, nil
	}

	result, err, _ := s.singleflight.Do(projectID.String(), func() (any, error) {
		project, err := s.projectRepository.GetProjectByID(projectID)
		if err != nil {
			return nil, err
		}

		if project == nil {
			s.projectCacheUtil.Set(projectID.String(), &projects_models.Project{IsNotExists: true})
			return nil, nil
		}

		s.projectCacheUtil.Set(projectID.String(), project)

		return project, nil
	})
	if err != nil {
		return nil, err
	}

	if result == nil {
		return nil, nil
	}

	return result.(*projects_models.Project), nil
}

func (s *ProjectService) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	return s.projectRepository.GetProjectByID(projectID)
}

// InvalidateProjectCache drops the cached copy after an out-of-band column
// update such as the active sprint pointer.
func (s *ProjectService) InvalidateProjectCache(projectID uuid.UUID) {
	s.projectCacheUtil.Invalidate(projectID.String())
}

// ClaimActiveSprint atomically marks the sprint as the project's active one.
// It reports false when another sprint already holds the slot.
func (s *ProjectService) ClaimActiveSprint(projectID, sprintID uuid.UUID) (bool, error) {
	claimed, err := s.projectRepository.ClaimActiveSprint(projectID, sprintID)
	if err != nil {
		return false, fmt.Errorf("failed to claim active sprint: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	return claimed, nil
}

// ReleaseActiveSprint clears the active sprint pointer if the sprint holds it.
func (s *ProjectService) ReleaseActiveSprint(projectID, sprintID uuid.UUID) error {
	if err := s.projectRepository.ReleaseActiveSprint(projectID, sprintID); err != nil {
		return fmt.Errorf("failed to release active sprint: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	return nil
}

// ResolveProjectMembership returns the user's membership row, or nil when the
// user does not belong to the project.
func (s *ProjectService) ResolveProjectMembership(
	projectID, userID uuid.UUID,
) (*projects_models.ProjectMembership, error) {
	return s.membershipRepository.GetMembershipByProjectAndUser(projectID, userID)
}

// CheckPermission decides whether the user may perform the project action.
// The designated team lead may manage the member list without holding a
// membership row; every other decision goes through the role matrix.
func (s *ProjectService) CheckPermission(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	userID uuid.UUID,
	action access.ProjectAction,
) (bool, error) {
	if isMemberManagementAction(action) &&
		project.TeamLeadID != nil && *project.TeamLeadID == userID {
		return true, nil
	}

	projectMembership, err := s.ResolveProjectMembership(project.ID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve project membership: %w", err)
	}

	return access.CheckProjectPermission(teamMembership, projectMembership, action), nil
}

// RequirePermission is CheckPermission folded into a Forbidden error.
func (s *ProjectService) RequirePermission(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	userID uuid.UUID,
	action access.ProjectAction,
) error {
	allowed, err := s.CheckPermission(project, teamMembership, userID, action)
	if err != nil {
		return err
	}

	if !allowed {
		return apperrors.Forbidden(fmt.Sprintf("you do not have permission to %s", action))
	}

	return nil
}

func isMemberManagementAction(action access.ProjectAction) bool {
	return action == access.ProjectActionInviteMembers || action == access.ProjectActionRemoveMembers
}

func projectToResponse(
	project *projects_models.Project,
	userRole *projects_enums.ProjectRole,
) *projects_dto.ProjectResponseDTO {
	return &projects_dto.ProjectResponseDTO{
		ID:             project.ID,
		TeamID:         project.TeamID,
		Name:           project.Name,
		Description:    project.Description,
		Status:         project.Status,
		TeamLeadID:     project.TeamLeadID,
		ActiveSprintID: project.ActiveSprintID,
		CreatedBy:      project.CreatedBy,
		CreatedAt:      project.CreatedAt,
		UserRole:       userRole,
	}
}
