package projects_services

import (
	"fmt"
	"time"

	"sprintdesk/internal/apperrors"
	"sprintdesk/internal/features/access"
	audit_logs "sprintdesk/internal/features/audit_logs"
	projects_dto "sprintdesk/internal/features/projects/dto"
	projects_enums "sprintdesk/internal/features/projects/enums"
	projects_models "sprintdesk/internal/features/projects/models"
	projects_repositories "sprintdesk/internal/features/projects/repositories"
	teams_models "sprintdesk/internal/features/teams/models"
	teams_services "sprintdesk/internal/features/teams/services"
	users_models "sprintdesk/internal/features/users/models"
	users_services "sprintdesk/internal/features/users/services"

	"github.com/google/uuid"
)

type MembershipService struct {
	membershipRepository *projects_repositories.MembershipRepository
	projectService       *ProjectService
	teamService          *teams_services.TeamService
	userService          *users_services.UserService
	auditLogService      *audit_logs.AuditLogService
}

func (s *MembershipService) GetMembers(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	user *users_models.User,
) (*projects_dto.GetMembersResponseDTO, error) {
	err := s.projectService.RequirePermission(project, teamMembership, user.ID, access.ProjectActionViewProject)
	if err != nil {
		return nil, err
	}

	members, err := s.membershipRepository.GetProjectMembers(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}

	for _, member := range members {
		member.Permissions = access.PermissionsForProjectRole(member.Role)
	}

	return &projects_dto.GetMembersResponseDTO{Members: members}, nil
}

// AddMember adds an existing team member to the project. Only users who are
// active members of the owning team qualify.
func (s *MembershipService) AddMember(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	request *projects_dto.AddMemberRequestDTO,
	actor *users_models.User,
) (*projects_dto.ProjectMemberResponseDTO, error) {
	err := s.projectService.RequirePermission(project, teamMembership, actor.ID, access.ProjectActionInviteMembers)
	if err != nil {
		return nil, err
	}

	if !request.Role.IsValid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid project role: %s", request.Role))
	}

	if request.Role == projects_enums.ProjectRoleOwner {
		return nil, apperrors.Validation("ownership is granted only through ownership transfer")
	}

	targetUser, err := s.userService.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if targetUser == nil {
		return nil, apperrors.NotFound(fmt.Sprintf("no user found with email %s", request.Email))
	}

	targetTeamMembership, err := s.teamService.GetMembership(project.TeamID, targetUser.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check team membership: %w", err)
	}

	if targetTeamMembership == nil || !targetTeamMembership.IsActiveMember() {
		return nil, apperrors.Validation("user must be an active member of the team before joining a project")
	}

	existing, err := s.membershipRepository.GetMembershipByProjectAndUser(project.ID, targetUser.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}

	if existing != nil {
		return nil, apperrors.Conflict("user is already a member of this project")
	}

	membership := &projects_models.ProjectMembership{
		ProjectID: project.ID,
		UserID:    targetUser.ID,
		Role:      request.Role,
		Workload:  request.Workload,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to create project membership: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project member added: %s as %s", targetUser.Email, request.Role),
		&actor.ID,
		&project.TeamID,
		&project.ID,
	)

	return &projects_dto.ProjectMemberResponseDTO{
		ID:          membership.ID,
		UserID:      targetUser.ID,
		Email:       targetUser.Email,
		Role:        membership.Role,
		Workload:    membership.Workload,
		CreatedAt:   membership.CreatedAt,
		Permissions: access.PermissionsForProjectRole(membership.Role),
	}, nil
}

// ChangeMemberRole updates a member's role. Ownership never moves through
// this path; the only OWNER cannot be demoted and OWNER cannot be assigned.
func (s *MembershipService) ChangeMemberRole(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	targetUserID uuid.UUID,
	newRole projects_enums.ProjectRole,
	actor *users_models.User,
) error {
	err := s.projectService.RequirePermission(project, teamMembership, actor.ID, access.ProjectActionInviteMembers)
	if err != nil {
		return err
	}

	if !newRole.IsValid() {
		return apperrors.Validation(fmt.Sprintf("invalid project role: %s", newRole))
	}

	if newRole == projects_enums.ProjectRoleOwner {
		return apperrors.Validation("ownership is granted only through ownership transfer")
	}

	membership, err := s.membershipRepository.GetMembershipByProjectAndUser(project.ID, targetUserID)
	if err != nil {
		return fmt.Errorf("failed to get project membership: %w", err)
	}

	if membership == nil {
		return apperrors.NotFound("user is not a member of this project")
	}

	if membership.Role == projects_enums.ProjectRoleOwner {
		ownerCount, err := s.membershipRepository.CountOwners(project.ID)
		if err != nil {
			return fmt.Errorf("failed to count project owners: %w", err)
		}

		if ownerCount <= 1 {
			return apperrors.Conflict("cannot demote the only project owner; transfer ownership first")
		}
	}

	if err := s.membershipRepository.UpdateMemberRole(project.ID, targetUserID, newRole); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project member role changed to %s", newRole),
		&actor.ID,
		&project.TeamID,
		&project.ID,
	)

	return nil
}

// TransferOwnership atomically swaps the OWNER role to another member. Only
// the current owner or a team admin may transfer.
func (s *MembershipService) TransferOwnership(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	request *projects_dto.TransferOwnershipRequestDTO,
	actor *users_models.User,
) error {
	actorMembership, err := s.membershipRepository.GetMembershipByProjectAndUser(project.ID, actor.ID)
	if err != nil {
		return fmt.Errorf("failed to get actor membership: %w", err)
	}

	isOwner := actorMembership != nil && actorMembership.Role == projects_enums.ProjectRoleOwner
	isTeamAdmin := access.CheckTeamPermission(teamMembership, access.TeamActionManageTeam)

	if !isOwner && !isTeamAdmin {
		return apperrors.Forbidden("only the project owner or a team admin can transfer ownership")
	}

	newOwner, err := s.userService.GetUserByEmail(request.NewOwnerEmail)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if newOwner == nil {
		return apperrors.NotFound(fmt.Sprintf("no user found with email %s", request.NewOwnerEmail))
	}

	newOwnerMembership, err := s.membershipRepository.GetMembershipByProjectAndUser(project.ID, newOwner.ID)
	if err != nil {
		return fmt.Errorf("failed to get new owner membership: %w", err)
	}

	if newOwnerMembership == nil {
		return apperrors.Validation("new owner must already be a member of the project")
	}

	if newOwnerMembership.Role == projects_enums.ProjectRoleOwner {
		return apperrors.Conflict("user is already the project owner")
	}

	if actorMembership != nil && actorMembership.Role == projects_enums.ProjectRoleOwner {
		err = s.membershipRepository.UpdateMemberRole(project.ID, actor.ID, projects_enums.ProjectRoleManager)
		if err != nil {
			return fmt.Errorf("failed to demote previous owner: %w", err)
		}
	}

	err = s.membershipRepository.UpdateMemberRole(project.ID, newOwner.ID, projects_enums.ProjectRoleOwner)
	if err != nil {
		return fmt.Errorf("failed to promote new owner: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project ownership transferred to %s", newOwner.Email),
		&actor.ID,
		&project.TeamID,
		&project.ID,
	)

	return nil
}

func (s *MembershipService) SetWorkload(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	targetUserID uuid.UUID,
	workload int,
	actor *users_models.User,
) error {
	err := s.projectService.RequirePermission(project, teamMembership, actor.ID, access.ProjectActionInviteMembers)
	if err != nil {
		return err
	}

	if workload < 0 || workload > 100 {
		return apperrors.Validation("workload must be between 0 and 100")
	}

	membership, err := s.membershipRepository.GetMembershipByProjectAndUser(project.ID, targetUserID)
	if err != nil {
		return fmt.Errorf("failed to get project membership: %w", err)
	}

	if membership == nil {
		return apperrors.NotFound("user is not a member of this project")
	}

	if err := s.membershipRepository.UpdateMemberWorkload(project.ID, targetUserID, workload); err != nil {
		return fmt.Errorf("failed to update member workload: %w", err)
	}

	return nil
}

func (s *MembershipService) RemoveMember(
	project *projects_models.Project,
	teamMembership *teams_models.TeamMembership,
	targetUserID uuid.UUID,
	actor *users_models.User,
) error {
	err := s.projectService.RequirePermission(project, teamMembership, actor.ID, access.ProjectActionRemoveMembers)
	if err != nil {
		return err
	}

	membership, err := s.membershipRepository.GetMembershipByProjectAndUser(project.ID, targetUserID)
	if err != nil {
		return fmt.Errorf("failed to get project membership: %w", err)
	}

	if membership == nil {
		return apperrors.NotFound("user is not a member of this project")
	}

	if membership.Role == projects_enums.ProjectRoleOwner {
		return apperrors.Conflict("the project owner cannot be removed; transfer ownership first")
	}

	if err := s.membershipRepository.RemoveMember(project.ID, targetUserID); err != nil {
		return fmt.Errorf("failed to remove project member: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		"Project member removed",
		&actor.ID,
		&project.TeamID,
		&project.ID,
	)

	return nil
}
