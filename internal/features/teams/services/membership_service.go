package teams_services

import (
	"fmt"
	"time"

	"sprintdesk/internal/apperrors"
	audit_logs "sprintdesk/internal/features/audit_logs"
	"sprintdesk/internal/features/access"
	notifications "sprintdesk/internal/features/notifications"
	teams_dto "sprintdesk/internal/features/teams/dto"
	teams_enums "sprintdesk/internal/features/teams/enums"
	teams_models "sprintdesk/internal/features/teams/models"
	teams_repositories "sprintdesk/internal/features/teams/repositories"
	users_models "sprintdesk/internal/features/users/models"
	users_services "sprintdesk/internal/features/users/services"

	"github.com/google/uuid"
)

type MembershipService struct {
	membershipRepository *teams_repositories.MembershipRepository
	userService          *users_services.UserService
	auditLogService      *audit_logs.AuditLogService
	notificationService  *notifications.NotificationService
}

func (s *MembershipService) GetMembers(
	team *teams_models.Team,
	membership *teams_models.TeamMembership,
) (*teams_dto.GetMembersResponseDTO, error) {
	if !access.CheckTeamPermission(membership, access.TeamActionViewTeam) {
		return nil, apperrors.Forbidden("insufficient permissions to view team members")
	}

	members, err := s.membershipRepository.GetTeamMembers(team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}

	membersList := make([]teams_dto.TeamMemberResponseDTO, len(members))
	for i, member := range members {
		membersList[i] = *member
		membersList[i].Permissions = access.PermissionsForTeamRole(member.Role)
	}

	return &teams_dto.GetMembersResponseDTO{Members: membersList}, nil
}

func (s *MembershipService) AddMember(
	team *teams_models.Team,
	request *teams_dto.AddMemberRequestDTO,
	actorMembership *teams_models.TeamMembership,
	actor *users_models.User,
) (*teams_dto.TeamMemberResponseDTO, error) {
	if !access.CheckTeamPermission(actorMembership, access.TeamActionInviteMembers) {
		return nil, apperrors.Forbidden("insufficient permissions to invite members")
	}

	if !request.Role.IsValid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid team role: %s", request.Role))
	}

	targetUser, err := s.userService.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if targetUser == nil {
		return nil, apperrors.NotFound(fmt.Sprintf("no user with email %s", request.Email))
	}

	existing, err := s.membershipRepository.GetMembershipByTeamAndUser(team.ID, targetUser.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}

	if existing != nil {
		return nil, apperrors.Conflict("user is already a member of this team")
	}

	membership := &teams_models.TeamMembership{
		TeamID:   team.ID,
		UserID:   targetUser.ID,
		Role:     request.Role,
		Status:   teams_enums.MembershipStatusActive,
		JoinedAt: time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("User added to team: %s as %s", targetUser.Email, request.Role),
		&actor.ID,
		&team.ID,
		nil,
	)

	_, _ = s.notificationService.CreateNotification(&notifications.CreateNotificationParams{
		RecipientID: targetUser.ID,
		TeamID:      team.ID,
		Type:        notifications.NotificationTypeTeamMemberAdded,
		Title:       "You were added to a team",
		Message:     fmt.Sprintf("You joined %s as %s", team.Name, request.Role),
		ActorID:     &actor.ID,
	})

	return &teams_dto.TeamMemberResponseDTO{
		ID:          membership.ID,
		UserID:      targetUser.ID,
		Email:       targetUser.Email,
		Role:        membership.Role,
		Status:      membership.Status,
		JoinedAt:    membership.JoinedAt,
		Permissions: access.PermissionsForTeamRole(membership.Role),
	}, nil
}

// AddMembers is per-item best-effort: each failure is collected and reported
// alongside the successes instead of aborting the whole batch.
func (s *MembershipService) AddMembers(
	team *teams_models.Team,
	request *teams_dto.BulkAddMembersRequestDTO,
	actorMembership *teams_models.TeamMembership,
	actor *users_models.User,
) (*teams_dto.BulkAddMembersResponseDTO, error) {
	if !access.CheckTeamPermission(actorMembership, access.TeamActionInviteMembers) {
		return nil, apperrors.Forbidden("insufficient permissions to invite members")
	}

	response := &teams_dto.BulkAddMembersResponseDTO{
		Added:  []teams_dto.TeamMemberResponseDTO{},
		Failed: []teams_dto.BulkMemberErrorDTO{},
	}

	for _, item := range request.Members {
		member, err := s.AddMember(team, &item, actorMembership, actor)
		if err != nil {
			response.Failed = append(response.Failed, teams_dto.BulkMemberErrorDTO{
				Email: item.Email,
				Error: err.Error(),
			})
			continue
		}

		response.Added = append(response.Added, *member)
	}

	return response, nil
}

func (s *MembershipService) ChangeMemberRole(
	team *teams_models.Team,
	memberUserID uuid.UUID,
	request *teams_dto.ChangeMemberRoleRequestDTO,
	actorMembership *teams_models.TeamMembership,
	actor *users_models.User,
) error {
	if !access.CheckTeamPermission(actorMembership, access.TeamActionManageRoles) {
		return apperrors.Forbidden("insufficient permissions to manage roles")
	}

	if !request.Role.IsValid() {
		return apperrors.Validation(fmt.Sprintf("invalid team role: %s", request.Role))
	}

	existing, err := s.membershipRepository.GetMembershipByTeamAndUser(team.ID, memberUserID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}

	if existing == nil {
		return apperrors.NotFound("user is not a member of this team")
	}

	// A team must always keep at least one active admin.
	if existing.Role == teams_enums.TeamRoleAdmin && request.Role != teams_enums.TeamRoleAdmin {
		adminCount, err := s.membershipRepository.CountActiveAdmins(team.ID)
		if err != nil {
			return fmt.Errorf("failed to count team admins: %w", err)
		}

		if adminCount <= 1 {
			return apperrors.Conflict("cannot demote the last team admin")
		}
	}

	if err := s.membershipRepository.UpdateMemberRole(team.ID, memberUserID, request.Role); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Team member role changed from %s to %s", existing.Role, request.Role),
		&actor.ID,
		&team.ID,
		nil,
	)

	return nil
}

func (s *MembershipService) SetReportingManager(
	team *teams_models.Team,
	memberUserID uuid.UUID,
	request *teams_dto.SetReportingManagerRequestDTO,
	actorMembership *teams_models.TeamMembership,
	actor *users_models.User,
) error {
	if !access.CheckTeamPermission(actorMembership, access.TeamActionManageRoles) {
		return apperrors.Forbidden("insufficient permissions to manage reporting lines")
	}

	existing, err := s.membershipRepository.GetMembershipByTeamAndUser(team.ID, memberUserID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}

	if existing == nil {
		return apperrors.NotFound("user is not a member of this team")
	}

	if request.ReportingManagerID != nil {
		if *request.ReportingManagerID == memberUserID {
			return apperrors.Validation("a member cannot report to themselves")
		}

		manager, err := s.membershipRepository.GetMembershipByTeamAndUser(team.ID, *request.ReportingManagerID)
		if err != nil {
			return fmt.Errorf("failed to get manager membership: %w", err)
		}

		if manager == nil || !manager.IsActiveMember() {
			return apperrors.Validation("reporting manager must be an active member of the team")
		}
	}

	if err := s.membershipRepository.UpdateReportingManager(team.ID, memberUserID, request.ReportingManagerID); err != nil {
		return fmt.Errorf("failed to update reporting manager: %w", err)
	}

	return nil
}

func (s *MembershipService) RemoveMember(
	team *teams_models.Team,
	memberUserID uuid.UUID,
	actorMembership *teams_models.TeamMembership,
	actor *users_models.User,
) error {
	if !access.CheckTeamPermission(actorMembership, access.TeamActionRemoveMembers) {
		return apperrors.Forbidden("insufficient permissions to remove members")
	}

	existing, err := s.membershipRepository.GetMembershipByTeamAndUser(team.ID, memberUserID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}

	if existing == nil {
		return apperrors.NotFound("user is not a member of this team")
	}

	if existing.Role == teams_enums.TeamRoleAdmin {
		adminCount, err := s.membershipRepository.CountActiveAdmins(team.ID)
		if err != nil {
			return fmt.Errorf("failed to count team admins: %w", err)
		}

		if adminCount <= 1 {
			return apperrors.Conflict("cannot remove the last team admin")
		}
	}

	if err := s.membershipRepository.RemoveMember(team.ID, memberUserID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		"Member removed from team",
		&actor.ID,
		&team.ID,
		nil,
	)

	return nil
}
