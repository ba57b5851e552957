package teams_services

import (
	"errors"
	"fmt"
	"time"

	"sprintdesk/internal/apperrors"
	audit_logs "sprintdesk/internal/features/audit_logs"
	"sprintdesk/internal/features/access"
	teams_dto "sprintdesk/internal/features/teams/dto"
	teams_enums "sprintdesk/internal/features/teams/enums"
	teams_interfaces "sprintdesk/internal/features/teams/interfaces"
	teams_models "sprintdesk/internal/features/teams/models"
	teams_repositories "sprintdesk/internal/features/teams/repositories"
	users_models "sprintdesk/internal/features/users/models"
	cache_utils "sprintdesk/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type TeamService struct {
	teamRepository        *teams_repositories.TeamRepository
	membershipRepository  *teams_repositories.MembershipRepository
	auditLogService       *audit_logs.AuditLogService
	teamDeletionListeners []teams_interfaces.TeamDeletionListener

	teamCacheUtil *cache_utils.CacheUtil[teams_models.Team]
	singleflight  singleflight.Group // Prevents thundering herd on DB calls
}

func (s *TeamService) AddTeamDeletionListener(listener teams_interfaces.TeamDeletionListener) {
	s.teamDeletionListeners = append(s.teamDeletionListeners, listener)
}

// CreateTeam creates the team and makes the creator its first ADMIN member.
func (s *TeamService) CreateTeam(
	request *teams_dto.CreateTeamRequestDTO,
	creator *users_models.User,
) (*teams_dto.TeamResponseDTO, error) {
	team := &teams_models.Team{
		ID:          uuid.New(),
		Name:        request.Name,
		Description: request.Description,
		OwnerID:     creator.ID,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.teamRepository.CreateTeam(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.teamCacheUtil.Set(team.ID.String(), team)

	membership := &teams_models.TeamMembership{
		TeamID:   team.ID,
		UserID:   creator.ID,
		Role:     teams_enums.TeamRoleAdmin,
		Status:   teams_enums.MembershipStatusActive,
		JoinedAt: time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to create team membership: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Team created: %s", team.Name),
		&creator.ID,
		&team.ID,
		nil,
	)

	adminRole := teams_enums.TeamRoleAdmin
	return &teams_dto.TeamResponseDTO{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		OwnerID:     team.OwnerID,
		IsActive:    team.IsActive,
		CreatedAt:   team.CreatedAt,
		UserRole:    &adminRole,
	}, nil
}

func (s *TeamService) GetUserTeams(user *users_models.User) (*teams_dto.ListTeamsResponseDTO, error) {
	teams, err := s.teamRepository.GetTeamsWithRolesByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user teams: %w", err)
	}

	return &teams_dto.ListTeamsResponseDTO{Teams: teams}, nil
}

func (s *TeamService) UpdateTeam(
	team *teams_models.Team,
	request *teams_dto.UpdateTeamRequestDTO,
	membership *teams_models.TeamMembership,
	actor *users_models.User,
) (*teams_models.Team, error) {
	if !access.CheckTeamPermission(membership, access.TeamActionManageTeam) {
		return nil, apperrors.Forbidden("insufficient permissions to update team")
	}

	team.Name = request.Name
	team.Description = request.Description

	if err := s.teamRepository.UpdateTeam(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	s.teamCacheUtil.Invalidate(team.ID.String())

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Team updated: %s", team.Name),
		&actor.ID,
		&team.ID,
		nil,
	)

	return team, nil
}

// DeleteTeam runs the deletion cascade in listener registration order, then
// removes memberships and finally the team row itself. The first listener
// failure aborts the cascade so nothing downstream is orphaned silently.
func (s *TeamService) DeleteTeam(
	team *teams_models.Team,
	membership *teams_models.TeamMembership,
	actor *users_models.User,
) error {
	if !access.CheckTeamPermission(membership, access.TeamActionDeleteTeam) {
		return apperrors.Forbidden("insufficient permissions to delete team")
	}

	for _, listener := range s.teamDeletionListeners {
		if err := listener.OnBeforeTeamDeletion(team.ID); err != nil {
			return fmt.Errorf("team deletion cascade failed: %w", err)
		}
	}

	if err := s.membershipRepository.DeleteByTeam(team.ID); err != nil {
		return fmt.Errorf("failed to delete team memberships: %w", err)
	}

	if err := s.teamRepository.DeleteTeam(team.ID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	s.teamCacheUtil.Invalidate(team.ID.String())

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Team deleted: %s", team.Name),
		&actor.ID,
		&team.ID,
		nil,
	)

	return nil
}

func (s *TeamService) GetTeamWithCache(teamID uuid.UUID) (*teams_models.Team, error) {
	teamIDStr := teamID.String()

	if cachedTeam := s.teamCacheUtil.Get(teamIDStr); cachedTeam != nil {
		return cachedTeam, nil
	}

	result, err, _ := s.singleflight.Do(teamIDStr, func() (any, error) {
		return s.teamRepository.GetTeamByID(teamID)
	})
	if err != nil {
		return nil, err
	}

	team, ok := result.(*teams_models.Team)
	if !ok {
		return nil, errors.New("failed to cast result to Team")
	}

	if team != nil {
		s.teamCacheUtil.Set(teamIDStr, team)
	}

	return team, nil
}

func (s *TeamService) GetTeamByID(teamID uuid.UUID) (*teams_models.Team, error) {
	return s.teamRepository.GetTeamByID(teamID)
}

func (s *TeamService) GetMembership(teamID, userID uuid.UUID) (*teams_models.TeamMembership, error) {
	return s.membershipRepository.GetMembershipByTeamAndUser(teamID, userID)
}
