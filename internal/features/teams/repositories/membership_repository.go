package teams_repositories

import (
	"errors"
	"time"

	teams_dto "sprintdesk/internal/features/teams/dto"
	teams_enums "sprintdesk/internal/features/teams/enums"
	teams_models "sprintdesk/internal/features/teams/models"
	"sprintdesk/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct{}

func (r *MembershipRepository) CreateMembership(membership *teams_models.TeamMembership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.JoinedAt.IsZero() {
		membership.JoinedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(membership).Error
}

func (r *MembershipRepository) GetMembershipByTeamAndUser(
	teamID, userID uuid.UUID,
) (*teams_models.TeamMembership, error) {
	var membership teams_models.TeamMembership

	err := storage.GetDb().
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

func (r *MembershipRepository) GetTeamMembers(teamID uuid.UUID) ([]*teams_dto.TeamMemberResponseDTO, error) {
	var members []*teams_dto.TeamMemberResponseDTO

	err := storage.GetDb().
		Table("team_memberships tm").
		Select("tm.id, tm.user_id, u.email, tm.role, tm.status, tm.reporting_manager_id, tm.joined_at").
		Joins("JOIN users u ON tm.user_id = u.id").
		Where("tm.team_id = ?", teamID).
		Order("tm.joined_at ASC").
		Scan(&members).Error

	return members, err
}

func (r *MembershipRepository) GetActiveMembers(teamID uuid.UUID) ([]*teams_models.TeamMembership, error) {
	var members []*teams_models.TeamMembership

	err := storage.GetDb().
		Where("team_id = ? AND status = ?", teamID, teams_enums.MembershipStatusActive).
		Find(&members).Error

	return members, err
}

func (r *MembershipRepository) UpdateMemberRole(teamID, userID uuid.UUID, role teams_enums.TeamRole) error {
	return storage.GetDb().
		Model(&teams_models.TeamMembership{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Update("role", role).Error
}

func (r *MembershipRepository) UpdateMemberStatus(
	teamID, userID uuid.UUID,
	status teams_enums.MembershipStatus,
) error {
	return storage.GetDb().
		Model(&teams_models.TeamMembership{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Update("status", status).Error
}

func (r *MembershipRepository) UpdateReportingManager(
	teamID, userID uuid.UUID,
	reportingManagerID *uuid.UUID,
) error {
	return storage.GetDb().
		Model(&teams_models.TeamMembership{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Update("reporting_manager_id", reportingManagerID).Error
}

// RemoveMember is a hard delete: no soft-delete trail is kept for team
// membership removal.
func (r *MembershipRepository) RemoveMember(teamID, userID uuid.UUID) error {
	return storage.GetDb().
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&teams_models.TeamMembership{}).Error
}

func (r *MembershipRepository) CountActiveAdmins(teamID uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&teams_models.TeamMembership{}).
		Where("team_id = ? AND role = ? AND status = ?",
			teamID, teams_enums.TeamRoleAdmin, teams_enums.MembershipStatusActive).
		Count(&count).Error

	return count, err
}

func (r *MembershipRepository) DeleteByTeam(teamID uuid.UUID) error {
	return storage.GetDb().
		Where("team_id = ?", teamID).
		Delete(&teams_models.TeamMembership{}).Error
}
