package projects_repositories

import (
	"errors"
	"time"

	projects_dto "sprintdesk/internal/features/projects/dto"
	projects_enums "sprintdesk/internal/features/projects/enums"
	projects_models "sprintdesk/internal/features/projects/models"
	"sprintdesk/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct{}

func (r *MembershipRepository) CreateMembership(membership *projects_models.ProjectMembership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(membership).Error
}

// GetMembershipByProjectAndUser returns nil without error when no row exists.
func (r *MembershipRepository) GetMembershipByProjectAndUser(
	projectID, userID uuid.UUID,
) (*projects_models.ProjectMembership, error) {
	var membership projects_models.ProjectMembership

	err := storage.GetDb().
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

func (r *MembershipRepository) GetProjectMembers(
	projectID uuid.UUID,
) ([]*projects_dto.ProjectMemberResponseDTO, error) {
	members := make([]*projects_dto.ProjectMemberResponseDTO, 0)

	err := storage.GetDb().
		Table("project_memberships pm").
		Select("pm.id, pm.user_id, u.email, pm.role, pm.workload, pm.created_at").
		Joins("JOIN users u ON pm.user_id = u.id").
		Where("pm.project_id = ?", projectID).
		Order("pm.created_at ASC").
		Scan(&members).Error

	return members, err
}

func (r *MembershipRepository) GetMembershipsByUser(
	userID uuid.UUID,
) ([]*projects_models.ProjectMembership, error) {
	memberships := make([]*projects_models.ProjectMembership, 0)

	err := storage.GetDb().
		Where("user_id = ?", userID).
		Find(&memberships).Error

	return memberships, err
}

func (r *MembershipRepository) UpdateMemberRole(
	projectID, userID uuid.UUID,
	role projects_enums.ProjectRole,
) error {
	return storage.GetDb().
		Model(&projects_models.ProjectMembership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Update("role", role).Error
}

func (r *MembershipRepository) UpdateMemberWorkload(projectID, userID uuid.UUID, workload int) error {
	return storage.GetDb().
		Model(&projects_models.ProjectMembership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Update("workload", workload).Error
}

func (r *MembershipRepository) RemoveMember(projectID, userID uuid.UUID) error {
	return storage.GetDb().
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&projects_models.ProjectMembership{}).Error
}

func (r *MembershipRepository) CountOwners(projectID uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&projects_models.ProjectMembership{}).
		Where("project_id = ? AND role = ?", projectID, projects_enums.ProjectRoleOwner).
		Count(&count).Error

	return count, err
}

func (r *MembershipRepository) DeleteByProject(projectID uuid.UUID) error {
	return storage.GetDb().
		Where("project_id = ?", projectID).
		Delete(&projects_models.ProjectMembership{}).Error
}
