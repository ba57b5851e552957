package projects_repositories

import (
	"errors"
	"time"

	projects_dto "sprintdesk/internal/features/projects/dto"
	projects_models "sprintdesk/internal/features/projects/models"
	"sprintdesk/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProject(project *projects_models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(project).Error
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	err := storage.GetDb().Where("id = ?", projectID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) UpdateProject(project *projects_models.Project) error {
	return storage.GetDb().Save(project).Error
}

func (r *ProjectRepository) DeleteProject(projectID uuid.UUID) error {
	return storage.GetDb().Delete(&projects_models.Project{}, projectID).Error
}

func (r *ProjectRepository) GetProjectsByTeam(teamID uuid.UUID) ([]*projects_models.Project, error) {
	projects := make([]*projects_models.Project, 0)

	err := storage.GetDb().
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&projects).Error

	return projects, err
}

// GetProjectsWithRolesByUser returns the team's projects the user belongs to,
// annotated with the user's project role.
func (r *ProjectRepository) GetProjectsWithRolesByUser(
	teamID, userID uuid.UUID,
) ([]projects_dto.ProjectResponseDTO, error) {
	results := make([]projects_dto.ProjectResponseDTO, 0)

	err := storage.GetDb().
		Table("projects p").
		Select(`p.id, p.team_id, p.name, p.description, p.status, p.team_lead_id,
			p.active_sprint_id, p.created_by, p.created_at, pm.role as user_role`).
		Joins("JOIN project_memberships pm ON p.id = pm.project_id").
		Where("p.team_id = ? AND pm.user_id = ?", teamID, userID).
		Order("p.name ASC").
		Scan(&results).Error

	return results, err
}

// ClaimActiveSprint conditionally points the project at the sprint. The
// update succeeds only while active_sprint_id is NULL, so two concurrent
// sprint starts cannot both win.
func (r *ProjectRepository) ClaimActiveSprint(projectID, sprintID uuid.UUID) (bool, error) {
	result := storage.GetDb().
		Model(&projects_models.Project{}).
		Where("id = ? AND active_sprint_id IS NULL", projectID).
		Update("active_sprint_id", sprintID)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// ReleaseActiveSprint clears the pointer only if the sprint still holds it.
func (r *ProjectRepository) ReleaseActiveSprint(projectID, sprintID uuid.UUID) error {
	return storage.GetDb().
		Model(&projects_models.Project{}).
		Where("id = ? AND active_sprint_id = ?", projectID, sprintID).
		Update("active_sprint_id", nil).Error
}
