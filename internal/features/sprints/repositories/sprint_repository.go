package sprints_repositories

import (
	"errors"
	"time"

	sprints_enums "sprintdesk/internal/features/sprints/enums"
	sprints_models "sprintdesk/internal/features/sprints/models"
	"sprintdesk/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SprintRepository struct{}

func (r *SprintRepository) CreateSprint(sprint *sprints_models.Sprint) error {
	if sprint.ID == uuid.Nil {
		sprint.ID = uuid.New()
	}

	if sprint.CreatedAt.IsZero() {
		sprint.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(sprint).Error
}

// GetSprintByID returns nil without error when no sprint exists.
func (r *SprintRepository) GetSprintByID(sprintID uuid.UUID) (*sprints_models.Sprint, error) {
	var sprint sprints_models.Sprint

	err := storage.GetDb().Where("id = ?", sprintID).First(&sprint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &sprint, nil
}

func (r *SprintRepository) UpdateSprint(sprint *sprints_models.Sprint) error {
	return storage.GetDb().Save(sprint).Error
}

func (r *SprintRepository) DeleteSprint(sprintID uuid.UUID) error {
	return storage.GetDb().Delete(&sprints_models.Sprint{}, sprintID).Error
}

func (r *SprintRepository) GetSprintsByProject(projectID uuid.UUID) ([]*sprints_models.Sprint, error) {
	sprints := make([]*sprints_models.Sprint, 0)

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("start_date DESC").
		Find(&sprints).Error

	return sprints, err
}

func (r *SprintRepository) GetSprintIDsByProject(projectID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)

	err := storage.GetDb().
		Model(&sprints_models.Sprint{}).
		Where("project_id = ?", projectID).
		Pluck("id", &ids).Error

	return ids, err
}

// GetLatestCompletedSprint returns the project's most recently completed
// sprint, or nil when none exists. Used for the carry-over listing.
func (r *SprintRepository) GetLatestCompletedSprint(
	projectID uuid.UUID,
) (*sprints_models.Sprint, error) {
	var sprint sprints_models.Sprint

	err := storage.GetDb().
		Where("project_id = ? AND status = ?", projectID, sprints_enums.SprintStatusCompleted).
		Order("actual_end_date DESC").
		First(&sprint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &sprint, nil
}

func (r *SprintRepository) DeleteByProject(projectID uuid.UUID) error {
	return storage.GetDb().
		Where("project_id = ?", projectID).
		Delete(&sprints_models.Sprint{}).Error
}
