package teams_repositories

import (
	"errors"
	"time"

	teams_dto "sprintdesk/internal/features/teams/dto"
	teams_models "sprintdesk/internal/features/teams/models"
	"sprintdesk/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamRepository struct{}

func (r *TeamRepository) CreateTeam(team *teams_models.Team) error {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}

	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(team).Error
}

func (r *TeamRepository) GetTeamByID(teamID uuid.UUID) (*teams_models.Team, error) {
	var team teams_models.Team

	err := storage.GetDb().Where("id = ?", teamID).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &team, nil
}

func (r *TeamRepository) GetActiveTeams() ([]*teams_models.Team, error) {
	teams := make([]*teams_models.Team, 0)

	err := storage.GetDb().Where("is_active = ?", true).Find(&teams).Error

	return teams, err
}

func (r *TeamRepository) UpdateTeam(team *teams_models.Team) error {
	return storage.GetDb().Save(team).Error
}

func (r *TeamRepository) DeleteTeam(teamID uuid.UUID) error {
	return storage.GetDb().Where("id = ?", teamID).Delete(&teams_models.Team{}).Error
}

func (r *TeamRepository) GetTeamsWithRolesByUserID(userID uuid.UUID) ([]teams_dto.TeamResponseDTO, error) {
	results := make([]teams_dto.TeamResponseDTO, 0)

	err := storage.GetDb().
		Table("teams t").
		Select("t.id, t.name, t.description, t.owner_id, t.is_active, t.created_at, tm.role as user_role").
		Joins("JOIN team_memberships tm ON t.id = tm.team_id").
		Where("tm.user_id = ? AND tm.status = ?", userID, "ACTIVE").
		Order("t.name ASC").
		Scan(&results).Error

	return results, err
}
