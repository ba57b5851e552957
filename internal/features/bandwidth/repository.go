package bandwidth

import (
	"errors"
	"time"

	"sprintdesk/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BandwidthRepository struct{}

func (r *BandwidthRepository) Create(report *BandwidthReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}

	now := time.Now().UTC()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	report.UpdatedAt = now

	return storage.GetDb().Create(report).Error
}

// GetByID returns nil without error when no report exists.
func (r *BandwidthRepository) GetByID(reportID uuid.UUID) (*BandwidthReport, error) {
	var report BandwidthReport

	err := storage.GetDb().Where("id = ?", reportID).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &report, nil
}

func (r *BandwidthRepository) GetByMonth(
	teamID, userID uuid.UUID,
	year, month int,
) (*BandwidthReport, error) {
	var report BandwidthReport

	err := storage.GetDb().
		Where("team_id = ? AND user_id = ? AND year = ? AND month = ?", teamID, userID, year, month).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &report, nil
}

func (r *BandwidthRepository) Update(report *BandwidthReport) error {
	report.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Save(report).Error
}

func (r *BandwidthRepository) GetByUser(teamID, userID uuid.UUID) ([]*BandwidthReport, error) {
	reports := make([]*BandwidthReport, 0)

	err := storage.GetDb().
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Order("year DESC, month DESC").
		Find(&reports).Error

	return reports, err
}

func (r *BandwidthRepository) GetByTeamAndMonth(
	teamID uuid.UUID,
	year, month int,
) ([]*BandwidthReport, error) {
	reports := make([]*BandwidthReport, 0)

	err := storage.GetDb().
		Where("team_id = ? AND year = ? AND month = ?", teamID, year, month).
		Order("created_at ASC").
		Find(&reports).Error

	return reports, err
}

// GetUserIDsWithReport returns the team members who already have a report
// for the month, regardless of its status.
func (r *BandwidthRepository) GetUserIDsWithReport(
	teamID uuid.UUID,
	year, month int,
) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)

	err := storage.GetDb().
		Model(&BandwidthReport{}).
		Where("team_id = ? AND year = ? AND month = ?", teamID, year, month).
		Pluck("user_id", &ids).Error

	return ids, err
}

func (r *BandwidthRepository) DeleteByTeam(teamID uuid.UUID) error {
	return storage.GetDb().Where("team_id = ?", teamID).Delete(&BandwidthReport{}).Error
}
