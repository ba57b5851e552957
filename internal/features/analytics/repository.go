package analytics

import (
	"time"

	"sprintdesk/internal/storage"

	"github.com/google/uuid"
)

type AnalyticsRepository struct{}

type statusCountRow struct {
	Status string `gorm:"column:status"`
	Count  int64  `gorm:"column:count"`
}

func (r *AnalyticsRepository) CountTasksByStatus(
	teamID uuid.UUID,
	userIDs []uuid.UUID,
) (map[string]int64, error) {
	counts := make(map[string]int64)
	if len(userIDs) == 0 {
		return counts, nil
	}

	var rows []statusCountRow

	err := storage.GetDb().
		Raw(`
			SELECT status, COUNT(*) as count
			FROM tasks
			WHERE team_id = ? AND assigned_to_id IN ?
			GROUP BY status`,
			teamID, userIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}

func (r *AnalyticsRepository) CountOverdueTasks(
	teamID uuid.UUID,
	userIDs []uuid.UUID,
	now time.Time,
) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	var count int64

	err := storage.GetDb().
		Raw(`
			SELECT COUNT(*)
			FROM tasks
			WHERE team_id = ?
				AND assigned_to_id IN ?
				AND due_date IS NOT NULL
				AND due_date < ?
				AND status != 'DONE'`,
			teamID, userIDs, now).
		Scan(&count).Error

	return count, err
}

func (r *AnalyticsRepository) GetSprintSummary(teamID uuid.UUID) (*SprintSummaryDTO, error) {
	summary := &SprintSummaryDTO{}

	err := storage.GetDb().
		Raw(`
			SELECT
				COUNT(*) FILTER (WHERE status = 'ACTIVE') as active_sprints,
				COUNT(*) FILTER (WHERE status = 'COMPLETED') as completed_sprints,
				COALESCE(AVG(velocity) FILTER (WHERE status = 'COMPLETED'), 0) as average_velocity
			FROM sprints
			WHERE team_id = ?`,
			teamID).
		Scan(summary).Error

	return summary, err
}

func (r *AnalyticsRepository) CountReportsByStatus(
	teamID uuid.UUID,
	userIDs []uuid.UUID,
	year, month int,
) (map[string]int64, error) {
	counts := make(map[string]int64)
	if len(userIDs) == 0 {
		return counts, nil
	}

	var rows []statusCountRow

	err := storage.GetDb().
		Raw(`
			SELECT status, COUNT(*) as count
			FROM bandwidth_reports
			WHERE team_id = ? AND user_id IN ? AND year = ? AND month = ?
			GROUP BY status`,
			teamID, userIDs, year, month).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}

func (r *AnalyticsRepository) GetMemberStats(
	teamID uuid.UUID,
	userIDs []uuid.UUID,
	now time.Time,
) ([]*MemberStatsDTO, error) {
	stats := make([]*MemberStatsDTO, 0)
	if len(userIDs) == 0 {
		return stats, nil
	}

	err := storage.GetDb().
		Raw(`
			SELECT
				u.id as user_id,
				u.email as user_email,
				COUNT(t.id) as total_tasks,
				COUNT(t.id) FILTER (WHERE t.status = 'DONE') as completed_tasks,
				COUNT(t.id) FILTER (WHERE t.due_date IS NOT NULL AND t.due_date < ? AND t.status != 'DONE') as overdue_tasks,
				COALESCE(SUM(t.story_points), 0) as total_story_points,
				COALESCE(SUM(t.story_points) FILTER (WHERE t.status = 'DONE'), 0) as completed_story_points
			FROM users u
			LEFT JOIN tasks t ON t.assigned_to_id = u.id AND t.team_id = ?
			WHERE u.id IN ?
			GROUP BY u.id, u.email
			ORDER BY u.email ASC`,
			now, teamID, userIDs).
		Scan(&stats).Error

	return stats, err
}
