package analytics

import (
	"fmt"
	"time"

	teams_models "sprintdesk/internal/features/teams/models"
	teams_repositories "sprintdesk/internal/features/teams/repositories"

	"github.com/google/uuid"
)

type AnalyticsService struct {
	analyticsRepository      *AnalyticsRepository
	teamMembershipRepository *teams_repositories.MembershipRepository
}

// GetDashboard aggregates task, sprint and bandwidth counters for the
// requester's visible slice of the team.
func (s *AnalyticsService) GetDashboard(
	team *teams_models.Team,
	teamMembership *teams_models.TeamMembership,
) (*DashboardResponseDTO, error) {
	visibleIDs, err := s.visibleUserIDs(teamMembership)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	tasksByStatus, err := s.analyticsRepository.CountTasksByStatus(team.ID, visibleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	overdueTasks, err := s.analyticsRepository.CountOverdueTasks(team.ID, visibleIDs, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue tasks: %w", err)
	}

	sprintSummary, err := s.analyticsRepository.GetSprintSummary(team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize sprints: %w", err)
	}

	reportsByStatus, err := s.analyticsRepository.CountReportsByStatus(
		team.ID, visibleIDs, now.Year(), int(now.Month()))
	if err != nil {
		return nil, fmt.Errorf("failed to count bandwidth reports: %w", err)
	}

	return &DashboardResponseDTO{
		VisibleMembers:  len(visibleIDs),
		TasksByStatus:   tasksByStatus,
		OverdueTasks:    overdueTasks,
		Sprints:         *sprintSummary,
		ReportsByStatus: reportsByStatus,
		ReportingYear:   now.Year(),
		ReportingMonth:  int(now.Month()),
	}, nil
}

// GetMemberStats returns per-member task counters for the requester's
// visible slice of the team.
func (s *AnalyticsService) GetMemberStats(
	team *teams_models.Team,
	teamMembership *teams_models.TeamMembership,
) (*MemberStatsResponseDTO, error) {
	visibleIDs, err := s.visibleUserIDs(teamMembership)
	if err != nil {
		return nil, err
	}

	stats, err := s.analyticsRepository.GetMemberStats(team.ID, visibleIDs, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to load member statistics: %w", err)
	}

	return &MemberStatsResponseDTO{Members: stats, Total: len(stats)}, nil
}

func (s *AnalyticsService) visibleUserIDs(teamMembership *teams_models.TeamMembership) ([]uuid.UUID, error) {
	activeMembers, err := s.teamMembershipRepository.GetActiveMembers(teamMembership.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active members: %w", err)
	}

	return VisibleUserIDs(teamMembership.UserID, teamMembership.Role, activeMembers), nil
}
