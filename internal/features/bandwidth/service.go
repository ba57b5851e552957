package bandwidth

import (
	"fmt"
	"log/slog"
	"time"

	"sprintdesk/internal/apperrors"
	"sprintdesk/internal/features/access"
	audit_logs "sprintdesk/internal/features/audit_logs"
	notifications "sprintdesk/internal/features/notifications"
	teams_models "sprintdesk/internal/features/teams/models"
	teams_repositories "sprintdesk/internal/features/teams/repositories"
	users_models "sprintdesk/internal/features/users/models"
	dates_util "sprintdesk/internal/util/dates"

	"github.com/google/uuid"
)

type BandwidthService struct {
	bandwidthRepository      *BandwidthRepository
	teamMembershipRepository *teams_repositories.MembershipRepository
	notificationService      *notifications.NotificationService
	auditLogService          *audit_logs.AuditLogService
	logger                   *slog.Logger
}

// CreateReport opens the user's draft report for the given month. Working
// days default to the month's weekday count.
func (s *BandwidthService) CreateReport(
	team *teams_models.Team,
	request *CreateReportRequestDTO,
	user *users_models.User,
) (*BandwidthReport, error) {
	existing, err := s.bandwidthRepository.GetByMonth(team.ID, user.ID, request.Year, request.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing report: %w", err)
	}

	if existing != nil {
		return nil, apperrors.Conflict("a report for this month already exists")
	}

	totalWorkingDays := dates_util.WorkingDaysInMonth(request.Year, time.Month(request.Month))
	if request.TotalWorkingDays != nil {
		totalWorkingDays = *request.TotalWorkingDays
	}

	report := &BandwidthReport{
		ID:               uuid.New(),
		TeamID:           team.ID,
		UserID:           user.ID,
		Month:            request.Month,
		Year:             request.Year,
		TotalWorkingDays: totalWorkingDays,
		AvailableDays:    request.AvailableDays,
		Allocations:      allocationsFromRequest(request.Allocations),
		Status:           ReportStatusDraft,
	}

	if err := report.Validate(); err != nil {
		return nil, err
	}

	report.DerivePercentages()

	if err := s.bandwidthRepository.Create(report); err != nil {
		return nil, fmt.Errorf("failed to create bandwidth report: %w", err)
	}

	return report, nil
}

// UpdateReport edits the owner's draft. Rejected reports reopen as drafts.
func (s *BandwidthService) UpdateReport(
	team *teams_models.Team,
	reportID uuid.UUID,
	request *UpdateReportRequestDTO,
	user *users_models.User,
) (*BandwidthReport, error) {
	report, err := s.getTeamReport(team, reportID)
	if err != nil {
		return nil, err
	}

	if report.UserID != user.ID {
		return nil, apperrors.Forbidden("only the report's owner can edit it")
	}

	if report.Status == ReportStatusRejected {
		if err := report.ApplyReopen(); err != nil {
			return nil, err
		}
	}

	if report.Status != ReportStatusDraft {
		return nil, apperrors.Conflict("only a draft report can be edited")
	}

	if request.AvailableDays != nil {
		report.AvailableDays = *request.AvailableDays
	}

	if request.Allocations != nil {
		report.Allocations = allocationsFromRequest(request.Allocations)
	}

	if err := report.Validate(); err != nil {
		return nil, err
	}

	report.DerivePercentages()

	if err := s.bandwidthRepository.Update(report); err != nil {
		return nil, fmt.Errorf("failed to update bandwidth report: %w", err)
	}

	return report, nil
}

func (s *BandwidthService) GetReport(
	team *teams_models.Team,
	teamMembership *teams_models.TeamMembership,
	reportID uuid.UUID,
	user *users_models.User,
) (*BandwidthReport, error) {
	report, err := s.getTeamReport(team, reportID)
	if err != nil {
		return nil, err
	}

	if report.UserID != user.ID &&
		!access.CheckTeamPermission(teamMembership, access.TeamActionViewReports) {
		return nil, apperrors.Forbidden("you do not have permission to view this report")
	}

	return report, nil
}

func (s *BandwidthService) GetMyReports(
	team *teams_models.Team,
	user *users_models.User,
) (*ListReportsResponseDTO, error) {
	reports, err := s.bandwidthRepository.GetByUser(team.ID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bandwidth reports: %w", err)
	}

	return &ListReportsResponseDTO{Reports: reports}, nil
}

func (s *BandwidthService) GetTeamReports(
	team *teams_models.Team,
	teamMembership *teams_models.TeamMembership,
	year, month int,
) (*ListReportsResponseDTO, error) {
	if !access.CheckTeamPermission(teamMembership, access.TeamActionViewReports) {
		return nil, apperrors.Forbidden("you do not have permission to view team reports")
	}

	reports, err := s.bandwidthRepository.GetByTeamAndMonth(team.ID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list team bandwidth reports: %w", err)
	}

	return &ListReportsResponseDTO{Reports: reports}, nil
}

func (s *BandwidthService) SubmitReport(
	team *teams_models.Team,
	reportID uuid.UUID,
	user *users_models.User,
) (*BandwidthReport, error) {
	report, err := s.getTeamReport(team, reportID)
	if err != nil {
		return nil, err
	}

	if report.UserID != user.ID {
		return nil, apperrors.Forbidden("only the report's owner can submit it")
	}

	if err := report.ApplySubmit(time.Now()); err != nil {
		return nil, err
	}

	if err := s.bandwidthRepository.Update(report); err != nil {
		return nil, fmt.Errorf("failed to submit bandwidth report: %w", err)
	}

	return report, nil
}

// ReviewReport approves or rejects a submitted report and notifies its
// owner. Reviewers cannot review their own reports.
func (s *BandwidthService) ReviewReport(
	team *teams_models.Team,
	teamMembership *teams_models.TeamMembership,
	reportID uuid.UUID,
	approve bool,
	reason string,
	reviewer *users_models.User,
) (*BandwidthReport, error) {
	if !access.CheckTeamPermission(teamMembership, access.TeamActionApproveBandwidth) {
		return nil, apperrors.Forbidden("you do not have permission to review bandwidth reports")
	}

	report, err := s.getTeamReport(team, reportID)
	if err != nil {
		return nil, err
	}

	if report.UserID == reviewer.ID {
		return nil, apperrors.Conflict("you cannot review your own report")
	}

	if err := report.ApplyReview(approve, reviewer.ID, time.Now()); err != nil {
		return nil, err
	}

	if err := s.bandwidthRepository.Update(report); err != nil {
		return nil, fmt.Errorf("failed to review bandwidth report: %w", err)
	}

	verdict := "approved"
	if !approve {
		verdict = "rejected"
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Bandwidth report %s for %d-%02d", verdict, report.Year, report.Month),
		&reviewer.ID,
		&team.ID,
		nil,
	)

	message := fmt.Sprintf("Your bandwidth report for %d-%02d was %s", report.Year, report.Month, verdict)
	if !approve && reason != "" {
		message = fmt.Sprintf("%s: %s", message, reason)
	}

	_, err = s.notificationService.CreateNotification(&notifications.CreateNotificationParams{
		RecipientID: report.UserID,
		TeamID:      team.ID,
		Type:        notifications.NotificationTypeBandwidthReviewed,
		Title:       "Bandwidth report reviewed",
		Message:     message,
		ActorID:     &reviewer.ID,
	})
	if err != nil {
		s.logger.Error("Failed to create bandwidth review notification",
			slog.String("reportId", report.ID.String()),
			slog.String("error", err.Error()))
	}

	return report, nil
}

// MissingReportUserIDs returns the active team members who have no report
// for the month. The reminder sweep uses it.
func (s *BandwidthService) MissingReportUserIDs(teamID uuid.UUID, year, month int) ([]uuid.UUID, error) {
	members, err := s.teamMembershipRepository.GetActiveMembers(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active members: %w", err)
	}

	reported, err := s.bandwidthRepository.GetUserIDsWithReport(teamID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list reported users: %w", err)
	}

	reportedSet := make(map[uuid.UUID]bool, len(reported))
	for _, id := range reported {
		reportedSet[id] = true
	}

	missing := make([]uuid.UUID, 0)
	for _, member := range members {
		if !reportedSet[member.UserID] {
			missing = append(missing, member.UserID)
		}
	}

	return missing, nil
}

func (s *BandwidthService) OnBeforeTeamDeletion(teamID uuid.UUID) error {
	return s.bandwidthRepository.DeleteByTeam(teamID)
}

func (s *BandwidthService) getTeamReport(
	team *teams_models.Team,
	reportID uuid.UUID,
) (*BandwidthReport, error) {
	report, err := s.bandwidthRepository.GetByID(reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bandwidth report: %w", err)
	}

	if report == nil || report.TeamID != team.ID {
		return nil, apperrors.NotFound("bandwidth report not found")
	}

	return report, nil
}

func allocationsFromRequest(requested []AllocationRequestDTO) []Allocation {
	allocations := make([]Allocation, 0, len(requested))

	for _, allocation := range requested {
		allocations = append(allocations, Allocation{
			ProjectID:     allocation.ProjectID,
			AllocatedDays: allocation.AllocatedDays,
		})
	}

	return allocations
}
