package reminders

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sprintdesk/internal/config"
	"sprintdesk/internal/features/bandwidth"
	notifications "sprintdesk/internal/features/notifications"
	tasks_repositories "sprintdesk/internal/features/tasks/repositories"
	teams_repositories "sprintdesk/internal/features/teams/repositories"

	"github.com/google/uuid"
)

// ReminderBackgroundService runs the scheduled sweeps: bandwidth report
// reminders, overdue task reminders, and the notification queue drainer.
// Both sweeps are idempotent; a skipped or repeated run sends nothing twice
// because each recipient is gated on an already-existing notification.
type ReminderBackgroundService struct {
	teamRepository      *teams_repositories.TeamRepository
	taskRepository      *tasks_repositories.TaskRepository
	bandwidthService    *bandwidth.BandwidthService
	notificationService *notifications.NotificationService
	logger              *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

const (
	bandwidthReminderInterval = 6 * time.Hour
	overdueTaskInterval       = 1 * time.Hour
	queueDrainInterval        = 1 * time.Second

	queueDrainBatchSize = 100

	// Overdue reminders repeat at most once per day per assignee.
	overdueReminderWindow = 24 * time.Hour
)

func (s *ReminderBackgroundService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("Starting reminder background workers",
		slog.Duration("bandwidthInterval", bandwidthReminderInterval),
		slog.Duration("overdueInterval", overdueTaskInterval))

	s.wg.Add(3)
	go s.bandwidthReminderWorker()
	go s.overdueTaskWorker()
	go s.queueDrainWorker()
}

func (s *ReminderBackgroundService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}

	s.wg.Wait()
}

func (s *ReminderBackgroundService) ExecuteAllTasksForTest() error {
	if err := s.sendBandwidthReminders(); err != nil {
		return err
	}

	if err := s.sendOverdueTaskReminders(); err != nil {
		return err
	}

	_, err := s.notificationService.ProcessQueuedNotifications(queueDrainBatchSize)

	return err
}

func (s *ReminderBackgroundService) bandwidthReminderWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(bandwidthReminderInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Bandwidth reminder worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Bandwidth reminder worker shutting down")
			return

		case <-ticker.C:
			if err := s.sendBandwidthReminders(); err != nil {
				s.logger.Error("Error during bandwidth reminder sweep",
					slog.String("error", err.Error()))
			}
		}
	}
}

func (s *ReminderBackgroundService) overdueTaskWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(overdueTaskInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Overdue task worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Overdue task worker shutting down")
			return

		case <-ticker.C:
			if err := s.sendOverdueTaskReminders(); err != nil {
				s.logger.Error("Error during overdue task sweep",
					slog.String("error", err.Error()))
			}
		}
	}
}

func (s *ReminderBackgroundService) queueDrainWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(queueDrainInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Notification queue worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Notification queue worker shutting down")
			return

		case <-ticker.C:
			if _, err := s.notificationService.ProcessQueuedNotifications(queueDrainBatchSize); err != nil {
				s.logger.Error("Error draining notification queue",
					slog.String("error", err.Error()))
			}
		}
	}
}

// sendBandwidthReminders nudges every active member who has not opened a
// report for the current month yet. One reminder per member per month.
func (s *ReminderBackgroundService) sendBandwidthReminders() error {
	teams, err := s.teamRepository.GetActiveTeams()
	if err != nil {
		return fmt.Errorf("failed to list active teams: %w", err)
	}

	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())
	monthStart := time.Date(year, now.Month(), 1, 0, 0, 0, 0, time.UTC)

	paramsList := make([]*notifications.CreateNotificationParams, 0)
	sweepFailures := 0

	for _, team := range teams {
		missingUserIDs, err := s.bandwidthService.MissingReportUserIDs(team.ID, year, month)
		if err != nil {
			sweepFailures++
			s.logger.Error("Failed to find members without bandwidth reports",
				slog.String("teamId", team.ID.String()),
				slog.String("error", err.Error()))
			continue
		}

		for _, userID := range missingUserIDs {
			alreadyReminded, err := s.notificationService.HasRecentNotification(
				userID, team.ID, notifications.NotificationTypeBandwidthReminder, monthStart)
			if err != nil {
				sweepFailures++
				s.logger.Error("Failed to check for an existing bandwidth reminder",
					slog.String("userId", userID.String()),
					slog.String("error", err.Error()))
				continue
			}

			if alreadyReminded {
				continue
			}

			paramsList = append(paramsList, &notifications.CreateNotificationParams{
				RecipientID: userID,
				TeamID:      team.ID,
				Type:        notifications.NotificationTypeBandwidthReminder,
				Title:       "Bandwidth report due",
				Message: fmt.Sprintf(
					"You have not submitted your bandwidth report for %s %d yet.",
					now.Month().String(), year),
				ActionURL: fmt.Sprintf("/teams/%s/bandwidth", team.ID.String()),
			})
		}
	}

	if err := s.notificationService.EnqueueNotifications(paramsList); err != nil {
		return fmt.Errorf("failed to enqueue bandwidth reminders: %w", err)
	}

	s.logger.Info("Bandwidth reminder sweep completed",
		slog.Int("teams", len(teams)),
		slog.Int("remindersQueued", len(paramsList)),
		slog.Int("failures", sweepFailures))

	if sweepFailures > 0 {
		return fmt.Errorf("bandwidth reminder sweep had %d failures", sweepFailures)
	}

	return nil
}

// sendOverdueTaskReminders nudges assignees of tasks past their due date,
// at most once per reminder window.
func (s *ReminderBackgroundService) sendOverdueTaskReminders() error {
	now := time.Now().UTC()

	overdueTasks, err := s.taskRepository.GetOverdueTasks(now)
	if err != nil {
		return fmt.Errorf("failed to list overdue tasks: %w", err)
	}

	windowStart := now.Add(-overdueReminderWindow)
	paramsList := make([]*notifications.CreateNotificationParams, 0)
	sweepFailures := 0
	remindedAssignees := make(map[uuid.UUID]bool)

	for _, task := range overdueTasks {
		assigneeID := *task.AssignedToID

		if remindedAssignees[assigneeID] {
			continue
		}

		alreadyReminded, err := s.notificationService.HasRecentNotification(
			assigneeID, task.TeamID, notifications.NotificationTypeTaskOverdue, windowStart)
		if err != nil {
			sweepFailures++
			s.logger.Error("Failed to check for an existing overdue reminder",
				slog.String("userId", assigneeID.String()),
				slog.String("error", err.Error()))
			continue
		}

		if alreadyReminded {
			remindedAssignees[assigneeID] = true
			continue
		}

		taskID := task.ID
		projectID := task.ProjectID

		paramsList = append(paramsList, &notifications.CreateNotificationParams{
			RecipientID:      assigneeID,
			TeamID:           task.TeamID,
			Type:             notifications.NotificationTypeTaskOverdue,
			Title:            "Task overdue",
			Message:          fmt.Sprintf("Task %q is past its due date.", task.Title),
			RelatedTaskID:    &taskID,
			RelatedProjectID: &projectID,
			ActionURL: fmt.Sprintf("/projects/%s/tasks/%s",
				task.ProjectID.String(), task.ID.String()),
		})
		remindedAssignees[assigneeID] = true
	}

	if err := s.notificationService.EnqueueNotifications(paramsList); err != nil {
		return fmt.Errorf("failed to enqueue overdue reminders: %w", err)
	}

	s.logger.Info("Overdue task sweep completed",
		slog.Int("overdueTasks", len(overdueTasks)),
		slog.Int("remindersQueued", len(paramsList)),
		slog.Int("failures", sweepFailures))

	if sweepFailures > 0 {
		return fmt.Errorf("overdue task sweep had %d failures", sweepFailures)
	}

	return nil
}
