package reminders

import (
	"sprintdesk/internal/features/bandwidth"
	notifications "sprintdesk/internal/features/notifications"
	tasks_repositories "sprintdesk/internal/features/tasks/repositories"
	teams_repositories "sprintdesk/internal/features/teams/repositories"
	"sprintdesk/internal/util/logger"
)

var reminderBackgroundService = &ReminderBackgroundService{
	teamRepository:      &teams_repositories.TeamRepository{},
	taskRepository:      &tasks_repositories.TaskRepository{},
	bandwidthService:    bandwidth.GetBandwidthService(),
	notificationService: notifications.GetNotificationService(),
	logger:              logger.GetLogger(),
}

func GetReminderBackgroundService() *ReminderBackgroundService {
	return reminderBackgroundService
}
