package notifications_controllers

import (
	"sprintdesk/internal/features/notifications"
	teams_services "sprintdesk/internal/features/teams/services"
)

var notificationController = &NotificationController{
	notifications.GetNotificationService(),
	teams_services.GetTeamService(),
}

func GetNotificationController() *NotificationController {
	return notificationController
}
