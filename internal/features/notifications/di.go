package notifications

import (
	cache_utils "sprintdesk/internal/util/cache"
	"sprintdesk/internal/util/logger"
)

var notificationRepository = &NotificationRepository{}

var notificationBus = NewBus()

var notificationService = &NotificationService{
	notificationRepository,
	cache_utils.NewValkeyQueueService(),
	notificationBus,
	logger.GetLogger(),
}

func GetNotificationService() *NotificationService {
	return notificationService
}
