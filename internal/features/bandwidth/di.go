package bandwidth

import (
	audit_logs "sprintdesk/internal/features/audit_logs"
	notifications "sprintdesk/internal/features/notifications"
	teams_services "sprintdesk/internal/features/teams/services"
	"sprintdesk/internal/util/logger"
)

var bandwidthRepository = &BandwidthRepository{}

var bandwidthService = &BandwidthService{
	bandwidthRepository:      bandwidthRepository,
	teamMembershipRepository: teams_services.GetMembershipRepository(),
	notificationService:      notifications.GetNotificationService(),
	auditLogService:          audit_logs.GetAuditLogService(),
	logger:                   logger.GetLogger(),
}

var bandwidthController = &BandwidthController{
	bandwidthService: bandwidthService,
}

func GetBandwidthService() *BandwidthService {
	return bandwidthService
}

func GetBandwidthController() *BandwidthController {
	return bandwidthController
}
