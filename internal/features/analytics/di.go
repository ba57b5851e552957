package analytics

import (
	teams_services "sprintdesk/internal/features/teams/services"
)

var analyticsRepository = &AnalyticsRepository{}

var analyticsService = &AnalyticsService{
	analyticsRepository:      analyticsRepository,
	teamMembershipRepository: teams_services.GetMembershipRepository(),
}

var analyticsController = &AnalyticsController{
	analyticsService: analyticsService,
}

func GetAnalyticsService() *AnalyticsService {
	return analyticsService
}

func GetAnalyticsController() *AnalyticsController {
	return analyticsController
}
