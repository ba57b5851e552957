package sprints_services

import (
	audit_logs "sprintdesk/internal/features/audit_logs"
	notifications "sprintdesk/internal/features/notifications"
	projects_services "sprintdesk/internal/features/projects/services"
	sprints_repositories "sprintdesk/internal/features/sprints/repositories"
	tasks_services "sprintdesk/internal/features/tasks/services"
	"sprintdesk/internal/util/logger"
)

var sprintRepository = &sprints_repositories.SprintRepository{}

var sprintService = &SprintService{
	sprintRepository,
	tasks_services.GetTaskRepository(),
	projects_services.GetProjectService(),
	projects_services.GetMembershipRepository(),
	notifications.GetNotificationService(),
	audit_logs.GetAuditLogService(),
	logger.GetLogger(),
}

var movementService = &MovementService{
	sprintRepository,
	tasks_services.GetTaskRepository(),
	projects_services.GetProjectService(),
	sprintService,
}

func GetSprintService() *SprintService {
	return sprintService
}

func GetMovementService() *MovementService {
	return movementService
}

// SetupDependencies wires the cross-feature hooks that cannot be expressed
// as package-level values without import cycles.
func SetupDependencies() {
	tasks_services.GetTaskService().SetMetricsRefresher(sprintService)
	projects_services.GetProjectService().AddProjectDeletionListener(tasks_services.GetTaskService())
	projects_services.GetProjectService().AddProjectDeletionListener(sprintService)
}
