package sprints_controllers

import (
	projects_services "sprintdesk/internal/features/projects/services"
	sprints_services "sprintdesk/internal/features/sprints/services"
)

var sprintController = &SprintController{
	sprints_services.GetSprintService(),
	sprints_services.GetMovementService(),
	projects_services.GetProjectService(),
}

func GetSprintController() *SprintController {
	return sprintController
}
