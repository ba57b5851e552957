package tasks_controllers

import (
	projects_services "sprintdesk/internal/features/projects/services"
	tasks_services "sprintdesk/internal/features/tasks/services"
)

var taskController = &TaskController{
	tasks_services.GetTaskService(),
	projects_services.GetProjectService(),
}

func GetTaskController() *TaskController {
	return taskController
}
