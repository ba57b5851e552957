package tasks_services

import (
	notifications "sprintdesk/internal/features/notifications"
	projects_services "sprintdesk/internal/features/projects/services"
	tasks_repositories "sprintdesk/internal/features/tasks/repositories"
	teams_services "sprintdesk/internal/features/teams/services"
	"sprintdesk/internal/util/logger"
)

var taskRepository = &tasks_repositories.TaskRepository{}

var taskService = &TaskService{
	taskRepository:      taskRepository,
	projectService:      projects_services.GetProjectService(),
	teamService:         teams_services.GetTeamService(),
	notificationService: notifications.GetNotificationService(),
	logger:              logger.GetLogger(),
}

func GetTaskService() *TaskService {
	return taskService
}

func GetTaskRepository() *tasks_repositories.TaskRepository {
	return taskRepository
}
