package projects_services

import (
	audit_logs "sprintdesk/internal/features/audit_logs"
	projects_interfaces "sprintdesk/internal/features/projects/interfaces"
	projects_models "sprintdesk/internal/features/projects/models"
	projects_repositories "sprintdesk/internal/features/projects/repositories"
	teams_services "sprintdesk/internal/features/teams/services"
	users_services "sprintdesk/internal/features/users/services"
	"sprintdesk/internal/cache"
	cache_utils "sprintdesk/internal/util/cache"

	"golang.org/x/sync/singleflight"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var membershipRepository = &projects_repositories.MembershipRepository{}

var projectService = &ProjectService{
	projectRepository,
	membershipRepository,
	audit_logs.GetAuditLogService(),
	[]projects_interfaces.ProjectDeletionListener{},
	cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache(), "sd_project:"),
	singleflight.Group{},
}

var membershipService = &MembershipService{
	membershipRepository,
	projectService,
	teams_services.GetTeamService(),
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetMembershipService() *MembershipService {
	return membershipService
}

func GetMembershipRepository() *projects_repositories.MembershipRepository {
	return membershipRepository
}
