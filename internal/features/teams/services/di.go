package teams_services

import (
	"sprintdesk/internal/cache"
	"sprintdesk/internal/features/audit_logs"
	notifications "sprintdesk/internal/features/notifications"
	teams_interfaces "sprintdesk/internal/features/teams/interfaces"
	teams_models "sprintdesk/internal/features/teams/models"
	teams_repositories "sprintdesk/internal/features/teams/repositories"
	users_services "sprintdesk/internal/features/users/services"
	cache_utils "sprintdesk/internal/util/cache"

	"golang.org/x/sync/singleflight"
)

var teamRepository = &teams_repositories.TeamRepository{}
var membershipRepository = &teams_repositories.MembershipRepository{}

var teamService = &TeamService{
	teamRepository,
	membershipRepository,
	audit_logs.GetAuditLogService(),
	[]teams_interfaces.TeamDeletionListener{},
	cache_utils.NewCacheUtil[teams_models.Team](cache.GetCache(), "sd_team:"),
	singleflight.Group{},
}

var membershipService = &MembershipService{
	membershipRepository,
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
	notifications.GetNotificationService(),
}

func GetTeamService() *TeamService {
	return teamService
}

func GetMembershipService() *MembershipService {
	return membershipService
}

func GetMembershipRepository() *teams_repositories.MembershipRepository {
	return membershipRepository
}
