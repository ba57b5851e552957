package access

type TeamAction string

const (
	TeamActionManageTeam       TeamAction = "MANAGE_TEAM"
	TeamActionDeleteTeam       TeamAction = "DELETE_TEAM"
	TeamActionInviteMembers    TeamAction = "INVITE_MEMBERS"
	TeamActionRemoveMembers    TeamAction = "REMOVE_MEMBERS"
	TeamActionManageRoles      TeamAction = "MANAGE_ROLES"
	TeamActionCreateProject    TeamAction = "CREATE_PROJECT"
	TeamActionViewTeam         TeamAction = "VIEW_TEAM"
	TeamActionViewReports      TeamAction = "VIEW_REPORTS"
	TeamActionApproveBandwidth TeamAction = "APPROVE_BANDWIDTH"
	TeamActionViewAnalytics    TeamAction = "VIEW_ANALYTICS"
)

type ProjectAction string

const (
	ProjectActionViewProject   ProjectAction = "VIEW_PROJECT"
	ProjectActionEditProject   ProjectAction = "EDIT_PROJECT"
	ProjectActionDeleteProject ProjectAction = "DELETE_PROJECT"
	ProjectActionManageSprints ProjectAction = "MANAGE_SPRINTS"
	ProjectActionCreateTasks   ProjectAction = "CREATE_TASKS"
	ProjectActionEditTasks     ProjectAction = "EDIT_TASKS"
	ProjectActionDeleteTasks   ProjectAction = "DELETE_TASKS"
	ProjectActionAssignTasks   ProjectAction = "ASSIGN_TASKS"
	ProjectActionInviteMembers ProjectAction = "INVITE_MEMBERS"
	ProjectActionRemoveMembers ProjectAction = "REMOVE_MEMBERS"
)
