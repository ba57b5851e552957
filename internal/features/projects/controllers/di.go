package projects_controllers

import (
	projects_services "sprintdesk/internal/features/projects/services"
)

var projectController = &ProjectController{
	projects_services.GetProjectService(),
}

var membershipController = &MembershipController{
	projects_services.GetMembershipService(),
	projects_services.GetProjectService(),
}

func GetProjectController() *ProjectController {
	return projectController
}

func GetMembershipController() *MembershipController {
	return membershipController
}
