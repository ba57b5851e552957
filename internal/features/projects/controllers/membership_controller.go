package projects_controllers

import (
	"net/http"

	"sprintdesk/internal/apperrors"
	projects_dto "sprintdesk/internal/features/projects/dto"
	projects_middleware "sprintdesk/internal/features/projects/middleware"
	projects_services "sprintdesk/internal/features/projects/services"
	teams_middleware "sprintdesk/internal/features/teams/middleware"
	users_middleware "sprintdesk/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MembershipController struct {
	membershipService *projects_services.MembershipService
	projectService    *projects_services.ProjectService
}

func (c *MembershipController) RegisterRoutes(teamRoutes *gin.RouterGroup) {
	memberRoutes := teamRoutes.Group("/projects/:projectId")
	memberRoutes.Use(projects_middleware.ResolveProjectContext(c.projectService))

	memberRoutes.GET("/members", c.GetMembers)
	memberRoutes.POST("/members", c.AddMember)
	memberRoutes.PUT("/members/:userId/role", c.ChangeMemberRole)
	memberRoutes.PUT("/members/:userId/workload", c.SetWorkload)
	memberRoutes.PUT("/transfer-ownership", c.TransferOwnership)
	memberRoutes.DELETE("/members/:userId", c.RemoveMember)
}

// GetMembers
// @Summary List project members
// @Tags project-members
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Success 200 {object} projects_dto.GetMembersResponseDTO
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/members [get]
func (c *MembershipController) GetMembers(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	response, err := c.membershipService.GetMembers(project, teamMembership, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddMember
// @Summary Add a project member
// @Description Add an active team member to the project by email
// @Tags project-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param request body projects_dto.AddMemberRequestDTO true "Member data"
// @Success 200 {object} projects_dto.ProjectMemberResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/members [post]
func (c *MembershipController) AddMember(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	var request projects_dto.AddMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := c.membershipService.AddMember(project, teamMembership, &request, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, member)
}

// ChangeMemberRole
// @Summary Change a project member's role
// @Tags project-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param userId path string true "User ID"
// @Param request body projects_dto.ChangeMemberRoleRequestDTO true "New role"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/members/{userId}/role [put]
func (c *MembershipController) ChangeMemberRole(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	var request projects_dto.ChangeMemberRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = c.membershipService.ChangeMemberRole(project, teamMembership, targetUserID, request.Role, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member role updated successfully"})
}

// SetWorkload
// @Summary Set a project member's workload
// @Tags project-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param userId path string true "User ID"
// @Param request body projects_dto.SetWorkloadRequestDTO true "Workload percentage"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/members/{userId}/workload [put]
func (c *MembershipController) SetWorkload(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	var request projects_dto.SetWorkloadRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = c.membershipService.SetWorkload(project, teamMembership, targetUserID, request.Workload, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member workload updated successfully"})
}

// TransferOwnership
// @Summary Transfer project ownership
// @Description Swap the OWNER role to another project member
// @Tags project-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param request body projects_dto.TransferOwnershipRequestDTO true "New owner email"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/transfer-ownership [put]
func (c *MembershipController) TransferOwnership(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	var request projects_dto.TransferOwnershipRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := c.membershipService.TransferOwnership(project, teamMembership, &request, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Ownership transferred successfully"})
}

// RemoveMember
// @Summary Remove a project member
// @Tags project-members
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param projectId path string true "Project ID"
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /teams/{teamId}/projects/{projectId}/members/{userId} [delete]
func (c *MembershipController) RemoveMember(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)
	project, _ := projects_middleware.GetProjectFromContext(ctx)

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := c.membershipService.RemoveMember(project, teamMembership, targetUserID, user); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}
