package teams_controllers

import (
	"net/http"

	"sprintdesk/internal/apperrors"
	teams_dto "sprintdesk/internal/features/teams/dto"
	teams_middleware "sprintdesk/internal/features/teams/middleware"
	teams_services "sprintdesk/internal/features/teams/services"
	users_middleware "sprintdesk/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MembershipController struct {
	teamService       *teams_services.TeamService
	membershipService *teams_services.MembershipService
}

func (c *MembershipController) RegisterRoutes(router *gin.RouterGroup) {
	memberRoutes := router.Group("/teams/:teamId/members")
	memberRoutes.Use(teams_middleware.ResolveTeamContext(c.teamService))

	memberRoutes.GET("", c.GetMembers)
	memberRoutes.POST("", c.AddMember)
	memberRoutes.POST("/bulk", c.AddMembers)
	memberRoutes.PUT("/:userId/role", c.ChangeMemberRole)
	memberRoutes.PUT("/:userId/reporting-manager", c.SetReportingManager)
	memberRoutes.DELETE("/:userId", c.RemoveMember)
}

// GetMembers
// @Summary List team members
// @Tags team-members
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Success 200 {object} teams_dto.GetMembersResponseDTO
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/members [get]
func (c *MembershipController) GetMembers(ctx *gin.Context) {
	team, _ := teams_middleware.GetTeamFromContext(ctx)
	membership, ok := teams_middleware.GetMembershipFromContext(ctx)
	if !ok || team == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Team context not resolved"})
		return
	}

	response, err := c.membershipService.GetMembers(team, membership)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddMember
// @Summary Add a user to the team
// @Tags team-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param request body teams_dto.AddMemberRequestDTO true "Member data"
// @Success 200 {object} teams_dto.TeamMemberResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /teams/{teamId}/members [post]
func (c *MembershipController) AddMember(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	team, _ := teams_middleware.GetTeamFromContext(ctx)
	membership, ok := teams_middleware.GetMembershipFromContext(ctx)
	if !ok || team == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Team context not resolved"})
		return
	}

	var request teams_dto.AddMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.membershipService.AddMember(team, &request, membership, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddMembers
// @Summary Add several users to the team at once
// @Description Per-item best-effort; failures are reported alongside successes
// @Tags team-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param request body teams_dto.BulkAddMembersRequestDTO true "Members data"
// @Success 200 {object} teams_dto.BulkAddMembersResponseDTO
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/members/bulk [post]
func (c *MembershipController) AddMembers(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	team, _ := teams_middleware.GetTeamFromContext(ctx)
	membership, ok := teams_middleware.GetMembershipFromContext(ctx)
	if !ok || team == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Team context not resolved"})
		return
	}

	var request teams_dto.BulkAddMembersRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.membershipService.AddMembers(team, &request, membership, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ChangeMemberRole
// @Summary Change a member's team role
// @Tags team-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param userId path string true "Member user ID"
// @Param request body teams_dto.ChangeMemberRoleRequestDTO true "New role"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /teams/{teamId}/members/{userId}/role [put]
func (c *MembershipController) ChangeMemberRole(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	team, _ := teams_middleware.GetTeamFromContext(ctx)
	membership, ok := teams_middleware.GetMembershipFromContext(ctx)
	if !ok || team == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Team context not resolved"})
		return
	}

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var request teams_dto.ChangeMemberRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.membershipService.ChangeMemberRole(team, memberUserID, &request, membership, user); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member role updated successfully"})
}

// SetReportingManager
// @Summary Set or clear a member's reporting manager
// @Tags team-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param userId path string true "Member user ID"
// @Param request body teams_dto.SetReportingManagerRequestDTO true "Reporting manager"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/members/{userId}/reporting-manager [put]
func (c *MembershipController) SetReportingManager(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	team, _ := teams_middleware.GetTeamFromContext(ctx)
	membership, ok := teams_middleware.GetMembershipFromContext(ctx)
	if !ok || team == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Team context not resolved"})
		return
	}

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var request teams_dto.SetReportingManagerRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.membershipService.SetReportingManager(team, memberUserID, &request, membership, user); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Reporting manager updated successfully"})
}

// RemoveMember
// @Summary Remove a member from the team
// @Tags team-members
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param userId path string true "Member user ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/members/{userId} [delete]
func (c *MembershipController) RemoveMember(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	team, _ := teams_middleware.GetTeamFromContext(ctx)
	membership, ok := teams_middleware.GetMembershipFromContext(ctx)
	if !ok || team == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Team context not resolved"})
		return
	}

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.membershipService.RemoveMember(team, memberUserID, membership, user); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}
