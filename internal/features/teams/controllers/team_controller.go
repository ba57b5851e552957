package teams_controllers

import (
	"net/http"

	"sprintdesk/internal/apperrors"
	teams_dto "sprintdesk/internal/features/teams/dto"
	teams_middleware "sprintdesk/internal/features/teams/middleware"
	teams_services "sprintdesk/internal/features/teams/services"
	users_middleware "sprintdesk/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
)

type TeamController struct {
	teamService *teams_services.TeamService
}

func (c *TeamController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/teams", c.CreateTeam)
	router.GET("/teams", c.GetTeams)

	teamRoutes := router.Group("/teams/:teamId")
	teamRoutes.Use(teams_middleware.ResolveTeamContext(c.teamService))

	teamRoutes.GET("", c.GetTeam)
	teamRoutes.PUT("", c.UpdateTeam)
	teamRoutes.DELETE("", c.DeleteTeam)
}

// CreateTeam
// @Summary Create a new team
// @Description Create a team; the creator becomes its first admin member
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body teams_dto.CreateTeamRequestDTO true "Team creation data"
// @Success 200 {object} teams_dto.TeamResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /teams [post]
func (c *TeamController) CreateTeam(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request teams_dto.CreateTeamRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.teamService.CreateTeam(&request, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetTeams
// @Summary List user's teams
// @Description Get the teams the authenticated user is an active member of
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} teams_dto.ListTeamsResponseDTO
// @Failure 401 {object} map[string]string
// @Router /teams [get]
func (c *TeamController) GetTeams(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.teamService.GetUserTeams(user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetTeam
// @Summary Get team details
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Success 200 {object} teams_models.Team
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /teams/{teamId} [get]
func (c *TeamController) GetTeam(ctx *gin.Context) {
	team, ok := teams_middleware.GetTeamFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Team context not resolved"})
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// UpdateTeam
// @Summary Update team name/description
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param request body teams_dto.UpdateTeamRequestDTO true "Team update data"
// @Success 200 {object} teams_models.Team
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId} [put]
func (c *TeamController) UpdateTeam(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	team, _ := teams_middleware.GetTeamFromContext(ctx)
	membership, ok := teams_middleware.GetMembershipFromContext(ctx)
	if !ok || team == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Team context not resolved"})
		return
	}

	var request teams_dto.UpdateTeamRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updated, err := c.teamService.UpdateTeam(team, &request, membership, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// DeleteTeam
// @Summary Delete a team and everything it contains
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId} [delete]
func (c *TeamController) DeleteTeam(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	team, _ := teams_middleware.GetTeamFromContext(ctx)
	membership, ok := teams_middleware.GetMembershipFromContext(ctx)
	if !ok || team == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Team context not resolved"})
		return
	}

	if err := c.teamService.DeleteTeam(team, membership, user); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Team deleted successfully"})
}
