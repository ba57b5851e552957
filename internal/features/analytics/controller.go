package analytics

import (
	"net/http"

	"sprintdesk/internal/apperrors"
	"sprintdesk/internal/features/access"
	teams_middleware "sprintdesk/internal/features/teams/middleware"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	analyticsService *AnalyticsService
}

func (c *AnalyticsController) RegisterRoutes(teamRoutes *gin.RouterGroup) {
	analyticsRoutes := teamRoutes.Group("/analytics")
	analyticsRoutes.Use(teams_middleware.RequireTeamPermission(access.TeamActionViewAnalytics))

	analyticsRoutes.GET("/dashboard", c.GetDashboard)
	analyticsRoutes.GET("/members", c.GetMemberStats)
}

// GetDashboard
// @Summary Team dashboard
// @Description Task, sprint and bandwidth counters scoped to the members the requester may view
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Success 200 {object} analytics.DashboardResponseDTO
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/analytics/dashboard [get]
func (c *AnalyticsController) GetDashboard(ctx *gin.Context) {
	team, _ := teams_middleware.GetTeamFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)

	dashboard, err := c.analyticsService.GetDashboard(team, teamMembership)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

// GetMemberStats
// @Summary Per-member statistics
// @Description Task counters per member, scoped to the members the requester may view
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Success 200 {object} analytics.MemberStatsResponseDTO
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/analytics/members [get]
func (c *AnalyticsController) GetMemberStats(ctx *gin.Context) {
	team, _ := teams_middleware.GetTeamFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)

	stats, err := c.analyticsService.GetMemberStats(team, teamMembership)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
