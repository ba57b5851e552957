package teams_middleware

import (
	"net/http"

	"sprintdesk/internal/features/access"
	teams_models "sprintdesk/internal/features/teams/models"
	teams_services "sprintdesk/internal/features/teams/services"
	users_middleware "sprintdesk/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	teamContextKey       = "team"
	membershipContextKey = "team_membership"
)

// ResolveTeamContext loads the team and the actor's active membership exactly
// once per request and attaches both to the Gin context. Every downstream
// permission check in the same request reuses the resolved pair instead of
// re-querying.
func ResolveTeamContext(teamService *teams_services.TeamService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := users_middleware.GetUserFromContext(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			ctx.Abort()
			return
		}

		teamID, err := uuid.Parse(ctx.Param("teamId"))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID"})
			ctx.Abort()
			return
		}

		team, err := teamService.GetTeamWithCache(teamID)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve team"})
			ctx.Abort()
			return
		}

		if team == nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
			ctx.Abort()
			return
		}

		if !team.IsActive {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Team is deactivated"})
			ctx.Abort()
			return
		}

		membership, err := teamService.GetMembership(teamID, user.ID)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve membership"})
			ctx.Abort()
			return
		}

		if membership == nil || !membership.IsActiveMember() {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "You are not an active member of this team"})
			ctx.Abort()
			return
		}

		ctx.Set(teamContextKey, team)
		ctx.Set(membershipContextKey, membership)
		ctx.Next()
	}
}

// RequireTeamPermission gates a route on the permission matrix, using the
// membership resolved by ResolveTeamContext.
func RequireTeamPermission(action access.TeamAction) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		membership, ok := GetMembershipFromContext(ctx)
		if !ok {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Team context not resolved"})
			ctx.Abort()
			return
		}

		if !access.CheckTeamPermission(membership, action) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

func GetTeamFromContext(ctx *gin.Context) (*teams_models.Team, bool) {
	value, exists := ctx.Get(teamContextKey)
	if !exists {
		return nil, false
	}

	team, ok := value.(*teams_models.Team)

	return team, ok
}

func GetMembershipFromContext(ctx *gin.Context) (*teams_models.TeamMembership, bool) {
	value, exists := ctx.Get(membershipContextKey)
	if !exists {
		return nil, false
	}

	membership, ok := value.(*teams_models.TeamMembership)

	return membership, ok
}
