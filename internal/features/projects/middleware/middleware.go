package projects_middleware

import (
	"net/http"

	"sprintdesk/internal/features/access"
	projects_models "sprintdesk/internal/features/projects/models"
	projects_services "sprintdesk/internal/features/projects/services"
	teams_middleware "sprintdesk/internal/features/teams/middleware"
	users_middleware "sprintdesk/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const projectContextKey = "project"

// ResolveProjectContext loads the project addressed by :projectId and checks
// it belongs to the team already resolved by the team middleware. The
// project is attached to the Gin context; the actor's project membership is
// resolved lazily by the permission checks because the team lead may act
// without one.
func ResolveProjectContext(projectService *projects_services.ProjectService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		team, ok := teams_middleware.GetTeamFromContext(ctx)
		if !ok {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Team context not resolved"})
			ctx.Abort()
			return
		}

		projectID, err := uuid.Parse(ctx.Param("projectId"))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
			ctx.Abort()
			return
		}

		project, err := projectService.GetProjectWithCache(projectID)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve project"})
			ctx.Abort()
			return
		}

		if project == nil || project.TeamID != team.ID {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			ctx.Abort()
			return
		}

		ctx.Set(projectContextKey, project)
		ctx.Next()
	}
}

// RequireProjectPermission gates a route on the project permission matrix,
// including the team admin bypass and the team lead carve-out.
func RequireProjectPermission(
	projectService *projects_services.ProjectService,
	action access.ProjectAction,
) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := users_middleware.GetUserFromContext(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			ctx.Abort()
			return
		}

		project, ok := GetProjectFromContext(ctx)
		if !ok {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Project context not resolved"})
			ctx.Abort()
			return
		}

		teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)

		allowed, err := projectService.CheckPermission(project, teamMembership, user.ID, action)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check permissions"})
			ctx.Abort()
			return
		}

		if !allowed {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

func GetProjectFromContext(ctx *gin.Context) (*projects_models.Project, bool) {
	value, exists := ctx.Get(projectContextKey)
	if !exists {
		return nil, false
	}

	project, ok := value.(*projects_models.Project)

	return project, ok
}
