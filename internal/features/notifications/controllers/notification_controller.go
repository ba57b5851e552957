package notifications_controllers

import (
	"net/http"
	"strconv"
	"time"

	"sprintdesk/internal/apperrors"
	"sprintdesk/internal/features/notifications"
	teams_middleware "sprintdesk/internal/features/teams/middleware"
	teams_services "sprintdesk/internal/features/teams/services"
	users_middleware "sprintdesk/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const streamHeartbeatInterval = 25 * time.Second

type NotificationController struct {
	notificationService *notifications.NotificationService
	teamService         *teams_services.TeamService
}

func (c *NotificationController) RegisterRoutes(router *gin.RouterGroup) {
	routes := router.Group("/teams/:teamId/notifications")
	routes.Use(teams_middleware.ResolveTeamContext(c.teamService))

	routes.GET("", c.ListNotifications)
	routes.GET("/stream", c.StreamNotifications)
	routes.PUT("/:notificationId/read", c.MarkRead)
	routes.PUT("/read-all", c.MarkAllRead)
}

// ListNotifications
// @Summary List notifications
// @Description List the current user's notifications within a team, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} notifications.ListNotificationsResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	membership, _ := teams_middleware.GetMembershipFromContext(ctx)

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	response, err := c.notificationService.ListNotifications(user.ID, membership.TeamID, limit, offset)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// StreamNotifications
// @Summary Stream notifications
// @Description Server-sent event stream of new notifications for the current user
// @Tags notifications
// @Produce text/event-stream
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Success 200 {string} string "event stream"
// @Failure 401 {object} map[string]string
// @Router /teams/{teamId}/notifications/stream [get]
func (c *NotificationController) StreamNotifications(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	membership, _ := teams_middleware.GetMembershipFromContext(ctx)

	events, cancel := c.notificationService.Subscribe(user.ID, membership.TeamID)
	defer cancel()

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")
	ctx.Writer.Flush()

	heartbeat := time.NewTicker(streamHeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Request.Context().Done():
			return

		case <-heartbeat.C:
			ctx.SSEvent("heartbeat", time.Now().UTC().Format(time.RFC3339))
			ctx.Writer.Flush()

		case notification, ok := <-events:
			if !ok {
				return
			}

			ctx.SSEvent("notification", notification)
			ctx.Writer.Flush()
		}
	}
}

// MarkRead
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param notificationId path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /teams/{teamId}/notifications/{notificationId}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)

	notificationID, err := uuid.Parse(ctx.Param("notificationId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID format"})
		return
	}

	if err := c.notificationService.MarkRead(notificationID, user.ID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Success 200 {object} map[string]string
// @Router /teams/{teamId}/notifications/read-all [put]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	membership, _ := teams_middleware.GetMembershipFromContext(ctx)

	if err := c.notificationService.MarkAllRead(user.ID, membership.TeamID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
