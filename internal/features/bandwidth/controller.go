package bandwidth

import (
	"net/http"
	"strconv"
	"time"

	"sprintdesk/internal/apperrors"
	teams_middleware "sprintdesk/internal/features/teams/middleware"
	users_middleware "sprintdesk/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BandwidthController struct {
	bandwidthService *BandwidthService
}

func (c *BandwidthController) RegisterRoutes(teamRoutes *gin.RouterGroup) {
	teamRoutes.POST("/bandwidth", c.CreateReport)
	teamRoutes.GET("/bandwidth", c.GetMyReports)
	teamRoutes.GET("/bandwidth/team", c.GetTeamReports)
	teamRoutes.GET("/bandwidth/:reportId", c.GetReport)
	teamRoutes.PUT("/bandwidth/:reportId", c.UpdateReport)
	teamRoutes.POST("/bandwidth/:reportId/submit", c.SubmitReport)
	teamRoutes.POST("/bandwidth/:reportId/approve", c.ApproveReport)
	teamRoutes.POST("/bandwidth/:reportId/reject", c.RejectReport)
}

// CreateReport
// @Summary Create a bandwidth report
// @Description Open a draft availability report for a month
// @Tags bandwidth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param request body bandwidth.CreateReportRequestDTO true "Report data"
// @Success 200 {object} bandwidth.BandwidthReport
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /teams/{teamId}/bandwidth [post]
func (c *BandwidthController) CreateReport(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	team, _ := teams_middleware.GetTeamFromContext(ctx)

	var request CreateReportRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := c.bandwidthService.CreateReport(team, &request, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// GetMyReports
// @Summary List own bandwidth reports
// @Tags bandwidth
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Success 200 {object} bandwidth.ListReportsResponseDTO
// @Router /teams/{teamId}/bandwidth [get]
func (c *BandwidthController) GetMyReports(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	team, _ := teams_middleware.GetTeamFromContext(ctx)

	response, err := c.bandwidthService.GetMyReports(team, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetTeamReports
// @Summary List team bandwidth reports for a month
// @Tags bandwidth
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param year query int false "Year (defaults to current)"
// @Param month query int false "Month 1-12 (defaults to current)"
// @Success 200 {object} bandwidth.ListReportsResponseDTO
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/bandwidth/team [get]
func (c *BandwidthController) GetTeamReports(ctx *gin.Context) {
	team, _ := teams_middleware.GetTeamFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)

	now := time.Now().UTC()
	year, _ := strconv.Atoi(ctx.DefaultQuery("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(ctx.DefaultQuery("month", strconv.Itoa(int(now.Month()))))

	response, err := c.bandwidthService.GetTeamReports(team, teamMembership, year, month)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetReport
// @Summary Get a bandwidth report
// @Tags bandwidth
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param reportId path string true "Report ID"
// @Success 200 {object} bandwidth.BandwidthReport
// @Failure 404 {object} map[string]string
// @Router /teams/{teamId}/bandwidth/{reportId} [get]
func (c *BandwidthController) GetReport(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	team, _ := teams_middleware.GetTeamFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)

	reportID, err := uuid.Parse(ctx.Param("reportId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID format"})
		return
	}

	report, err := c.bandwidthService.GetReport(team, teamMembership, reportID, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// UpdateReport
// @Summary Update a bandwidth report
// @Description Edit a draft report; a rejected report reopens as draft
// @Tags bandwidth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param reportId path string true "Report ID"
// @Param request body bandwidth.UpdateReportRequestDTO true "Fields to update"
// @Success 200 {object} bandwidth.BandwidthReport
// @Failure 409 {object} map[string]string
// @Router /teams/{teamId}/bandwidth/{reportId} [put]
func (c *BandwidthController) UpdateReport(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	team, _ := teams_middleware.GetTeamFromContext(ctx)

	reportID, err := uuid.Parse(ctx.Param("reportId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID format"})
		return
	}

	var request UpdateReportRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := c.bandwidthService.UpdateReport(team, reportID, &request, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// SubmitReport
// @Summary Submit a bandwidth report
// @Tags bandwidth
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param reportId path string true "Report ID"
// @Success 200 {object} bandwidth.BandwidthReport
// @Failure 409 {object} map[string]string
// @Router /teams/{teamId}/bandwidth/{reportId}/submit [post]
func (c *BandwidthController) SubmitReport(ctx *gin.Context) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	team, _ := teams_middleware.GetTeamFromContext(ctx)

	reportID, err := uuid.Parse(ctx.Param("reportId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID format"})
		return
	}

	report, err := c.bandwidthService.SubmitReport(team, reportID, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// ApproveReport
// @Summary Approve a bandwidth report
// @Tags bandwidth
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param reportId path string true "Report ID"
// @Success 200 {object} bandwidth.BandwidthReport
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/bandwidth/{reportId}/approve [post]
func (c *BandwidthController) ApproveReport(ctx *gin.Context) {
	c.reviewReport(ctx, true)
}

// RejectReport
// @Summary Reject a bandwidth report
// @Tags bandwidth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param reportId path string true "Report ID"
// @Param request body bandwidth.RejectReportRequestDTO false "Rejection reason"
// @Success 200 {object} bandwidth.BandwidthReport
// @Failure 403 {object} map[string]string
// @Router /teams/{teamId}/bandwidth/{reportId}/reject [post]
func (c *BandwidthController) RejectReport(ctx *gin.Context) {
	c.reviewReport(ctx, false)
}

func (c *BandwidthController) reviewReport(ctx *gin.Context, approve bool) {
	user, _ := users_middleware.GetUserFromContext(ctx)
	team, _ := teams_middleware.GetTeamFromContext(ctx)
	teamMembership, _ := teams_middleware.GetMembershipFromContext(ctx)

	reportID, err := uuid.Parse(ctx.Param("reportId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID format"})
		return
	}

	var reason string
	if !approve {
		var request RejectReportRequestDTO
		if err := ctx.ShouldBindJSON(&request); err == nil {
			reason = request.Reason
		}
	}

	report, err := c.bandwidthService.ReviewReport(team, teamMembership, reportID, approve, reason, user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}
