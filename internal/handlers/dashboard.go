package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"labelworks-backend/internal/dashboard"
	"labelworks-backend/internal/models"
)

type DashboardHandler struct {
	aggregator *dashboard.Aggregator
}

func NewDashboardHandler(aggregator *dashboard.Aggregator) *DashboardHandler {
	return &DashboardHandler{
		aggregator: aggregator,
	}
}

// GetDashboard godoc
// @Summary     Account dashboard
// @Description Returns project totals and the recent upload feed for the authenticated account
// @Tags        dashboard
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.DashboardResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	if h.aggregator == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := h.aggregator.Summarize(userID)
	if err != nil {
		respondError(c, err, "failed to build dashboard")
		return
	}

	titles := make(map[uuid.UUID]string, len(summary.Projects))
	projects := make([]models.ProjectResponse, len(summary.Projects))
	for i, project := range summary.Projects {
		titles[project.ID] = project.Title
		projects[i] = projectResponse(project)
	}

	recents := make([]models.RecentUploadResponse, len(summary.RecentUploads))
	for i, record := range summary.RecentUploads {
		recents[i] = models.RecentUploadResponse{
			FileResponse: fileResponse(record),
			ProjectTitle: titles[record.ProjectID],
		}
	}

	c.JSON(http.StatusOK, models.DashboardResponse{
		ProjectCount:      summary.ProjectCount,
		TotalFileCount:    summary.TotalFileCount,
		TotalStorageBytes: summary.TotalStorageBytes,
		RecentUploads:     recents,
		LastUploadAt:      summary.LastUploadAt,
		Projects:          projects,
	})
}
