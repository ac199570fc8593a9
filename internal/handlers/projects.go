package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"labelworks-backend/internal/logger"
	"labelworks-backend/internal/models"
	"labelworks-backend/internal/supabase"
	"labelworks-backend/internal/validation"
)

type ProjectsHandler struct {
	dbClient       *supabase.DatabaseClient
	storageClient  *supabase.StorageClient
	realtimeClient *supabase.RealtimeClient
}

func NewProjectsHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient, realtimeClient *supabase.RealtimeClient) *ProjectsHandler {
	return &ProjectsHandler{
		dbClient:       dbClient,
		storageClient:  storageClient,
		realtimeClient: realtimeClient,
	}
}

func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if err := validation.ValidateLength("title", req.Title, validation.MinTitleLength, validation.MaxTitleLength); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid title", Message: err.Error()})
		return
	}
	if err := validation.ValidateLength("description", req.Description, 0, validation.MaxDescLength); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid description", Message: err.Error()})
		return
	}

	project, err := h.dbClient.CreateProject(userID, req.Title, req.Description)
	if err != nil {
		respondError(c, err, "failed to create project")
		return
	}

	c.JSON(http.StatusCreated, projectResponse(*project))
}

func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projects, err := h.dbClient.ListProjects(userID)
	if err != nil {
		respondError(c, err, "failed to list projects")
		return
	}

	responses := make([]models.ProjectResponse, len(projects))
	for i, project := range projects {
		responses[i] = projectResponse(project)
	}

	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: responses})
}

func (h *ProjectsHandler) GetProject(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	project, err := h.dbClient.GetProject(projectID, userID)
	if err != nil {
		respondError(c, err, "failed to get project")
		return
	}

	c.JSON(http.StatusOK, projectResponse(*project))
}

// DeleteProject removes stored objects first, then the metadata rows. A
// storage failure after partial object removal leaves orphans that the
// record deletion below will no longer reference; there is no compensating
// transaction.
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	// Ownership check before touching storage.
	if _, err := h.dbClient.GetProject(projectID, userID); err != nil {
		respondError(c, err, "failed to get project")
		return
	}

	if err := h.storageClient.DeleteProjectFiles(userID, projectID); err != nil {
		logger.Log.WithError(err).WithField("project_id", projectID).
			Warn("failed to delete stored objects, continuing with metadata")
	}

	if err := h.dbClient.DeleteProject(projectID, userID); err != nil {
		respondError(c, err, "failed to delete project")
		return
	}

	if err := h.realtimeClient.PublishProjectEvent(projectID, "project_deleted",
		supabase.ProjectDeletedPayload(projectID)); err != nil {
		logger.Log.WithError(err).Debug("failed to publish project event")
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted successfully"})
}

func projectResponse(project models.Project) models.ProjectResponse {
	response := models.ProjectResponse{
		ID:        project.ID.String(),
		Title:     project.Title,
		CreatedAt: project.CreatedAt,
	}
	if project.Description.Valid {
		response.Description = project.Description.String
	}
	return response
}
