package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"
	"labelworks-backend/internal/logger"
	"labelworks-backend/internal/models"
	"labelworks-backend/internal/supabase"
)

type FilesHandler struct {
	dbClient        *supabase.DatabaseClient
	storageClient   *supabase.StorageClient
	realtimeClient  *supabase.RealtimeClient
	maxUploadSizeMB int64
}

func NewFilesHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient, realtimeClient *supabase.RealtimeClient, maxUploadSizeMB int64) *FilesHandler {
	return &FilesHandler{
		dbClient:        dbClient,
		storageClient:   storageClient,
		realtimeClient:  realtimeClient,
		maxUploadSizeMB: maxUploadSizeMB,
	}
}

// ListFiles godoc
// @Summary     List project files
// @Description Returns all file records for a project, newest first
// @Tags        files
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.FilesResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/files [get]
func (h *FilesHandler) ListFiles(c *gin.Context) {
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

	// Verify project belongs to user
	if _, err := h.dbClient.GetProject(projectID, userID); err != nil {
		respondError(c, err, "failed to get project")
		return
	}

	files, err := h.dbClient.ListProjectFiles(projectID)
	if err != nil {
		respondError(c, err, "failed to list files")
		return
	}

	responses := make([]models.FileResponse, len(files))
	for i, file := range files {
		responses[i] = fileResponse(file)
	}

	c.JSON(http.StatusOK, models.FilesResponse{Files: responses})
}

// Upload stores each multipart file in object storage under the project's
// prefix, then writes its metadata record. The record's uploaded_at is
// server-assigned.
func (h *FilesHandler) Upload(c *gin.Context) {
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

	// Only the owner uploads into a project.
	if _, err := h.dbClient.GetProject(projectID, userID); err != nil {
		respondError(c, err, "failed to get project")
		return
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	form := c.Request.MultipartForm
	if form == nil || len(form.File["files"]) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no files provided"})
		return
	}

	maxBytes := h.maxUploadSizeMB * 1024 * 1024
	var uploaded []models.FileResponse
	var uploadErrors []string

	for _, header := range form.File["files"] {
		if header.Size > maxBytes {
			uploadErrors = append(uploadErrors, header.Filename+": exceeds size limit")
			continue
		}

		file, err := header.Open()
		if err != nil {
			uploadErrors = append(uploadErrors, header.Filename+": "+err.Error())
			continue
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			uploadErrors = append(uploadErrors, header.Filename+": "+err.Error())
			continue
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			// Sniff from content when the client did not say.
			if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
				contentType = kind.MIME.Value
			} else {
				contentType = "application/octet-stream"
			}
		}

		storagePath := supabase.ObjectPath(userID, projectID, header.Filename)
		downloadURL, err := h.storageClient.UploadFile(storagePath, contentType, data)
		if err != nil {
			uploadErrors = append(uploadErrors, header.Filename+": "+err.Error())
			continue
		}

		record, err := h.dbClient.CreateFileRecord(&models.FileRecord{
			ProjectID:   projectID,
			FileName:    header.Filename,
			SizeBytes:   header.Size,
			ContentType: nullString(contentType),
			StoragePath: storagePath,
			DownloadURL: downloadURL,
		})
		if err != nil {
			// Object stored but record write failed: detectable orphan,
			// surfaced to the caller, no compensation attempted.
			uploadErrors = append(uploadErrors, header.Filename+": "+err.Error())
			continue
		}

		uploaded = append(uploaded, fileResponse(*record))

		if err := h.realtimeClient.PublishProjectEvent(projectID, "file_uploaded",
			supabase.FileUploadedPayload(projectID, record.ID, record.FileName, record.SizeBytes)); err != nil {
			logger.Log.WithError(err).Debug("failed to publish file event")
		}
	}

	status := http.StatusOK
	if len(uploaded) == 0 && len(uploadErrors) > 0 {
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{
		"files":  uploaded,
		"errors": uploadErrors,
	})
}

// DeleteFile removes the stored object first, then the metadata record. If
// the record deletion fails after the object is gone the collections are
// inconsistent but detectable; the error is surfaced as-is.
func (h *FilesHandler) DeleteFile(c *gin.Context) {
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
	fileID, ok := pathUUID(c, "file_id")
	if !ok {
		return
	}

	if _, err := h.dbClient.GetProject(projectID, userID); err != nil {
		respondError(c, err, "failed to get project")
		return
	}

	record, err := h.dbClient.GetFileRecord(fileID, projectID)
	if err != nil {
		respondError(c, err, "failed to get file")
		return
	}

	if err := h.storageClient.DeleteFile(record.StoragePath); err != nil {
		respondError(c, err, "failed to delete stored object")
		return
	}

	if err := h.dbClient.DeleteFileRecord(fileID, projectID); err != nil {
		respondError(c, err, "failed to delete file record")
		return
	}

	if err := h.realtimeClient.PublishProjectEvent(projectID, "file_deleted",
		supabase.FileDeletedPayload(projectID, fileID)); err != nil {
		logger.Log.WithError(err).Debug("failed to publish file event")
	}

	c.JSON(http.StatusOK, gin.H{"message": "file deleted successfully"})
}

func fileResponse(record models.FileRecord) models.FileResponse {
	response := models.FileResponse{
		ID:          record.ID.String(),
		ProjectID:   record.ProjectID.String(),
		FileName:    record.FileName,
		SizeBytes:   record.SizeBytes,
		DownloadURL: record.DownloadURL,
	}
	if record.ContentType.Valid {
		response.ContentType = record.ContentType.String
	}
	if record.UploadedAt.Valid {
		t := record.UploadedAt.Time
		response.UploadedAt = &t
	}
	return response
}
