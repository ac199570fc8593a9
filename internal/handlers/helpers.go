package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"labelworks-backend/internal/apperror"
	"labelworks-backend/internal/logger"
	"labelworks-backend/internal/middleware"
	"labelworks-backend/internal/models"
)

// currentUserID pulls the authenticated account id set by the auth
// middleware. Responds and returns false when it is absent or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, false
	}

	return userID, true
}

func pathUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps taxonomy errors to their HTTP status; anything else is
// a 500 with the raw message.
func respondError(c *gin.Context, err error, fallback string) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		logger.Log.WithError(err).Warn(fallback)
		c.JSON(appErr.HTTPStatus, models.ErrorResponse{
			Error:   string(appErr.Code),
			Message: appErr.Message,
		})
		return
	}

	logger.Log.WithError(err).Error(fallback)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   fallback,
		Message: err.Error(),
	})
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
