package handler

import (
	"errors"
	"net/http"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gin-gonic/gin"
)

// currentUserID reads the identity set by the auth middleware. It writes the
// 401 itself when the identity is missing.
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return "", false
	}
	return userID, true
}

// respondError maps a use case error onto a status code. Anything unknown is
// reported as fallback with a 500.
func respondError(c *gin.Context, err error, fallback string) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Title:   verr.Title,
			Message: verr.Message,
		})
		return
	}

	status, message := http.StatusInternalServerError, fallback
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrTokenRevoked), errors.Is(err, domain.ErrUnauthenticated):
		status, message = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrUserAlreadyExists):
		status, message = http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrProfileNotFound):
		status, message = http.StatusNotFound, "profile not found"
	case errors.Is(err, domain.ErrReadingNotFound):
		status, message = http.StatusNotFound, "reading not found"
	case errors.Is(err, domain.ErrUserNotFound):
		status, message = http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrOnboardingIncomplete):
		status, message = http.StatusUnprocessableEntity, "onboarding step incomplete"
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, ErrorResponse{
		Error: message,
	})
}
