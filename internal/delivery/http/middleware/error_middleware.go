package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobsearch-agent/internal/delivery/http/response"
	"go-jobsearch-agent/pkg/apperror"
	"go-jobsearch-agent/pkg/logger"
)

// kindLabel gives the UI a stable discriminator alongside the HTTP status,
// so "already tracking" can render as a notice instead of a failure.
func kindLabel(kind apperror.Kind) string {
	switch kind {
	case apperror.KindNetwork:
		return "network"
	case apperror.KindAuthRequired:
		return "auth_required"
	case apperror.KindAuthFailed:
		return "auth_failed"
	case apperror.KindValidation:
		return "validation"
	case apperror.KindProtocol:
		return "protocol"
	case apperror.KindDuplicate:
		return "duplicate"
	case apperror.KindNotFound:
		return "not_found"
	}
	return "internal"
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Kind == apperror.KindProtocol || appErr.Kind == apperror.KindInternal {
				// Logged for diagnosis, never silently coerced into data
				logger.Log.Error("request failed", "kind", kindLabel(appErr.Kind), "error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message, gin.H{"kind": kindLabel(appErr.Kind)})
			return
		}

		logger.Log.Error("unclassified error", "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
