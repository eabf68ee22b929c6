package middleware

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/yigit/canvasstudy/internal/app/models/dto"
	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
	"github.com/yigit/canvasstudy/internal/pkg/logger"
)

const genericErrorMessage = "An unexpected error occurred. Please try again."

var showErrorDetails atomic.Bool

// SetErrorDetails controls whether raw causes of unknown errors reach clients.
func SetErrorDetails(show bool) {
	showErrorDetails.Store(show)
}

// HandleAPIError writes the failure body for err and aborts the chain
func HandleAPIError(c *gin.Context, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = &apperrors.Error{Kind: apperrors.KindOf(err), Err: err}
	}
	status := apperrors.StatusOf(err)
	log := logger.FromContext(c.Request.Context())

	var resp *dto.ErrorResponse
	if appErr.Kind == apperrors.KindUnknown {
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Int("status", status).
			Msg("Unhandled error")
		resp = dto.NewErrorResponse(genericErrorMessage, string(appErr.Kind))
		if showErrorDetails.Load() {
			resp.WithDetails(errorDetails(appErr, err))
		}
	} else {
		log.Debug().Err(err).Str("kind", string(appErr.Kind)).Int("status", status).Msg("Request failed")
		resp = dto.NewErrorResponse(err.Error(), string(appErr.Kind)).WithSuggestion(appErr.Suggestion())
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

// Recovery turns panics into unknown errors
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		HandleAPIError(c, apperrors.NewUnknownError(http.StatusInternalServerError,
			fmt.Errorf("panic: %v", recovered), "panic while handling request"))
	})
}

// NotFound answers unknown routes
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleAPIError(c, apperrors.NewNotFoundError("route", c.Request.Method+" "+c.Request.URL.Path))
	}
}

// PublicError returns what a client may see of err: unknown errors are masked.
func PublicError(err error) (message string, kind apperrors.Kind, suggestion string) {
	appErr, ok := apperrors.As(err)
	if !ok {
		kind = apperrors.KindOf(err)
		if kind == apperrors.KindUnknown {
			return genericErrorMessage, kind, ""
		}
		return err.Error(), kind, ""
	}
	if appErr.Kind == apperrors.KindUnknown {
		return genericErrorMessage, appErr.Kind, ""
	}
	return err.Error(), appErr.Kind, appErr.Suggestion()
}

func errorDetails(appErr *apperrors.Error, err error) string {
	if appErr.Message != "" && appErr.Err != nil {
		return appErr.Message + ": " + appErr.Err.Error()
	}
	return err.Error()
}
