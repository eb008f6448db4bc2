package appErrors

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"setlist_backend/internal/logger"
)

// ErrorResponse is the standard error payload returned to clients.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError maps an application error onto the Gin context. The routing
// layer lives outside this module; it calls this after any service failure.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !As(err, &appErr) {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		logger.Error("server error", "code", appErr.Code, "error", appErr.Error())
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleValidationError converts request binding failures into the
// VALIDATION_FAILED shape.
func HandleValidationError(c *gin.Context, err error) {
	HandleError(c, ErrValidationFailed.WithDetails(err.Error()))
}
