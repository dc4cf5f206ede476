package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/intradaypulse/internal/domain/dto"
	"github.com/guttosm/intradaypulse/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a 500 JSON response
// when the handler did not write one itself. Error text is logged, not
// returned to the client.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}

	logger.FromContext(c.Request.Context()).Error().
		Str("errors", c.Errors.String()).
		Str("path", c.Request.URL.Path).
		Msg("request failed")

	if c.Writer.Written() {
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", nil))
}

// AbortWithError aborts the request with status and a dto.ErrorResponse
// carrying message. err is attached to the gin context for logging and never
// echoed to the client.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, nil))
}
