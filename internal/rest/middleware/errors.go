package middleware

import (
	"github.com/gin-gonic/gin"
	ierr "github.com/gymflow/gymflow/internal/errors"
)

// ErrorHandlerMiddleware converts errors attached via c.Error into the
// standard error envelope. Handlers attach errors and return; the mapping to
// HTTP status lives here in one place.
func ErrorHandlerMiddleware(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}

	err := c.Errors.Last().Err
	if c.Writer.Written() {
		return
	}
	c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
}
