package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/gymflow/gymflow/internal/types"
)

// RequestIDMiddleware propagates the caller's request ID or generates one,
// storing it on the request context and echoing it in the response
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUIDWithPrefix(types.UUIDPrefixRequest)
	}

	ctx := types.SetRequestID(c.Request.Context(), requestID)
	c.Request = c.Request.WithContext(ctx)
	c.Writer.Header().Set(types.HeaderRequestID, requestID)
	c.Next()
}
