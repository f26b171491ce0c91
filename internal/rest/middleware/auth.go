package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gymflow/gymflow/internal/auth"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/types"
)

// AuthenticateMiddleware validates the bearer token and stores the resolved
// tenant and user on the request context. Every downstream query is scoped by
// that tenant.
func AuthenticateMiddleware(provider auth.Provider, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(types.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, ierr.NewError("missing bearer token").
				WithHint("Provide an Authorization: Bearer header").
				Mark(ierr.ErrPermissionDenied))
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := provider.ValidateToken(c.Request.Context(), token)
		if err != nil {
			log.Debugw("token validation failed", "error", err)
			abortUnauthorized(c, err)
			return
		}

		ctx := c.Request.Context()
		ctx = types.SetTenantID(ctx, claims.TenantID)
		ctx = types.SetUserID(ctx, claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
}
