package middleware

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/gymflow/gymflow/internal/config"
	"github.com/gymflow/gymflow/internal/types"
)

// SentryMiddleware returns a middleware that captures errors and performance
// data when a DSN is configured
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if cfg.Logging.SentryDSN == "" {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// SentryTenantContextMiddleware tags the Sentry scope with the tenant from
// the request context. Add after AuthenticateMiddleware.
func SentryTenantContextMiddleware(c *gin.Context) {
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		c.Next()
		return
	}
	if tenantID := types.GetTenantID(c.Request.Context()); tenantID != "" {
		hub.Scope().SetTag("tenant_id", tenantID)
	}
	c.Next()
}
