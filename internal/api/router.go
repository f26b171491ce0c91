package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	v1 "github.com/gymflow/gymflow/internal/api/v1"
	"github.com/gymflow/gymflow/internal/auth"
	"github.com/gymflow/gymflow/internal/config"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/rest/middleware"
)

// Handlers bundles the route handlers wired by the router
type Handlers struct {
	Analytics  *v1.AnalyticsHandler
	Membership *v1.MembershipHandler
	Signup     *v1.SignupHandler
}

// NewRouter builds the gin engine with the standard middleware chain and the
// versioned route groups
func NewRouter(cfg *config.Configuration, log *logger.Logger, provider auth.Provider, handlers Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = log.GetGinLogger()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.SentryMiddleware(cfg))
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.ErrorHandlerMiddleware)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	private := router.Group("/v1")
	private.Use(middleware.AuthenticateMiddleware(provider, log))
	private.Use(middleware.SentryTenantContextMiddleware)
	private.Use(middleware.RateLimitMiddleware())

	analytics := private.Group("/analytics")
	{
		analytics.GET("/dashboard", handlers.Analytics.GetDashboard)
		analytics.GET("/export", handlers.Analytics.ExportMemberships)
	}

	memberships := private.Group("/memberships")
	{
		memberships.POST("", handlers.Membership.CreateMembership)
		memberships.GET("", handlers.Membership.ListMemberships)
	}

	signups := private.Group("/signups")
	{
		signups.POST("", handlers.Signup.CreateSignup)
		signups.GET("", handlers.Signup.ListSignups)
	}

	return router
}
