package main

import (
	"context"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/gymflow/gymflow/internal/api"
	v1 "github.com/gymflow/gymflow/internal/api/v1"
	"github.com/gymflow/gymflow/internal/auth"
	"github.com/gymflow/gymflow/internal/cache"
	"github.com/gymflow/gymflow/internal/config"
	"github.com/gymflow/gymflow/internal/logger"
	redisClient "github.com/gymflow/gymflow/internal/redis"
	"github.com/gymflow/gymflow/internal/repository"
	"github.com/gymflow/gymflow/internal/service"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			provideCache,
			repository.New,
			provideAuthProvider,
			provideServiceParams,
			service.NewAnalyticsService,
			service.NewExportService,
			service.NewMembershipService,
			service.NewSignupService,
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(initSentry),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideCache(cfg *config.Configuration, log *logger.Logger) cache.Cache {
	var client *redisClient.Client
	if cache.CacheType(cfg.Cache.Type) == cache.CacheTypeRedis {
		var err error
		client, err = redisClient.NewClient(cfg, log)
		if err != nil {
			log.Warnw("redis unavailable, falling back to in-memory cache", "error", err)
			client = nil
		}
	}
	return cache.Initialize(cfg, log, client)
}

func provideAuthProvider(cfg *config.Configuration, log *logger.Logger) (auth.Provider, error) {
	return auth.NewSupabaseAuth(cfg, log)
}

func provideServiceParams(
	cfg *config.Configuration,
	log *logger.Logger,
	c cache.Cache,
	repos *repository.Repositories,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:         log,
		Config:         cfg,
		Cache:          c,
		SignupRepo:     repos.Signup,
		MembershipRepo: repos.Membership,
	}
}

func provideHandlers(
	analyticsService service.AnalyticsService,
	exportService service.ExportService,
	membershipService service.MembershipService,
	signupService service.SignupService,
	log *logger.Logger,
) api.Handlers {
	return api.Handlers{
		Analytics:  v1.NewAnalyticsHandler(analyticsService, exportService, log),
		Membership: v1.NewMembershipHandler(membershipService, log),
		Signup:     v1.NewSignupHandler(signupService, log),
	}
}

func initSentry(cfg *config.Configuration, log *logger.Logger) error {
	if cfg.Logging.SentryDSN == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Logging.SentryDSN,
		Environment: string(cfg.Deployment.Mode),
	}); err != nil {
		log.Warnw("failed to initialize sentry", "error", err)
	}
	return nil
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	router *gin.Engine,
	log *logger.Logger,
) {
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting server", "address", cfg.Server.Address)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorw("server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			sentry.Flush(2 * time.Second)
			return server.Shutdown(shutdownCtx)
		},
	})
}
