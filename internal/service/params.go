package service

import (
	"github.com/gymflow/gymflow/internal/cache"
	"github.com/gymflow/gymflow/internal/config"
	"github.com/gymflow/gymflow/internal/domain/membership"
	"github.com/gymflow/gymflow/internal/domain/signup"
	"github.com/gymflow/gymflow/internal/logger"
)

// ServiceParams holds the common dependencies injected into every service
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	SignupRepo     signup.Repository
	MembershipRepo membership.Repository
}
