package testutil

import (
	"context"

	"github.com/gymflow/gymflow/internal/cache"
	"github.com/gymflow/gymflow/internal/config"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores bundles the in-memory repositories used by service tests
type Stores struct {
	SignupRepo     *InMemorySignupStore
	MembershipRepo *InMemoryMembershipStore
}

// BaseServiceTestSuite provides common setup for service layer tests: a
// context carrying a tenant and user, in-memory stores, an in-memory cache
// and a default logger and config.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	cfg    *config.Configuration
	logger *logger.Logger
	stores Stores
	cache  cache.Cache
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupConfig()
	s.setupStores()
	s.cache = cache.NewInMemoryCache()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.ClearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	ctx := context.Background()
	ctx = types.SetTenantID(ctx, types.DefaultTenantID)
	ctx = types.SetUserID(ctx, types.DefaultUserID)
	s.ctx = ctx
}

func (s *BaseServiceTestSuite) setupConfig() {
	s.cfg = config.GetDefaultConfig()
	log, err := logger.NewLogger(s.cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
	s.logger = log
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		SignupRepo:     NewInMemorySignupStore(),
		MembershipRepo: NewInMemoryMembershipStore(),
	}
}

// ClearStores resets every in-memory repository
func (s *BaseServiceTestSuite) ClearStores() {
	s.stores.SignupRepo.Clear()
	s.stores.MembershipRepo.Clear()
}

// GetContext returns the test context carrying the default tenant and user
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetStores returns the in-memory repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetCache returns the test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}
