package testutil

import (
	"context"
	"time"

	"github.com/novastream/novastream/internal/config"
	"github.com/novastream/novastream/internal/logger"
	"github.com/novastream/novastream/internal/validator"
	"github.com/stretchr/testify/suite"
)

// BaseServiceTestSuite provides common setup for service tests: the
// default configuration, a logger and a clock pinned to a fixed instant
// inside the seasonal promo window. The engine has no stores to reset,
// every computation starts from scratch.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	cfg *config.Configuration
	log *logger.Logger
	now time.Time
}

// SetupTest initializes the test environment
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.cfg = config.GetDefaultConfig()
	s.log, _ = logger.NewLogger(s.cfg)
	s.now = time.Date(2025, 12, 20, 12, 0, 0, 0, time.UTC)
	validator.NewValidator()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.log
}

// GetNow returns the pinned test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// SetNow moves the pinned test time
func (s *BaseServiceTestSuite) SetNow(t time.Time) {
	s.now = t
}

// Clock returns a time source reading the pinned test time at call time
func (s *BaseServiceTestSuite) Clock() func() time.Time {
	return func() time.Time {
		return s.now
	}
}
