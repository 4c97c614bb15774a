package service

import (
	"time"

	"github.com/novastream/novastream/internal/config"
	"github.com/novastream/novastream/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Now supplies the current time to anything time-dependent (the
	// seasonal promo window). Left nil it falls back to time.Now, tests
	// pin it to a fixed instant.
	Now func() time.Time
}

// Clock returns the injected time source, defaulting to the wall clock
func (p ServiceParams) Clock() func() time.Time {
	if p.Now != nil {
		return p.Now
	}
	return time.Now
}
