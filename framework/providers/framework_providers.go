package providers

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/km-arc/go-injector/framework/config"
	"github.com/km-arc/go-injector/framework/container"
	"github.com/km-arc/go-injector/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider makes the loaded configuration injectable.
//
// Components:
//   - *config.Config
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(b *container.Builder) error {
	if p.Config == nil {
		return errors.New("providers: nil config")
	}
	return b.Registry().Instance(p.Config)
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider makes the application logger injectable.
//
// Components:
//   - *zap.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(b *container.Builder) error {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return b.Registry().Instance(logger)
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router. The router is built on
// first resolution.
//
// Components:
//   - *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *RoutingServiceProvider) Register(b *container.Builder) error {
	logger := p.Logger
	return container.Component(b.Registry(), func() *routing.Router {
		return routing.New(logger)
	})
}
