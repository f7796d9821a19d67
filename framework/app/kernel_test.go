package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-injector/framework/app"
	"github.com/km-arc/go-injector/framework/config"
	"github.com/km-arc/go-injector/framework/container"
)

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "test", Env: "testing", Port: "0"},
		Injector: config.InjectorConfig{LogLevel: "error"},
	}
}

func TestNew_FrameworkComponents(t *testing.T) {
	cfg := testConfig()
	application, err := app.New(cfg)
	require.NoError(t, err)

	got, err := container.Resolve[*config.Config](application.Container)
	require.NoError(t, err)
	assert.Same(t, cfg, got)

	_, err = application.Router()
	assert.NoError(t, err)
	assert.Equal(t, "testing", application.Environment())
	assert.False(t, application.IsProduction())
}

func TestNew_InvalidLogLevel(t *testing.T) {
	cfg := testConfig()
	cfg.Injector.LogLevel = "loud"

	_, err := app.New(cfg)
	assert.Error(t, err)
}

type brokenProvider struct{ container.BaseProvider }

func (p *brokenProvider) Register(b *container.Builder) error {
	return container.Bind[interface{ Broken() }, *config.Config](b.Bindings())
}

func TestNew_ProviderError(t *testing.T) {
	_, err := app.NewWithLogger(testConfig(), zap.NewNop(), &brokenProvider{})
	assert.ErrorIs(t, err, container.ErrInvalidBinding)
}

func TestRun_StopsOnCancel(t *testing.T) {
	application, err := app.NewWithLogger(testConfig(), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, application.Run(ctx))
}
