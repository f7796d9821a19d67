package app

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/km-arc/go-injector/framework/config"
	"github.com/km-arc/go-injector/framework/container"
	"github.com/km-arc/go-injector/framework/logging"
	"github.com/km-arc/go-injector/framework/providers"
	"github.com/km-arc/go-injector/framework/routing"
)

const shutdownTimeout = 10 * time.Second

// Version is the build version, set with
// -ldflags "-X github.com/km-arc/go-injector/framework/app.Version=v1.2.3".
var Version = "dev"

// Application is the top-level application container. It embeds the
// dependency container so callers can Resolve directly on it.
type Application struct {
	*container.Container
	Config *config.Config
	Logger *zap.Logger
}

// New builds the application container from the framework providers followed
// by the given ones, then boots them in the same order.
func New(cfg *config.Config, extra ...container.ServiceProvider) (*Application, error) {
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithLogger(cfg, logger, extra...)
}

// NewWithLogger is New with a caller supplied logger.
func NewWithLogger(cfg *config.Config, logger *zap.Logger, extra ...container.ServiceProvider) (*Application, error) {
	builder := container.NewBuilder(
		container.WithLogger(logger),
		container.WithCycleTolerance(cfg.Injector.TolerateCycles),
	)

	builder.Register(&providers.ConfigServiceProvider{Config: cfg})
	builder.Register(&providers.LoggingServiceProvider{Logger: logger})
	builder.Register(&providers.RoutingServiceProvider{Logger: logger})
	for _, p := range extra {
		builder.Register(p)
	}

	c, err := builder.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building container")
	}
	return &Application{Container: c, Config: cfg, Logger: logger}, nil
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Container)
}

// Run serves HTTP on APP_PORT until ctx is cancelled, then shuts down
// gracefully.
func (a *Application) Run(ctx context.Context) error {
	router, err := a.Router()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              ":" + a.Config.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("listening", zap.String("addr", srv.Addr),
			zap.String("env", a.Config.App.Env),
			zap.String("version", Version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server error")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsProduction() bool  { return a.Config.IsProduction() }
