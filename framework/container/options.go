package container

import (
	"reflect"

	"go.uber.org/zap"
)

// Option configures a Container.
type Option func(c *Container)

// WithLogger sets the logger used for debug output. Defaults to a no-op
// logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger.Named("container")
		}
	}
}

// WithCycleTolerance controls what happens when resolution reaches a type
// whose injection is still in progress. By default it fails with
// ErrCyclicDependency. When tolerate is true the partially injected instance
// is handed out instead, and the cycle completes with one side observing an
// incomplete peer.
func WithCycleTolerance(tolerate bool) Option {
	return func(c *Container) { c.tolerateCycles = tolerate }
}

// WithAfterResolving registers a callback fired once per concrete type after
// its fields have been injected. Callbacks run in injection order, after the
// Resolve call that built the instance has released the container, so they
// may use the container themselves. Instances dropped because of a cyclic
// dependency are not reported.
func WithAfterResolving(cb func(t reflect.Type, instance any)) Option {
	return func(c *Container) {
		if cb != nil {
			c.afterResolving = append(c.afterResolving, cb)
		}
	}
}
