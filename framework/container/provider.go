package container

import (
	"github.com/pkg/errors"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups the bindings and components of one area of an
// application.
//
// Register is called while the builder is still open and must only declare
// bindings and components. Boot is called after the container is built,
// making it safe to resolve inside Boot.
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(b *container.Builder) error {
//	    if err := container.Bind[Mailer, *SMTPMailer](b.Bindings()); err != nil {
//	        return err
//	    }
//	    return container.Scan[*SMTPMailer](b.Registry())
//	}
type ServiceProvider interface {
	// Register declares bindings and components.
	Register(b *Builder) error

	// Boot runs once the container exists.
	Boot(c *Container) error
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with a no-op Boot.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }

// ── Builder ───────────────────────────────────────────────────────────────────

// Builder collects bindings and components from providers and produces a
// Container. The binding table is frozen when Build is called.
type Builder struct {
	bindings   *Bindings
	registry   *Registry
	opts       []Option
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	err        error
	built      bool
}

// NewBuilder creates a builder; opts are passed on to the container.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{
		bindings:   NewBindings(),
		registry:   NewRegistry(),
		opts:       opts,
		registered: make(map[ServiceProvider]bool),
	}
}

// Bindings returns the binding table being built.
func (b *Builder) Bindings() *Bindings { return b.bindings }

// Registry returns the component registry being built.
func (b *Builder) Registry() *Registry { return b.registry }

// Register adds a provider and calls its Register method. Registering the
// same provider twice is a no-op. The first error is kept and returned by
// Build.
func (b *Builder) Register(provider ServiceProvider) {
	if b.err != nil || b.registered[provider] {
		return
	}
	if b.built {
		b.err = errors.Errorf("container: provider %T registered after Build", provider)
		return
	}
	b.registered[provider] = true

	if err := provider.Register(b); err != nil {
		b.err = errors.Wrapf(err, "registering %T", provider)
		return
	}
	b.providers = append(b.providers, provider)
}

// Build creates the container and boots every provider in registration order.
func (b *Builder) Build() (*Container, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.built {
		return nil, errors.New("container: Build called twice")
	}
	b.built = true

	c := New(b.bindings, b.registry, b.opts...)
	for _, provider := range b.providers {
		if err := provider.Boot(c); err != nil {
			return nil, errors.Wrapf(err, "booting %T", provider)
		}
	}
	return c, nil
}

// Providers returns the registered providers.
func (b *Builder) Providers() []ServiceProvider { return b.providers }
