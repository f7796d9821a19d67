package container_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-injector/framework/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type readerProvider struct {
	container.BaseProvider
	registerCalls int
}

func (p *readerProvider) Register(b *container.Builder) error {
	p.registerCalls++
	if err := container.Bind[Reader, *ReaderImpl](b.Bindings()); err != nil {
		return err
	}
	return container.Scan[*ReaderImpl](b.Registry())
}

// parserProvider depends on readerProvider's bindings and resolves the parser
// during Boot.
type parserProvider struct {
	booted Parser
}

func (p *parserProvider) Register(b *container.Builder) error {
	if err := container.Bind[Parser, *ParserImpl](b.Bindings()); err != nil {
		return err
	}
	return container.Scan[*ParserImpl](b.Registry())
}

func (p *parserProvider) Boot(c *container.Container) error {
	parser, err := container.Resolve[Parser](c)
	if err != nil {
		return err
	}
	p.booted = parser
	return nil
}

type failingProvider struct {
	container.BaseProvider
	err error
}

func (p *failingProvider) Register(_ *container.Builder) error { return p.err }

type failingBootProvider struct {
	err error
}

func (p *failingBootProvider) Register(_ *container.Builder) error { return nil }
func (p *failingBootProvider) Boot(_ *container.Container) error   { return p.err }

// ── Builder ───────────────────────────────────────────────────────────────────

func TestBuilder_RegisterCalledImmediately(t *testing.T) {
	b := container.NewBuilder()
	p := &readerProvider{}
	b.Register(p)

	assert.Equal(t, 1, p.registerCalls)
	assert.Equal(t, 1, b.Bindings().Len())
}

func TestBuilder_DuplicateRegister_Ignored(t *testing.T) {
	b := container.NewBuilder()
	p := &readerProvider{}
	b.Register(p)
	b.Register(p)

	assert.Equal(t, 1, p.registerCalls)
	_, err := b.Build()
	assert.NoError(t, err)
}

func TestBuilder_BootResolvesAcrossProviders(t *testing.T) {
	b := container.NewBuilder()
	parsers := &parserProvider{}
	b.Register(&readerProvider{})
	b.Register(parsers)

	c, err := b.Build()
	require.NoError(t, err)
	require.NotNil(t, parsers.booted, "Boot() should have resolved the parser")

	again, err := container.Resolve[Parser](c)
	require.NoError(t, err)
	assert.Same(t, parsers.booted.(*ParserImpl), again.(*ParserImpl), "Boot() and later Resolve should share the singleton")
	assert.Len(t, b.Providers(), 2)
}

func TestBuilder_RegisterError(t *testing.T) {
	boom := errors.New("boom")
	b := container.NewBuilder()
	b.Register(&failingProvider{err: boom})
	b.Register(&readerProvider{})

	_, err := b.Build()
	assert.ErrorIs(t, err, boom)
}

func TestBuilder_DuplicateBindingAcrossProviders(t *testing.T) {
	b := container.NewBuilder()
	b.Register(&readerProvider{})
	b.Register(&readerProvider{})

	_, err := b.Build()
	assert.ErrorIs(t, err, container.ErrDuplicateBinding)
}

func TestBuilder_BootError(t *testing.T) {
	boom := errors.New("boom")
	b := container.NewBuilder()
	b.Register(&failingBootProvider{err: boom})

	_, err := b.Build()
	assert.ErrorIs(t, err, boom)
}

func TestBuilder_BuildTwice(t *testing.T) {
	b := container.NewBuilder()
	_, err := b.Build()
	require.NoError(t, err)

	_, err = b.Build()
	assert.Error(t, err, "second Build should fail")
}

func TestBuilder_RegisterAfterBuild(t *testing.T) {
	b := container.NewBuilder()
	_, err := b.Build()
	require.NoError(t, err)

	p := &readerProvider{}
	b.Register(p)
	assert.Zero(t, p.registerCalls, "provider registered after Build should not run")
}

// ── BaseProvider defaults ─────────────────────────────────────────────────────

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider
	assert.NoError(t, p.Boot(container.New(nil, nil)), "BaseProvider.Boot() should be a no-op")
}
