package container

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container resolves abstractions and concrete types to fully injected
// singletons. Each concrete type gets at most one instance per container.
//
// Resolve serializes on a container-wide lock, so a Container may be shared
// between goroutines. Recursive resolution inside one call does not re-lock.
type Container struct {
	mu sync.Mutex

	// abstract → concrete, copied at construction and never written again
	bindings map[reflect.Type]reflect.Type

	inspector Inspector

	// concrete → instance; insert only
	instances map[reflect.Type]any

	// concrete types whose fields are being injected, outermost first
	building []reflect.Type

	// per top-level Resolve: instances cached by this call, and those fully
	// injected and waiting for afterResolving callbacks
	inserted []reflect.Type
	pending  []resolved

	tolerateCycles bool
	logger         *zap.Logger
	afterResolving []func(reflect.Type, any)
}

type resolved struct {
	typ      reflect.Type
	instance any
}

// New creates a container over a snapshot of bindings. Later changes to
// bindings are not seen by the container.
func New(bindings *Bindings, inspector Inspector, opts ...Option) *Container {
	if bindings == nil {
		bindings = NewBindings()
	}
	if inspector == nil {
		inspector = NewRegistry()
	}
	c := &Container{
		bindings:  bindings.snapshot(),
		inspector: inspector,
		instances: make(map[reflect.Type]any),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve returns the singleton for t, building and injecting it and its
// dependencies on first use. t may be an abstraction or a concrete type.
//
// A failed injection leaves the bare instance of its owner cached; later
// calls for that type return the partially injected value. A cyclic
// dependency caches nothing: every instance built by the failing call is
// dropped, so later calls report the cycle again.
//
// afterResolving callbacks run once the lock is released and may call back
// into the container.
func (c *Container) Resolve(t reflect.Type) (any, error) {
	instance, fired, err := c.resolveLocked(t)
	for _, r := range fired {
		for _, cb := range c.afterResolving {
			cb(r.typ, r.instance)
		}
	}
	if err != nil {
		c.logger.Debug("resolve failed", zap.String("type", typeName(t)), zap.Error(err))
		return nil, err
	}
	return instance, nil
}

func (c *Container) resolveLocked(t reflect.Type) (any, []resolved, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.inserted, c.pending = nil, nil }()

	instance, err := c.resolve(t)
	if errors.Is(err, ErrCyclicDependency) {
		for _, typ := range c.inserted {
			delete(c.instances, typ)
		}
		c.logger.Debug("rolled back", zap.Int("instances", len(c.inserted)))
		return nil, nil, err
	}
	return instance, c.pending, err
}

// resolve is the recursive resolver; callers must hold mu.
func (c *Container) resolve(requested reflect.Type) (any, error) {
	if requested == nil {
		return nil, c.fail(ErrUnsupportedType, nil, errors.New("nil type"))
	}

	concrete := requested
	if IsAbstract(requested) {
		bound, ok := c.bindings[requested]
		if !ok {
			return nil, c.fail(ErrBindingNotFound, requested, nil)
		}
		concrete = bound
	}

	if !c.inspector.Injectable(concrete) {
		return nil, c.fail(ErrUnsupportedType, concrete, nil)
	}

	if instance, ok := c.instances[concrete]; ok {
		if !c.tolerateCycles && c.inProgress(concrete) {
			return nil, c.fail(ErrCyclicDependency, concrete, nil)
		}
		return instance, nil
	}

	instance, err := c.construct(concrete)
	if err != nil {
		return nil, c.fail(ErrConstruction, concrete, err)
	}
	if got := reflect.TypeOf(instance); got != concrete {
		return nil, c.fail(ErrConstruction, concrete, errors.Errorf("constructor returned %v", got))
	}

	// Cached before injection so recursive requests for the same type
	// terminate.
	c.instances[concrete] = instance
	c.inserted = append(c.inserted, concrete)
	c.logger.Debug("constructed", zap.Stringer("type", concrete))

	c.building = append(c.building, concrete)
	defer func() { c.building = c.building[:len(c.building)-1] }()

	for _, point := range c.inspector.InjectionPoints(concrete) {
		dep, err := c.resolve(point.Type)
		if err != nil {
			return nil, err
		}
		if err := point.Assign(instance, dep); err != nil {
			return nil, &ResolveError{
				Kind:  ErrInjection,
				Type:  point.Type,
				Owner: concrete,
				Field: point.Field,
				Path:  c.path(),
				Err:   err,
			}
		}
	}

	c.pending = append(c.pending, resolved{typ: concrete, instance: instance})
	return instance, nil
}

// construct calls the inspector's constructor, turning panics into errors.
func (c *Container) construct(t reflect.Type) (instance any, err error) {
	defer func() {
		if r := recover(); r != nil {
			instance = nil
			if e, ok := r.(error); ok {
				err = errors.Wrap(e, "constructor panicked")
				return
			}
			err = errors.Errorf("constructor panicked: %v", r)
		}
	}()
	instance, err = c.inspector.Construct(t)
	if err == nil && instance == nil {
		err = errors.New("constructor returned nil")
	}
	return instance, err
}

func (c *Container) inProgress(t reflect.Type) bool {
	for _, b := range c.building {
		if b == t {
			return true
		}
	}
	return false
}

func (c *Container) path() []reflect.Type {
	if len(c.building) == 0 {
		return nil
	}
	return append([]reflect.Type(nil), c.building...)
}

func (c *Container) fail(kind error, t reflect.Type, cause error) *ResolveError {
	return &ResolveError{Kind: kind, Type: t, Path: c.path(), Err: cause}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Resolved reports whether an instance is cached for t. Abstractions are
// looked up through the binding table.
func (c *Container) Resolved(t reflect.Type) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if IsAbstract(t) {
		bound, ok := c.bindings[t]
		if !ok {
			return false
		}
		t = bound
	}
	_, ok := c.instances[t]
	return ok
}

// Len returns the number of cached instances.
func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.instances)
}

// Instances returns the concrete types with a cached instance, sorted by name.
func (c *Container) Instances() []reflect.Type {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]reflect.Type, 0, len(c.instances))
	for t := range c.instances {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Bindings returns the container's abstractions and their concrete types.
func (c *Container) Bindings() map[reflect.Type]reflect.Type {
	out := make(map[reflect.Type]reflect.Type, len(c.bindings))
	for k, v := range c.bindings {
		out[k] = v
	}
	return out
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve resolves T and type-asserts the result.
//
//	svc, err := container.Resolve[products.ProductService](c)
func Resolve[T any](c *Container) (T, error) {
	var zero T
	instance, err := c.Resolve(TypeOf[T]())
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, errors.Errorf("container: Resolve[%s] resolved to %T", TypeOf[T](), instance)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container) T {
	typed, err := Resolve[T](c)
	if err != nil {
		panic(fmt.Sprintf("container: MustResolve: %v", err))
	}
	return typed
}
