// Package container provides a small singleton dependency-injection
// container for Go.
//
// # Overview
//
// Abstractions are Go interfaces. Each one is bound to exactly one concrete
// type in a Bindings table. Concrete types become injectable by being
// registered in a Registry, together with the fields that must receive a
// dependency. The Container then builds the object graph on demand: every
// concrete type is constructed once, cached, and injected field by field.
//
// # Bindings
//
//	b := container.NewBindings()
//	_ = container.Bind[FileReaderService, *FileReaderServiceImpl](b)
//	_ = container.Bind[ProductParser, *ProductParserImpl](b)
//
// # Components
//
//	r := container.NewRegistry()
//
//	// Default construction (reflect.New) and `inject` struct tags
//	_ = container.Scan[*ProductServiceImpl](r)
//
//	// Explicit constructor and injection points
//	_ = container.Component(r, NewProductParser,
//	    container.Field("Reader", container.TypeOf[FileReaderService]()))
//
//	// Unexported fields need a setter
//	_ = container.Component[*Cache](r, nil,
//	    container.Setter("store", func(c *Cache, s Store) { c.store = s }))
//
//	// Pre-built value
//	_ = r.Instance(cfg)
//
// # Resolving
//
//	c := container.New(b, r)
//	svc, err := container.Resolve[ProductService](c)
//
// Errors are *ResolveError values matching one of ErrBindingNotFound,
// ErrUnsupportedType, ErrConstruction, ErrInjection or ErrCyclicDependency.
//
// The bare instance is cached before its fields are injected. A failed
// injection therefore leaves a partially injected singleton in the cache.
// A dependency cycle fails with ErrCyclicDependency unless the container is
// created WithCycleTolerance(true), in which case the cycle is closed with
// the partially injected peer.
//
// # Service Providers
//
//	type ProductsProvider struct{ container.BaseProvider }
//
//	func (p *ProductsProvider) Register(b *container.Builder) error {
//	    return container.Bind[ProductService, *ProductServiceImpl](b.Bindings())
//	}
//
//	builder := container.NewBuilder(container.WithLogger(logger))
//	builder.Register(&ProductsProvider{})
//	c, err := builder.Build()
//
// The Registry is not synchronized; finish registering before the first
// Resolve.
package container
