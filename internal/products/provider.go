package products

import (
	"github.com/km-arc/go-injector/framework/container"
	"github.com/km-arc/go-injector/framework/routing"
)

// Provider binds the product services and mounts the HTTP handler.
//
// Bound abstracts:
//   - FileReaderService → *FileReaderServiceImpl
//   - ProductParser     → *ProductParserImpl
//   - ProductService    → *ProductServiceImpl
type Provider struct {
	// Mount controls whether Boot mounts Handler on the router.
	Mount bool
}

func (p *Provider) Register(b *container.Builder) error {
	steps := []func() error{
		func() error { return container.Bind[FileReaderService, *FileReaderServiceImpl](b.Bindings()) },
		func() error { return container.Bind[ProductParser, *ProductParserImpl](b.Bindings()) },
		func() error { return container.Bind[ProductService, *ProductServiceImpl](b.Bindings()) },
		func() error { return container.Scan[*FileReaderServiceImpl](b.Registry()) },
		func() error { return container.Scan[*ProductParserImpl](b.Registry()) },
		func() error { return container.Scan[*ProductServiceImpl](b.Registry()) },
		func() error { return container.Scan[*Handler](b.Registry()) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) Boot(c *container.Container) error {
	if !p.Mount {
		return nil
	}
	router, err := container.Resolve[*routing.Router](c)
	if err != nil {
		return err
	}
	h, err := container.Resolve[*Handler](c)
	if err != nil {
		return err
	}
	h.Routes(router)
	return nil
}
