package container

import (
	"reflect"
	"sort"

	"github.com/pkg/errors"
)

// ── Binding table ─────────────────────────────────────────────────────────────

// Bindings maps abstractions (interface types) to the concrete type that
// implements each of them. One concrete type per abstraction.
//
//	b := container.NewBindings()
//	_ = container.Bind[products.ProductParser, *impl.ProductParserImpl](b)
type Bindings struct {
	m map[reflect.Type]reflect.Type
}

// NewBindings creates an empty binding table.
func NewBindings() *Bindings {
	return &Bindings{m: make(map[reflect.Type]reflect.Type)}
}

// Bind records that abstract is implemented by concrete.
func (b *Bindings) Bind(abstract, concrete reflect.Type) error {
	if abstract == nil || concrete == nil {
		return errors.Wrap(ErrInvalidBinding, "nil type")
	}
	if abstract.Kind() != reflect.Interface {
		return errors.Wrapf(ErrInvalidBinding, "%s is not an interface", abstract)
	}
	if concrete.Kind() == reflect.Interface {
		return errors.Wrapf(ErrInvalidBinding, "%s is not a concrete type", concrete)
	}
	if !concrete.Implements(abstract) {
		return errors.Wrapf(ErrInvalidBinding, "%s does not implement %s", concrete, abstract)
	}
	if existing, ok := b.m[abstract]; ok {
		return errors.Wrapf(ErrDuplicateBinding, "%s already bound to %s", abstract, existing)
	}
	b.m[abstract] = concrete
	return nil
}

// Bind is the generic form of (*Bindings).Bind.
func Bind[A, C any](b *Bindings) error {
	return b.Bind(TypeOf[A](), TypeOf[C]())
}

// Lookup returns the concrete type bound to abstract.
func (b *Bindings) Lookup(abstract reflect.Type) (reflect.Type, bool) {
	t, ok := b.m[abstract]
	return t, ok
}

// Len returns the number of bindings.
func (b *Bindings) Len() int { return len(b.m) }

// Abstracts returns the bound abstractions sorted by name.
func (b *Bindings) Abstracts() []reflect.Type {
	out := make([]reflect.Type, 0, len(b.m))
	for t := range b.m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// snapshot returns a private copy of the table.
func (b *Bindings) snapshot() map[reflect.Type]reflect.Type {
	out := make(map[reflect.Type]reflect.Type, len(b.m))
	for k, v := range b.m {
		out[k] = v
	}
	return out
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

// TypeOf returns the type identifier of T. Unlike reflect.TypeOf it works
// for interface types.
//
//	container.TypeOf[products.ProductService]()
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// IsAbstract reports whether t is resolved through the binding table.
func IsAbstract(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Interface
}
