package container

import (
	"reflect"
	"sort"

	"github.com/pkg/errors"
)

// InjectTag marks a struct field for injection when a type is registered
// through Scan.
//
//	type ProductServiceImpl struct {
//	    Reader products.FileReaderService `inject:""`
//	}
const InjectTag = "inject"

// Inspector is what the container needs to know about concrete types: whether
// a type may be managed at all, which of its fields need a dependency, and how
// to build a bare value of it.
type Inspector interface {
	Injectable(t reflect.Type) bool
	InjectionPoints(t reflect.Type) []InjectionPoint
	Construct(t reflect.Type) (any, error)
}

// ── Injection points ──────────────────────────────────────────────────────────

// InjectionPoint is a field of a concrete type that receives a resolved
// dependency of the declared Type.
type InjectionPoint struct {
	Field string
	Type  reflect.Type

	set func(owner, dep any) error
}

// Field declares an injection point assigned by name via reflection. The
// field must be exported for the assignment to succeed.
func Field(name string, typ reflect.Type) InjectionPoint {
	return InjectionPoint{Field: name, Type: typ}
}

// Setter declares an injection point assigned through fn. Use it for
// unexported fields.
//
//	container.Setter("reader", func(p *ParserImpl, r Reader) { p.reader = r })
func Setter[O, D any](name string, fn func(O, D)) InjectionPoint {
	return InjectionPoint{
		Field: name,
		Type:  TypeOf[D](),
		set: func(owner, dep any) error {
			o, ok := owner.(O)
			if !ok {
				return errors.Errorf("owner is %T, want %s", owner, TypeOf[O]())
			}
			d, ok := dep.(D)
			if !ok {
				return errors.Errorf("dependency is %T, want %s", dep, TypeOf[D]())
			}
			fn(o, d)
			return nil
		},
	}
}

// Assign stores dep into the point's field on owner.
func (p InjectionPoint) Assign(owner, dep any) error {
	if p.set != nil {
		return p.set(owner, dep)
	}
	return assignField(owner, p.Field, dep)
}

func assignField(owner any, name string, dep any) error {
	v := reflect.ValueOf(owner)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return errors.Errorf("owner %T is not a non-nil pointer to struct", owner)
	}
	f := v.Elem().FieldByName(name)
	if !f.IsValid() {
		return errors.Errorf("no field %q", name)
	}
	if !f.CanSet() {
		return errors.Errorf("field %q is not settable", name)
	}
	dv := reflect.ValueOf(dep)
	if !dv.IsValid() {
		return errors.New("nil dependency")
	}
	if !dv.Type().AssignableTo(f.Type()) {
		return errors.Errorf("%s is not assignable to %s", dv.Type(), f.Type())
	}
	f.Set(dv)
	return nil
}

// ── Registry ──────────────────────────────────────────────────────────────────

type component struct {
	construct func() (any, error)
	points    []InjectionPoint
}

// Registry is an Inspector built by explicit registration at startup.
// Registering a type is what marks it injectable.
type Registry struct {
	components map[reflect.Type]*component
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[reflect.Type]*component)}
}

// Component registers concrete type t. A nil construct means default
// construction, which only pointer-to-struct types support.
func (r *Registry) Component(t reflect.Type, construct func() (any, error), points ...InjectionPoint) error {
	if t == nil {
		return errors.Wrap(ErrInvalidComponent, "nil type")
	}
	if IsAbstract(t) {
		return errors.Wrapf(ErrInvalidComponent, "%s is an interface", t)
	}
	if _, ok := r.components[t]; ok {
		return errors.Wrapf(ErrDuplicateComponent, "%s", t)
	}
	for _, p := range points {
		if p.Field == "" || p.Type == nil {
			return errors.Wrapf(ErrInvalidComponent, "%s: incomplete injection point %q", t, p.Field)
		}
	}
	if construct == nil {
		construct = defaultConstructor(t)
	}
	r.components[t] = &component{
		construct: construct,
		points:    append([]InjectionPoint(nil), points...),
	}
	return nil
}

// Component is the generic form of (*Registry).Component.
//
//	container.Component(reg, NewFileReader)
//	container.Component[*Cache](reg, nil)
func Component[T any](r *Registry, construct func() T, points ...InjectionPoint) error {
	var ctor func() (any, error)
	if construct != nil {
		ctor = func() (any, error) { return construct(), nil }
	}
	return r.Component(TypeOf[T](), ctor, points...)
}

// Instance registers a pre-built value; resolving its type returns v.
func (r *Registry) Instance(v any) error {
	if v == nil {
		return errors.Wrap(ErrInvalidComponent, "nil instance")
	}
	return r.Component(reflect.TypeOf(v), func() (any, error) { return v, nil })
}

// Scan registers pointer-to-struct type t with default construction and one
// injection point per field tagged `inject`, in declaration order.
func (r *Registry) Scan(t reflect.Type) error {
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return errors.Wrapf(ErrInvalidComponent, "%v is not a pointer to struct", t)
	}
	st := t.Elem()
	var points []InjectionPoint
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if _, ok := f.Tag.Lookup(InjectTag); !ok {
			continue
		}
		points = append(points, Field(f.Name, f.Type))
	}
	return r.Component(t, nil, points...)
}

// Scan is the generic form of (*Registry).Scan.
func Scan[T any](r *Registry) error {
	return r.Scan(TypeOf[T]())
}

// Injectable implements Inspector.
func (r *Registry) Injectable(t reflect.Type) bool {
	_, ok := r.components[t]
	return ok
}

// InjectionPoints implements Inspector.
func (r *Registry) InjectionPoints(t reflect.Type) []InjectionPoint {
	c, ok := r.components[t]
	if !ok {
		return nil
	}
	return append([]InjectionPoint(nil), c.points...)
}

// Construct implements Inspector.
func (r *Registry) Construct(t reflect.Type) (any, error) {
	c, ok := r.components[t]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedType, "%s", t)
	}
	return c.construct()
}

// Types returns the registered concrete types sorted by name.
func (r *Registry) Types() []reflect.Type {
	out := make([]reflect.Type, 0, len(r.components))
	for t := range r.components {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func defaultConstructor(t reflect.Type) func() (any, error) {
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct {
		elem := t.Elem()
		return func() (any, error) {
			return reflect.New(elem).Interface(), nil
		}
	}
	return func() (any, error) {
		return nil, errors.Wrapf(ErrNoConstructor, "%s", t)
	}
}
