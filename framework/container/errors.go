package container

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Sentinel errors. Every failure returned by Resolve is a *ResolveError
// whose Kind is one of the first five; match with errors.Is.
var (
	ErrBindingNotFound  = errors.New("container: binding not found")
	ErrUnsupportedType  = errors.New("container: unsupported type")
	ErrConstruction     = errors.New("container: construction failed")
	ErrInjection        = errors.New("container: injection failed")
	ErrCyclicDependency = errors.New("container: cyclic dependency")

	// Registration errors.
	ErrInvalidBinding     = errors.New("container: invalid binding")
	ErrDuplicateBinding   = errors.New("container: duplicate binding")
	ErrInvalidComponent   = errors.New("container: invalid component")
	ErrDuplicateComponent = errors.New("container: duplicate component")
	ErrNoConstructor      = errors.New("container: no default constructor")
)

// ResolveError describes a failed Resolve call.
type ResolveError struct {
	// Kind is the sentinel this error matches.
	Kind error
	// Type is the type that could not be resolved.
	Type reflect.Type
	// Owner and Field are set for injection failures.
	Owner reflect.Type
	Field string
	// Path is the chain of concrete types under construction when the
	// error happened, outermost first.
	Path []reflect.Type
	// Err is the underlying cause, if any.
	Err error
}

func (e *ResolveError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	switch {
	case e.Field != "":
		sb.WriteString(": field '" + e.Field + "' of " + typeName(e.Owner))
	case e.Type != nil:
		sb.WriteString(": " + typeName(e.Type))
	}
	if len(e.Path) > 0 {
		names := make([]string, len(e.Path))
		for i, t := range e.Path {
			names[i] = typeName(t)
		}
		sb.WriteString(" (path: " + strings.Join(names, " -> ") + ")")
	}
	if e.Err != nil {
		sb.WriteString(": " + e.Err.Error())
	}
	return sb.String()
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *ResolveError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
