package callmap

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// Arg is an option to Map that sets the state for one mapping: the
// superfunction's positional and named argument values, the override
// mapping, and the logger.
type Arg func(*argBuilder) error

type argBuilder struct {
	logger     hclog.Logger
	positional []interface{}
	named      map[string]interface{}
	overrides  map[string]interface{}
}

func newArgBuilder(opts ...Arg) (*argBuilder, error) {
	builder := &argBuilder{
		logger:    hclog.L(),
		named:     make(map[string]interface{}),
		overrides: make(map[string]interface{}),
	}

	var buildErr error
	for _, opt := range opts {
		if err := opt(builder); err != nil {
			buildErr = multierror.Append(buildErr, err)
		}
	}

	return builder, buildErr
}

// Args appends positional values for the superfunction call, in order.
// Multiple Args options concatenate.
func Args(values ...interface{}) Arg {
	return func(a *argBuilder) error {
		a.positional = append(a.positional, values...)
		return nil
	}
}

// Named specifies a named argument of the superfunction call. This
// binds to the superfunction parameter whose name matches, or to its
// var-keyword collector when no parameter does.
func Named(n string, v interface{}) Arg {
	return func(a *argBuilder) error {
		a.named[strings.ToLower(n)] = v
		return nil
	}
}

// NamedValues specifies multiple named arguments at once. This is the
// same as calling Named for every entry.
func NamedValues(m map[string]interface{}) Arg {
	return func(a *argBuilder) error {
		for n, v := range m {
			a.named[strings.ToLower(n)] = v
		}

		return nil
	}
}

// Override supplies a fallback value for a subfunction parameter. An
// override is consulted only when the flattened superfunction call has
// no value under the same name; it beats the parameter's declared
// default.
func Override(n string, v interface{}) Arg {
	return func(a *argBuilder) error {
		a.overrides[strings.ToLower(n)] = v
		return nil
	}
}

// Overrides supplies multiple override values at once.
func Overrides(m map[string]interface{}) Arg {
	return func(a *argBuilder) error {
		for n, v := range m {
			a.overrides[strings.ToLower(n)] = v
		}

		return nil
	}
}

// FromStruct turns every exported field of the given struct (or pointer
// to struct) into a Named argument, keyed by the lowercased field name.
// This is a convenience for callers whose superfunction arguments
// already live in a struct.
func FromStruct(v interface{}) Arg {
	return func(a *argBuilder) error {
		sv := structValueOf(reflect.ValueOf(v))
		if sv.Kind() == reflect.Invalid {
			return fmt.Errorf(
				"only struct or pointer to struct types are supported in FromStruct, got %T", v)
		}

		st := sv.Type()
		for i := 0; i < st.NumField(); i++ {
			f := st.Field(i)
			if f.PkgPath != "" || isStructField(f) {
				continue
			}

			a.named[strings.ToLower(f.Name)] = sv.Field(i).Interface()
		}

		return nil
	}
}

// Logger specifies the logger to trace the mapping with. The default
// is hclog.L().
func Logger(l hclog.Logger) Arg {
	return func(a *argBuilder) error {
		a.logger = l
		return nil
	}
}

func structValueOf(rv reflect.Value) reflect.Value {
	if k := rv.Kind(); k != reflect.Struct && k != reflect.Ptr {
		return reflect.Value{}
	}

	sv := rv
	if sv.Kind() == reflect.Ptr {
		// unwrap ptr
		sv = sv.Elem()
		if sv.Kind() != reflect.Struct {
			return reflect.Value{}
		}
	}

	return sv
}
