package callmap

import (
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Struct is the type to embed in a parameter struct to indicate that
// its fields declare named parameters. See Extract.
type Struct struct{}

// Extract produces the Signature of the given callable.
//
// Two callable forms are introspectable:
//
//   - a *Signature built with NewSignature, returned as-is. This is
//     the declarative form for callables whose parameter list can't be
//     reflected, or whose defaults aren't expressible in a struct tag.
//
//   - a function whose single parameter is a struct that embeds the
//     Struct marker type. Each exported field declares one parameter
//     in field order. The "callmap" struct tag can rename the
//     parameter and set options:
//
//       Divisor int `callmap:"divide_by,default=2"`
//       Mode    string `callmap:",kwonly"`
//       Rest    []interface{} `callmap:"args,args"`
//       Extra   map[string]interface{} `callmap:"kwargs,kwargs"`
//
//     "kwonly" marks a keyword-only parameter. "args" marks the
//     var-positional collector and requires a slice field. "kwargs"
//     marks the var-keyword collector and requires a string-keyed map
//     field. "default=" declares a default value parsed against the
//     field's type; bool, integer, float, and string fields are
//     supported.
//
// Any other value fails with ErrUninspectable: Go reflection can't see
// the parameter names of a plain function, so there is nothing to
// match against.
func Extract(fn interface{}) (*Signature, error) {
	if s, ok := fn.(*Signature); ok {
		// A typed nil carries no parameter list.
		if s == nil {
			return nil, &ErrUninspectable{Callable: fn, Reason: "signature is nil"}
		}

		return s, nil
	}

	if fn == nil {
		return nil, &ErrUninspectable{Callable: fn, Reason: "callable is nil"}
	}

	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if k := ft.Kind(); k != reflect.Func {
		return nil, &ErrUninspectable{
			Callable: fn,
			Reason:   fmt.Sprintf("expected a function or *Signature, got %s", k),
		}
	}

	// A niladic function has an empty signature. Anything else must
	// declare its parameters through a single marker struct since
	// direct function parameters carry no names.
	var params []Param
	switch ft.NumIn() {
	case 0:
		// empty signature

	case 1:
		st := structArg(ft.In(0))
		if st == nil {
			return nil, &ErrUninspectable{
				Callable: fn,
				Reason: fmt.Sprintf(
					"parameter of type %s is not a struct embedding callmap.Struct",
					ft.In(0)),
			}
		}

		var err error
		params, err = structParams(st)
		if err != nil {
			return nil, err
		}

	default:
		return nil, &ErrUninspectable{
			Callable: fn,
			Reason: fmt.Sprintf(
				"function takes %d parameters; parameter names require "+
					"a single struct embedding callmap.Struct", ft.NumIn()),
		}
	}

	s, err := NewSignature(params...)
	if err != nil {
		return nil, err
	}

	// Name the signature after the function, falling back to the type
	// signature when the pointer can't be resolved.
	s.name = ft.String()
	if rfunc := runtime.FuncForPC(fv.Pointer()); rfunc != nil && rfunc.Name() != "" {
		s.name = rfunc.Name()
	}

	return s, nil
}

// structParams converts the fields of a marker struct into a parameter
// list in field order.
func structParams(typ reflect.Type) ([]Param, error) {
	var params []Param
	var buildErr error
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)

		// Ignore unexported fields and our struct marker
		if sf.PkgPath != "" || isStructField(sf) {
			continue
		}

		// name is the name of the parameter.
		name := sf.Name

		// Parse out the tag if there is one
		var options map[string]string
		if tag := sf.Tag.Get("callmap"); tag != "" {
			parts := strings.Split(tag, ",")

			// If we have a name set, then override the name
			if parts[0] != "" {
				name = parts[0]
			}

			// If we have fields set after the comma, then we want to
			// parse those as options.
			options = make(map[string]string)
			for _, v := range parts[1:] {
				idx := strings.Index(v, "=")
				if idx == -1 {
					options[v] = ""
				} else {
					options[v[:idx]] = v[idx+1:]
				}
			}
		}

		// Name is always lowercase
		name = strings.ToLower(name)

		// At most one kind option may mark a field.
		p := Param{Name: name, Kind: KindPositional}
		var marks []string
		if _, ok := options["kwonly"]; ok {
			marks = append(marks, "kwonly")
			p.Kind = KindKeywordOnly
		}
		if _, ok := options["args"]; ok {
			marks = append(marks, "args")
			p.Kind = KindVarArgs
		}
		if _, ok := options["kwargs"]; ok {
			marks = append(marks, "kwargs")
			p.Kind = KindVarKeyword
		}
		if len(marks) > 1 {
			buildErr = multierror.Append(buildErr, fmt.Errorf(
				"field %q mixes conflicting options %s",
				sf.Name, strings.Join(marks, " and ")))
			continue
		}

		if p.Kind == KindVarArgs && sf.Type.Kind() != reflect.Slice {
			buildErr = multierror.Append(buildErr, fmt.Errorf(
				"varargs field %q must be a slice, got %s", sf.Name, sf.Type))
			continue
		}
		if p.Kind == KindVarKeyword &&
			(sf.Type.Kind() != reflect.Map || sf.Type.Key().Kind() != reflect.String) {
			buildErr = multierror.Append(buildErr, fmt.Errorf(
				"varkeyword field %q must be a string-keyed map, got %s",
				sf.Name, sf.Type))
			continue
		}

		if lit, ok := options["default"]; ok {
			def, err := parseDefault(sf.Type, lit)
			if err != nil {
				buildErr = multierror.Append(buildErr, fmt.Errorf(
					"default for field %q: %s", sf.Name, err))
				continue
			}

			p.Default = def
			p.HasDefault = true
		}

		params = append(params, p)
	}

	if buildErr != nil {
		return nil, buildErr
	}

	return params, nil
}

// parseDefault parses a struct tag default literal against the field
// type. Defaults of richer types use an explicit NewSignature instead.
func parseDefault(typ reflect.Type, lit string) (interface{}, error) {
	v := reflect.New(typ).Elem()
	switch typ.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(lit)
		if err != nil {
			return nil, err
		}
		v.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return nil, err
		}
		v.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(lit, 10, 64)
		if err != nil {
			return nil, err
		}
		v.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, err
		}
		v.SetFloat(f)

	case reflect.String:
		v.SetString(lit)

	default:
		return nil, fmt.Errorf(
			"literal defaults are not supported for %s fields", typ.Kind())
	}

	return v.Interface(), nil
}

// structArg returns the struct type to read parameters from if t is a
// marker struct or a pointer to one, nil otherwise.
func structArg(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if !isStruct(t) {
		return nil
	}

	return t
}

// isStruct returns true if the type is a struct that embeds our Struct
// marker.
func isStruct(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}

	for i := 0; i < t.NumField(); i++ {
		if isStructField(t.Field(i)) {
			return true
		}
	}

	return false
}

// isStructField returns true if the struct field is our Struct marker.
func isStructField(f reflect.StructField) bool {
	return f.Anonymous && f.Type == structMarkerType
}

var structMarkerType = reflect.TypeOf(Struct{})
