package callmap

import (
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// BoundArgs is the flattened form of one concrete call: a mapping from
// parameter name to the value the call bound to it. Positional overflow
// lives under the var-positional collector's name as an ordered
// sequence, and named overflow under the var-keyword collector's name
// as a bag; both are visible through Value under those names.
type BoundArgs struct {
	values map[string]interface{}

	// varName/varValues hold the positional overflow collected by the
	// signature's var-positional parameter, if any was collected.
	varName   string
	varValues []interface{}

	// bagName/bagValues hold the named overflow collected by the
	// var-keyword parameter.
	bagName   string
	bagValues map[string]interface{}
}

// Value returns the value bound under the given parameter name. The
// collected overflow sequence and bag are returned as the value of
// their collector's name.
func (b *BoundArgs) Value(name string) (interface{}, bool) {
	name = strings.ToLower(name)
	if v, ok := b.values[name]; ok {
		return v, true
	}
	if name == b.varName && b.varName != "" {
		return b.varValues, true
	}
	if name == b.bagName && b.bagName != "" {
		return b.bagValues, true
	}

	return nil, false
}

// overflow returns the collected positional overflow if it was
// collected under the given name.
func (b *BoundArgs) overflow(name string) ([]interface{}, bool) {
	if b.varName == "" || name != b.varName {
		return nil, false
	}

	return b.varValues, true
}

// bag returns the collected named overflow if it was collected under
// the given name.
func (b *BoundArgs) bag(name string) (map[string]interface{}, bool) {
	if b.bagName == "" || name != b.bagName {
		return nil, false
	}

	return b.bagValues, true
}

// Names returns the bound names in sorted order, collectors included.
func (b *BoundArgs) Names() []string {
	names := make([]string, 0, len(b.values)+2)
	for n := range b.values {
		names = append(names, n)
	}
	if b.varName != "" {
		names = append(names, b.varName)
	}
	if b.bagName != "" {
		names = append(names, b.bagName)
	}
	sort.Strings(names)

	return names
}

// Bind flattens a concrete call to this signature into BoundArgs:
// positional values bind to the positional-or-keyword parameters in
// declaration order, leftover positional values are collected by the
// var-positional parameter, named values bind to the parameter of the
// same name or are collected by the var-keyword parameter, and
// declared defaults fill whatever is still unbound.
//
// Bind fails with ErrTooManyArgs when positional values are left over
// and no var-positional collector exists, with ErrDuplicateArg when a
// named value targets a parameter already bound positionally, and with
// ErrUnknownArg when a named value matches no parameter and no
// var-keyword collector exists. A parameter with neither a value nor a
// default is simply absent from the result; whether that matters is
// decided by Resolve against the subfunction's needs.
func (s *Signature) Bind(positional []interface{}, named map[string]interface{}) (*BoundArgs, error) {
	return s.bind(hclog.L(), positional, named)
}

func (s *Signature) bind(log hclog.Logger, positional []interface{}, named map[string]interface{}) (*BoundArgs, error) {
	bound := &BoundArgs{values: make(map[string]interface{})}

	// Walk the positional-or-keyword parameters in order, consuming
	// one positional value for each.
	posParams := s.positionals()
	n := len(positional)
	if len(posParams) < n {
		n = len(posParams)
	}
	for i := 0; i < n; i++ {
		log.Trace("binding positional value", "idx", i, "param", posParams[i].Name)
		bound.values[posParams[i].Name] = positional[i]
	}

	// Leftover positional values go to the varargs collector.
	if rest := positional[n:]; len(rest) > 0 {
		p, ok := s.varArgsParam()
		if !ok {
			return nil, &ErrTooManyArgs{Sig: s, Extra: rest}
		}

		log.Trace("collecting positional overflow", "param", p.Name, "count", len(rest))
		bound.varName = p.Name
		bound.varValues = rest
	}

	// Overlay the named values.
	for name, value := range named {
		name = strings.ToLower(name)
		p, ok := s.Param(name)
		if ok && (p.Kind == KindPositional || p.Kind == KindKeywordOnly) {
			if _, dup := bound.values[name]; dup {
				return nil, &ErrDuplicateArg{Sig: s, Name: name}
			}

			log.Trace("binding named value", "param", name)
			bound.values[name] = value
			continue
		}

		// No parameter can take the name directly; collect it. Note a
		// name matching a collector is still overflow: collectors are
		// not bindable by name.
		bp, ok := s.varKeywordParam()
		if !ok {
			return nil, &ErrUnknownArg{Sig: s, Name: name}
		}

		log.Trace("collecting named overflow", "param", bp.Name, "name", name)
		if bound.bagValues == nil {
			bound.bagName = bp.Name
			bound.bagValues = make(map[string]interface{})
		}
		bound.bagValues[name] = value
	}

	// Apply declared defaults for anything still unbound.
	for _, p := range s.params {
		if !p.HasDefault {
			continue
		}
		if _, ok := bound.values[p.Name]; ok {
			continue
		}

		log.Trace("applying declared default", "param", p.Name)
		bound.values[p.Name] = p.Default
	}

	return bound, nil
}
