package callmap

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Signature represents the declared, ordered parameter list of one
// callable: name, kind, and default metadata for each parameter.
//
// A Signature is the unit both halves of the library work on: the
// superfunction's Signature turns a concrete argument set into
// BoundArgs (see Bind), and the subfunction's Signature turns
// BoundArgs into a callable positional/keyword pair (see Resolve).
//
// Signatures are immutable once constructed. Construct one explicitly
// with NewSignature, or extract one from a marker-struct function with
// Extract. Go reflection doesn't enable accessing direct function
// parameter names, so one of those two forms is required.
type Signature struct {
	params []Param
	name   string

	// byName indexes params for name lookup. Collector params are
	// included so callers can detect name collisions.
	byName map[string]int

	// varArgs and varKeyword index the collectors, -1 when absent.
	varArgs    int
	varKeyword int
}

// NewSignature builds a Signature from the given parameters in
// declaration order. The declaration must follow the standard parameter
// ordering: positional-or-keyword parameters first, then at most one
// var-positional collector, then keyword-only parameters, then at most
// one var-keyword collector. All violations are reported at once.
func NewSignature(params ...Param) (*Signature, error) {
	s := &Signature{
		params:     params,
		byName:     make(map[string]int, len(params)),
		varArgs:    -1,
		varKeyword: -1,
	}

	// Stages mirror the declaration order invariant. A parameter whose
	// kind maps to an earlier stage than one already seen is out of
	// order.
	stage := func(k ParamKind) int {
		switch k {
		case KindPositional:
			return 0
		case KindVarArgs:
			return 1
		case KindKeywordOnly:
			return 2
		default:
			return 3
		}
	}

	var buildErr error
	seen := -1
	for i, p := range params {
		if p.Name == "" {
			buildErr = multierror.Append(buildErr, fmt.Errorf(
				"parameter %d has no name", i))
			continue
		}

		if prev, ok := s.byName[p.Name]; ok {
			buildErr = multierror.Append(buildErr, fmt.Errorf(
				"parameter %q declared twice (positions %d and %d)",
				p.Name, prev, i))
			continue
		}
		s.byName[p.Name] = i

		st := stage(p.Kind)
		if st < seen {
			buildErr = multierror.Append(buildErr, fmt.Errorf(
				"parameter %s out of order: %s parameters must come before %s",
				p, p.Kind, params[i-1].Kind))
		}
		if st > seen {
			seen = st
		}

		switch p.Kind {
		case KindVarArgs:
			if s.varArgs >= 0 {
				buildErr = multierror.Append(buildErr, fmt.Errorf(
					"second varargs collector %q (already have %q)",
					p.Name, params[s.varArgs].Name))
				continue
			}
			s.varArgs = i

		case KindVarKeyword:
			if s.varKeyword >= 0 {
				buildErr = multierror.Append(buildErr, fmt.Errorf(
					"second varkeyword collector %q (already have %q)",
					p.Name, params[s.varKeyword].Name))
				continue
			}
			s.varKeyword = i
		}
	}

	if buildErr != nil {
		return nil, buildErr
	}

	return s, nil
}

// Params returns the declared parameters in declaration order. The
// returned slice must not be modified.
func (s *Signature) Params() []Param {
	return s.params
}

// Param looks up a declared parameter by name.
func (s *Signature) Param(name string) (Param, bool) {
	idx, ok := s.byName[strings.ToLower(name)]
	if !ok {
		return Param{}, false
	}

	return s.params[idx], true
}

// positionals returns the positional-or-keyword parameters in
// declaration order.
func (s *Signature) positionals() []Param {
	end := len(s.params)
	for i, p := range s.params {
		if p.Kind != KindPositional {
			end = i
			break
		}
	}

	return s.params[:end]
}

// varArgsParam returns the var-positional collector if declared.
func (s *Signature) varArgsParam() (Param, bool) {
	if s.varArgs < 0 {
		return Param{}, false
	}

	return s.params[s.varArgs], true
}

// varKeywordParam returns the var-keyword collector if declared.
func (s *Signature) varKeywordParam() (Param, bool) {
	if s.varKeyword < 0 {
		return Param{}, false
	}

	return s.params[s.varKeyword], true
}

// Name returns the name of the callable this signature was extracted
// from, when one is known. Extract sets this from the function pointer;
// explicitly built signatures have no name until the declaration string
// is used as a fallback.
func (s *Signature) Name() string {
	if s.name != "" {
		return s.name
	}

	return s.String()
}

// String returns the declaration the way it would read in source, for
// example "(z, y, x, *args, transpose=true, **kwargs)".
func (s *Signature) String() string {
	parts := make([]string, len(s.params))
	for i, p := range s.params {
		parts[i] = p.String()
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
