package callmap

import (
	"github.com/hashicorp/go-hclog"
)

// Resolve derives the argument pair needed to call the subfunction
// described by sub from the flattened superfunction call in bound,
// with overrides as a fallback source.
//
// Every parameter resolves through the same chain: the bound value
// under its name wins, then the override under its name, then the
// parameter's declared default. A required parameter that exhausts the
// chain fails the whole resolution; Resolve checks every parameter and
// reports all unsatisfied ones in a single ErrParamUnsatisfied.
//
// Override names must be lowercase to match; the Override and
// Overrides options normalize them when going through Map.
//
// Resolved positional-or-keyword parameters are emitted positionally
// in sub's declared order, followed by the spliced var-positional
// overflow when sub's collector name matches a collected sequence in
// bound. Keyword-only parameters are emitted by name, and a matching
// collected bag is merged in under the names sub doesn't claim itself.
func Resolve(sub *Signature, bound *BoundArgs, overrides map[string]interface{}) (*Call, error) {
	return resolve(hclog.L(), sub, bound, overrides)
}

func resolve(log hclog.Logger, sub *Signature, bound *BoundArgs, overrides map[string]interface{}) (*Call, error) {
	call := &Call{keyword: make(map[string]interface{})}

	var missing []Param
	value := func(p Param) (interface{}, bool) {
		if v, ok := bound.Value(p.Name); ok {
			log.Trace("resolved from superfunction call", "param", p.Name)
			return v, true
		}
		if v, ok := overrides[p.Name]; ok {
			log.Trace("resolved from override", "param", p.Name)
			return v, true
		}
		if p.HasDefault {
			log.Trace("resolved from declared default", "param", p.Name)
			return p.Default, true
		}

		missing = append(missing, p)
		return nil, false
	}

	for _, p := range sub.Params() {
		switch p.Kind {
		case KindPositional:
			if v, ok := value(p); ok {
				call.positional = append(call.positional, v)
			}

		case KindKeywordOnly:
			if v, ok := value(p); ok {
				call.keyword[p.Name] = v
			}

		case KindVarArgs:
			// Splice only an overflow sequence collected under the
			// same name; a collector never fails.
			if rest, ok := bound.overflow(p.Name); ok {
				log.Trace("splicing positional overflow", "param", p.Name, "count", len(rest))
				call.positional = append(call.positional, rest...)
			}

		case KindVarKeyword:
			bag, ok := bound.bag(p.Name)
			if !ok {
				continue
			}

			for name, v := range bag {
				// Names claimed by a declared parameter stay with
				// that parameter's own resolution.
				if _, claimed := sub.Param(name); claimed {
					continue
				}

				log.Trace("merging named overflow", "param", p.Name, "name", name)
				call.keyword[name] = v
			}
		}
	}

	if len(missing) > 0 {
		return nil, &ErrParamUnsatisfied{
			Sig:       sub,
			Params:    missing,
			Bound:     bound,
			Overrides: overrides,
		}
	}

	return call, nil
}
