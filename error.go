package callmap

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// ErrUninspectable is returned when a supplied callable's parameter
// list cannot be determined. See Extract for the callable forms whose
// parameters are introspectable.
type ErrUninspectable struct {
	// Callable is the value whose signature was requested.
	Callable interface{}

	// Reason describes why the parameter list can't be determined.
	Reason string
}

func (e *ErrUninspectable) Error() string {
	return fmt.Sprintf("callable %T is not inspectable: %s", e.Callable, e.Reason)
}

// ErrTooManyArgs is returned when more positional values are supplied
// than the signature's positional parameters and var-positional
// collector can absorb.
type ErrTooManyArgs struct {
	// Sig is the signature the values were bound against.
	Sig *Signature

	// Extra is the positional values left over after every positional
	// parameter was bound.
	Extra []interface{}
}

func (e *ErrTooManyArgs) Error() string {
	return fmt.Sprintf(
		"too many positional arguments for %s: %d left over and no varargs collector declared",
		e.Sig.Name(), len(e.Extra))
}

// ErrDuplicateArg is returned when a named argument targets a
// parameter that was already bound positionally.
type ErrDuplicateArg struct {
	Sig  *Signature
	Name string
}

func (e *ErrDuplicateArg) Error() string {
	return fmt.Sprintf(
		"duplicate argument %q for %s: already bound positionally", e.Name, e.Sig.Name())
}

// ErrUnknownArg is returned when a named argument matches no declared
// parameter and the signature has no var-keyword collector to absorb
// it.
type ErrUnknownArg struct {
	Sig  *Signature
	Name string
}

func (e *ErrUnknownArg) Error() string {
	return fmt.Sprintf(
		"unexpected argument %q for %s: no such parameter and no varkeyword collector declared",
		e.Name, e.Sig.Name())
}

// ErrParamUnsatisfied is the value returned when one or more required
// subfunction parameters have no source of value: nothing bound under
// the name in the superfunction call, no override, no declared
// default.
type ErrParamUnsatisfied struct {
	// Sig is the subfunction signature that was being resolved.
	Sig *Signature

	// Params are the parameters that aren't satisfied.
	Params []Param

	// Bound is the flattened superfunction call the resolution drew
	// from.
	Bound *BoundArgs

	// Overrides is the override mapping that was consulted.
	Overrides map[string]interface{}
}

func (e *ErrParamUnsatisfied) Error() string {
	// Build our list of missing parameters
	missing := new(bytes.Buffer)
	for _, p := range e.Params {
		fmt.Fprintf(missing, "    - %s\n", p)
	}

	// Build our list of parameters the subfunction expects
	fullParam := new(bytes.Buffer)
	for _, p := range e.Sig.Params() {
		fmt.Fprintf(fullParam, "    - %s\n", p)
	}

	// Build our list of available bound names
	inputs := new(bytes.Buffer)
	names := e.Bound.Names()
	if len(names) == 0 {
		fmt.Fprintf(inputs, "    No bound values!\n")
	}
	for _, n := range names {
		fmt.Fprintf(inputs, "    - %s\n", n)
	}

	ovr := new(bytes.Buffer)
	if len(e.Overrides) == 0 {
		fmt.Fprintf(ovr, "    No overrides.\n")
	}
	for _, n := range sortedKeys(e.Overrides) {
		fmt.Fprintf(ovr, "    - %s\n", n)
	}

	return fmt.Sprintf(`
Parameter of subfunction %q could not be resolved!

This means that one (or more) of the subfunction's required parameters
has no source of value: the flattened superfunction call has nothing
bound under the name, the overrides have no entry for it, and the
parameter declares no default. A complete description is below for
debugging.

==> Unresolvable parameters
    This is a list of the parameters a value could not be found for.

%s

==> Full list of subfunction parameters
    This is the parameter list the subfunction declares.

%s

==> Full list of bound superfunction values
    This is the list of names the flattened superfunction call bound.
    None of these matched the unresolvable parameters.

%s

==> Full list of overrides
    This is the list of names available from the override mapping,
    consulted only for names the superfunction call did not bind.

%s
`,
		e.Sig.Name(),
		strings.TrimSuffix(missing.String(), "\n"),
		strings.TrimSuffix(fullParam.String(), "\n"),
		strings.TrimSuffix(inputs.String(), "\n"),
		strings.TrimSuffix(ovr.String(), "\n"),
	)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

var (
	_ error = (*ErrUninspectable)(nil)
	_ error = (*ErrTooManyArgs)(nil)
	_ error = (*ErrDuplicateArg)(nil)
	_ error = (*ErrUnknownArg)(nil)
	_ error = (*ErrParamUnsatisfied)(nil)
)
