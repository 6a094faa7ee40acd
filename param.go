package callmap

import (
	"fmt"
	"strings"
)

// ParamKind is the kind of a declared parameter. The kind decides how a
// value reaches the parameter: by position, by name only, or as one of
// the two overflow collectors.
type ParamKind uint

const (
	// KindPositional is a parameter that can be bound by position or
	// by name. This is the default kind.
	KindPositional ParamKind = iota

	// KindKeywordOnly is a parameter that can only be bound by name.
	KindKeywordOnly

	// KindVarArgs is the collector for positional values beyond the
	// declared positional parameters. A signature has at most one.
	KindVarArgs

	// KindVarKeyword is the collector for named values that match no
	// declared parameter. A signature has at most one.
	KindVarKeyword
)

// String returns a short human name for the kind.
func (k ParamKind) String() string {
	switch k {
	case KindPositional:
		return "positional"
	case KindKeywordOnly:
		return "keyword-only"
	case KindVarArgs:
		return "varargs"
	case KindVarKeyword:
		return "varkeyword"
	}

	return fmt.Sprintf("unknown (%d)", uint(k))
}

// Param is one declared parameter of a Signature.
//
// Params are immutable once part of a Signature. Use the constructors
// (Positional, KeywordOnly, VarArgs, ...) rather than building the
// struct directly so that names are normalized consistently.
type Param struct {
	// Name is the parameter name. Names are always lowercase; the
	// constructors normalize them.
	Name string

	// Kind is how this parameter is bound.
	Kind ParamKind

	// Default is the declared default value. It is only meaningful
	// when HasDefault is true; a nil Default with HasDefault set is a
	// real default of nil.
	Default interface{}

	// HasDefault notes whether a default was declared at all.
	HasDefault bool
}

// Positional declares a parameter bindable by position or name.
func Positional(name string) Param {
	return Param{Name: strings.ToLower(name), Kind: KindPositional}
}

// PositionalDefault declares a positional-or-keyword parameter with a
// default value.
func PositionalDefault(name string, def interface{}) Param {
	return Param{
		Name:       strings.ToLower(name),
		Kind:       KindPositional,
		Default:    def,
		HasDefault: true,
	}
}

// KeywordOnly declares a parameter bindable by name only.
func KeywordOnly(name string) Param {
	return Param{Name: strings.ToLower(name), Kind: KindKeywordOnly}
}

// KeywordOnlyDefault declares a keyword-only parameter with a default
// value.
func KeywordOnlyDefault(name string, def interface{}) Param {
	return Param{
		Name:       strings.ToLower(name),
		Kind:       KindKeywordOnly,
		Default:    def,
		HasDefault: true,
	}
}

// VarArgs declares the var-positional collector.
func VarArgs(name string) Param {
	return Param{Name: strings.ToLower(name), Kind: KindVarArgs}
}

// VarKeyword declares the var-keyword collector.
func VarKeyword(name string) Param {
	return Param{Name: strings.ToLower(name), Kind: KindVarKeyword}
}

// String returns the parameter the way it would read in a declaration,
// such as "x", "divide_by=2", "*args", or "**kwargs". This is used by
// Signature.String and the error messages.
func (p Param) String() string {
	switch p.Kind {
	case KindVarArgs:
		return "*" + p.Name
	case KindVarKeyword:
		return "**" + p.Name
	}

	if p.HasDefault {
		return fmt.Sprintf("%s=%v", p.Name, p.Default)
	}

	return p.Name
}
