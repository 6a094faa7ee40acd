// Package callmap maps the arguments of one function call onto the
// parameter list of a differently-shaped function.
//
// Given the concrete positional and named arguments assembled for one
// function (the "superfunction"), callmap derives the argument pair
// needed to validly call a second function (the "subfunction") whose
// parameters may differ in order, names, defaults, and required
// subset. Parameter names are the binding key; a caller-supplied
// override mapping fills the gaps, and the subfunction's own declared
// defaults fill whatever remains.
//
// The primary usage of this library is via the Map function. See Map
// and Extract for more documentation.
package callmap
